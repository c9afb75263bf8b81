package template

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"
)

func testContext() *Context {
	return &Context{
		Method: "POST",
		Path:   "/v1/users",
		QueryParams: map[string][]string{
			"page": {"3", "4"},
		},
		Headers: map[string][]string{
			"X-Request-Id": {"abc-123"},
		},
		Body: `{"user":{"name":"Jane"}}`,
	}
}

func TestProcessRequestVariables(t *testing.T) {
	e := NewEngine()
	ctx := testContext()

	tests := []struct {
		template string
		want     string
	}{
		{"{{ method }} {{ path }}", "POST /v1/users"},
		{"page={{ query.page }}", "page=3"}, // first value wins
		{"id={{ header.x-request-id }}", "id=abc-123"},
		{"hello {{ body.user.name }}", "hello Jane"},
		{"{{ unknown }}", ""},
		{"{{ query.missing }}", ""},
		{"no variables", "no variables"},
	}

	for _, tt := range tests {
		if got := e.Process(tt.template, ctx); got != tt.want {
			t.Errorf("Process(%q) = %q, want %q", tt.template, got, tt.want)
		}
	}
}

func TestProcessUUID(t *testing.T) {
	e := NewEngine()

	got := e.Process("{{ uuid }}", testContext())
	uuidPattern := regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)
	if !uuidPattern.MatchString(got) {
		t.Errorf("Expected a UUID, got %q", got)
	}
}

func TestProcessRandomInt(t *testing.T) {
	e := NewEngine()

	got := e.Process("{{ randomInt.10 }}", testContext())
	n, err := strconv.Atoi(got)
	if err != nil {
		t.Fatalf("Expected an integer, got %q", got)
	}
	if n < 0 || n >= 10 {
		t.Errorf("Expected value in [0,10), got %d", n)
	}
}

func TestProcessTimestamp(t *testing.T) {
	e := NewEngine()
	fixed := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	e.now = func() time.Time { return fixed }

	if got := e.Process("{{ timestamp }}", testContext()); got != "2025-06-01T12:00:00Z" {
		t.Errorf("Unexpected timestamp: %q", got)
	}
}

func TestProcessHeaders(t *testing.T) {
	e := NewEngine()

	processed := e.ProcessHeaders(map[string][]string{
		"X-Echo-Method": {"{{ method }}"},
		"X-Static":      {"fixed"},
	}, testContext())

	if processed["X-Echo-Method"][0] != "POST" {
		t.Errorf("Expected substituted method, got %q", processed["X-Echo-Method"][0])
	}
	if processed["X-Static"][0] != "fixed" {
		t.Errorf("Expected untouched value, got %q", processed["X-Static"][0])
	}
}

func TestProcessLeadingDotIsOptional(t *testing.T) {
	e := NewEngine()

	if got := e.Process("{{ .method }}", testContext()); !strings.Contains(got, "POST") {
		t.Errorf("Expected leading dot form to resolve, got %q", got)
	}
}
