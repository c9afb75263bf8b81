package sim

import (
	"encoding/json"
	"testing"
)

func TestExactMatcher(t *testing.T) {
	m := Exact("value")

	if m.Kind != MatchExact {
		t.Errorf("Expected kind %q, got %q", MatchExact, m.Kind)
	}
	if !m.Matches("value") {
		t.Error("Expected exact matcher to match equal value")
	}
	if m.Matches("other") {
		t.Error("Expected exact matcher to reject different value")
	}
	if m.Matches("Value") {
		t.Error("Expected exact matcher to be case sensitive")
	}
}

func TestGlobMatcher(t *testing.T) {
	tests := []struct {
		pattern string
		value   string
		want    bool
	}{
		{"*", "", true},
		{"*", "anything", true},
		{"api-*.example.com", "api-v1.example.com", true},
		{"api-*.example.com", "www.example.com", false},
		{"*", "/a/b/c", true},                  // wildcard crosses path separators
		{"/api/*", "/api/users/42", true},      // same
		{"tag=a&page=*", "tag=a&page=2", true}, // and query separators
		{"tag=a&page=*", "tag=b&page=2", false},
		{"prefix*", "prefix", true},
		{"*middle*", "has middle part", true},
		{"exact", "exact", true},
		{"exact", "exactly", false},
	}

	for _, tt := range tests {
		if got := Glob(tt.pattern).Matches(tt.value); got != tt.want {
			t.Errorf("Glob(%q).Matches(%q) = %v, want %v", tt.pattern, tt.value, got, tt.want)
		}
	}
}

func TestNilMatcherMatchesEverything(t *testing.T) {
	var m *Matcher

	for _, value := range []string{"", "anything", "/a/b?c=d"} {
		if !m.Matches(value) {
			t.Errorf("Expected nil matcher to match %q", value)
		}
	}
}

func TestBlankMatcher(t *testing.T) {
	m := Blank()

	if !m.Matches("") {
		t.Error("Expected blank matcher to match empty value")
	}
	if m.Matches("something") {
		t.Error("Expected blank matcher to reject non-empty value")
	}
	if m.Equal(nil) {
		t.Error("Expected blank matcher to differ from nil matcher")
	}
}

func TestMatcherEqual(t *testing.T) {
	tests := []struct {
		name string
		a, b *Matcher
		want bool
	}{
		{"equal exact", Exact("x"), Exact("x"), true},
		{"different value", Exact("x"), Exact("y"), false},
		{"different kind", Exact("x"), Glob("x"), false},
		{"both nil", nil, nil, true},
		{"nil vs exact", nil, Exact(""), false},
		{"blank vs blank", Blank(), Blank(), true},
	}

	for _, tt := range tests {
		if got := tt.a.Equal(tt.b); got != tt.want {
			t.Errorf("%s: Equal = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestMatcherJSON(t *testing.T) {
	data, err := json.Marshal(Glob("te*t"))
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `{"matcher":"glob","value":"te*t"}` {
		t.Errorf("Unexpected JSON: %s", data)
	}

	var m *Matcher
	data, err = json.Marshal(m)
	if err != nil {
		t.Fatalf("Marshal of nil matcher failed: %v", err)
	}
	if string(data) != "null" {
		t.Errorf("Expected nil matcher to serialize as null, got %s", data)
	}

	var parsed Matcher
	if err := json.Unmarshal([]byte(`{"matcher":"exact","value":"v"}`), &parsed); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if !parsed.Equal(Exact("v")) {
		t.Errorf("Expected exact(v), got %+v", parsed)
	}
}

func TestMatcherValidate(t *testing.T) {
	if err := Exact("x").Validate(); err != nil {
		t.Errorf("Expected exact matcher to validate, got %v", err)
	}
	if err := (&Matcher{Kind: "regex", Value: ".*"}).Validate(); err == nil {
		t.Error("Expected unknown kind to fail validation")
	}
	var m *Matcher
	if err := m.Validate(); err != nil {
		t.Errorf("Expected nil matcher to validate, got %v", err)
	}
}
