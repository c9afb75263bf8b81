package dsl

import (
	"testing"
)

func TestResponseDefaults(t *testing.T) {
	resp := Response().build()

	if resp.Status != 200 {
		t.Errorf("Expected default status 200, got %d", resp.Status)
	}
	if resp.Body != "" {
		t.Errorf("Expected empty body, got %q", resp.Body)
	}
	if resp.Templated {
		t.Error("Expected templated to default to false")
	}
}

func TestResponseHeadersAccumulate(t *testing.T) {
	resp := Response().
		Header("Set-Cookie", "a=1").
		Header("Set-Cookie", "b=2").
		build()

	values := resp.Headers["Set-Cookie"]
	if len(values) != 2 || values[0] != "a=1" || values[1] != "b=2" {
		t.Errorf("Expected accumulated header values, got %+v", values)
	}
}

func TestResponseBodyConverterSetsContentType(t *testing.T) {
	resp := Success().Body(JSONBody(map[string]string{"status": "ok"})).build()

	if resp.Body != `{"status":"ok"}` {
		t.Errorf("Unexpected body: %q", resp.Body)
	}
	if got := resp.Headers["Content-Type"]; len(got) != 1 || got[0] != "application/json" {
		t.Errorf("Expected application/json content type, got %+v", got)
	}
}

func TestResponseTemplated(t *testing.T) {
	resp := Success().Body("Hello {{ query.name }}").Templated().build()

	if !resp.Templated {
		t.Error("Expected templated flag to be set")
	}
}

func TestResponseCreators(t *testing.T) {
	tests := []struct {
		name    string
		builder *ResponseBuilder
		status  int
	}{
		{"Success", Success(), 200},
		{"Created", Created("/new/1"), 201},
		{"NoContent", NoContent(), 204},
		{"BadRequest", BadRequest(), 400},
		{"Unauthorised", Unauthorised(), 401},
		{"Forbidden", Forbidden(), 403},
		{"ServerError", ServerError(), 500},
	}

	for _, tt := range tests {
		resp := tt.builder.build()
		if resp.Status != tt.status {
			t.Errorf("%s: expected status %d, got %d", tt.name, tt.status, resp.Status)
		}
	}
}

func TestCreatedSetsLocation(t *testing.T) {
	resp := Created("/things/9").build()

	if got := resp.Headers["Location"]; len(got) != 1 || got[0] != "/things/9" {
		t.Errorf("Expected Location header, got %+v", got)
	}
}

func TestXMLBodyNormalizesFormatting(t *testing.T) {
	pretty := XMLBody("<root>\n  <child>value</child>\n</root>")
	compact := XMLBody("<root><child>value</child></root>")

	if pretty.Body() != compact.Body() {
		t.Errorf("Expected normalized XML to be format-insensitive:\n%q\n%q", pretty.Body(), compact.Body())
	}
	if pretty.ContentType() != "application/xml" {
		t.Errorf("Expected application/xml, got %q", pretty.ContentType())
	}
}

func TestJSONBodyPanicsOnUnmarshalableValue(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic for unmarshalable value")
		}
	}()
	JSONBody(make(chan int))
}
