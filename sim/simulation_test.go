package sim

import (
	"path/filepath"
	"strings"
	"testing"
)

func samplePair(path string) RequestResponsePair {
	return RequestResponsePair{
		Request: Request{
			Path:        Exact(path),
			Method:      Exact("GET"),
			Destination: Exact("api.example.com"),
			Scheme:      Exact("https"),
			Query:       Blank(),
			Body:        Blank(),
			Headers:     map[string][]string{},
		},
		Response: Response{Status: 200, Body: "ok"},
	}
}

func TestPairSetDeduplicates(t *testing.T) {
	set := NewPairSet()

	if !set.Add(samplePair("/a")) {
		t.Error("Expected first add to succeed")
	}
	if set.Add(samplePair("/a")) {
		t.Error("Expected structurally identical pair to be rejected")
	}
	if !set.Add(samplePair("/b")) {
		t.Error("Expected distinct pair to be accepted")
	}
	if set.Len() != 2 {
		t.Errorf("Expected 2 pairs, got %d", set.Len())
	}
}

func TestPairSetDeduplicatesRegardlessOfHeaderMapOrder(t *testing.T) {
	a := samplePair("/a")
	a.Request.Headers = map[string][]string{"X-One": {"1"}, "X-Two": {"2"}}
	b := samplePair("/a")
	b.Request.Headers = map[string][]string{"X-Two": {"2"}, "X-One": {"1"}}

	set := NewPairSet()
	set.Add(a)
	if set.Add(b) {
		t.Error("Expected pairs differing only in header map ordering to collapse")
	}
}

func TestPairSetTreatsNilAndEmptyHeadersAlike(t *testing.T) {
	a := samplePair("/a")
	a.Request.Headers = nil
	b := samplePair("/a")

	if !a.Equal(b) {
		t.Fatal("Expected nil and empty headers to compare equal")
	}

	set := NewPairSet()
	set.Add(a)
	if set.Add(b) {
		t.Error("Expected pairs differing only in nil vs empty headers to collapse")
	}

	s := New([]RequestResponsePair{a, b}, nil)
	if err := s.Validate(); err == nil {
		t.Error("Expected validation to flag the duplicate")
	}
}

func TestRequestEqual(t *testing.T) {
	a := samplePair("/a").Request
	b := samplePair("/a").Request

	if !a.Equal(b) {
		t.Error("Expected structurally identical requests to be equal")
	}

	b.Body = nil
	if a.Equal(b) {
		t.Error("Expected blank body and any body to differ")
	}
}

func TestSimulationJSONRoundTrip(t *testing.T) {
	s := New(
		[]RequestResponsePair{samplePair("/a")},
		[]DelaySettings{{URLPattern: "api.example.com", Delay: 100}},
	)

	data, err := s.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON failed: %v", err)
	}
	if !strings.Contains(string(data), `"schemaVersion": "v1"`) {
		t.Errorf("Expected schema version in output, got %s", data)
	}

	parsed, err := DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON failed: %v", err)
	}
	if len(parsed.Data.Pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(parsed.Data.Pairs))
	}
	if !parsed.Data.Pairs[0].Equal(s.Data.Pairs[0]) {
		t.Error("Expected round-tripped pair to equal original")
	}
	if len(parsed.Data.GlobalActions.Delays) != 1 {
		t.Fatalf("Expected 1 delay, got %d", len(parsed.Data.GlobalActions.Delays))
	}
}

func TestSimulationYAMLRoundTrip(t *testing.T) {
	s := New([]RequestResponsePair{samplePair("/a")}, nil)

	data, err := s.EncodeYAML()
	if err != nil {
		t.Fatalf("EncodeYAML failed: %v", err)
	}

	parsed, err := DecodeYAML(data)
	if err != nil {
		t.Fatalf("DecodeYAML failed: %v", err)
	}
	if len(parsed.Data.Pairs) != 1 {
		t.Fatalf("Expected 1 pair, got %d", len(parsed.Data.Pairs))
	}
	if !parsed.Data.Pairs[0].Equal(s.Data.Pairs[0]) {
		t.Error("Expected round-tripped pair to equal original")
	}
}

func TestSimulationSaveLoad(t *testing.T) {
	dir := t.TempDir()
	s := New([]RequestResponsePair{samplePair("/a")}, nil)

	for _, name := range []string{"sim.json", "sim.yaml"} {
		path := filepath.Join(dir, name)
		if err := s.Save(path); err != nil {
			t.Fatalf("Save(%s) failed: %v", name, err)
		}
		loaded, err := Load(path)
		if err != nil {
			t.Fatalf("Load(%s) failed: %v", name, err)
		}
		if !loaded.Data.Pairs[0].Equal(s.Data.Pairs[0]) {
			t.Errorf("%s: loaded pair differs from saved pair", name)
		}
	}
}

func TestSimulationValidate(t *testing.T) {
	ok := New([]RequestResponsePair{samplePair("/a")}, nil)
	if err := ok.Validate(); err != nil {
		t.Errorf("Expected valid simulation, got %v", err)
	}

	missingDest := New([]RequestResponsePair{samplePair("/a")}, nil)
	missingDest.Data.Pairs[0].Request.Destination = nil
	if err := missingDest.Validate(); err == nil {
		t.Error("Expected missing destination to fail validation")
	}

	globDest := New([]RequestResponsePair{samplePair("/a")}, nil)
	globDest.Data.Pairs[0].Request.Destination = Glob("*.example.com")
	if err := globDest.Validate(); err == nil {
		t.Error("Expected non-exact destination to fail validation")
	}

	dup := New([]RequestResponsePair{samplePair("/a"), samplePair("/a")}, nil)
	if err := dup.Validate(); err == nil {
		t.Error("Expected duplicate pair to fail validation")
	}

	badVersion := New(nil, nil)
	badVersion.Meta.SchemaVersion = "v9"
	if err := badVersion.Validate(); err == nil {
		t.Error("Expected unsupported schema version to fail validation")
	}

	badDelay := New(nil, []DelaySettings{{URLPattern: "", Delay: 10}})
	if err := badDelay.Validate(); err == nil {
		t.Error("Expected delay without urlPattern to fail validation")
	}
}
