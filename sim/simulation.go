package sim

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// SchemaVersion is the simulation document schema this package produces.
const SchemaVersion = "v1"

// Simulation is the exported artifact consumed by the external matching
// engine: the deduplicated pair set plus global delay settings.
type Simulation struct {
	Data Data `json:"data" yaml:"data"`
	Meta Meta `json:"meta" yaml:"meta"`
}

// Data holds the simulation payload.
type Data struct {
	Pairs         []RequestResponsePair `json:"pairs" yaml:"pairs"`
	GlobalActions GlobalActions         `json:"globalActions" yaml:"globalActions"`
}

// GlobalActions holds engine-wide replay behaviour.
type GlobalActions struct {
	Delays []DelaySettings `json:"delays" yaml:"delays"`
}

// Meta identifies the document schema.
type Meta struct {
	SchemaVersion string `json:"schemaVersion" yaml:"schemaVersion"`
}

// New assembles a simulation document from pairs and delay settings.
func New(pairs []RequestResponsePair, delays []DelaySettings) *Simulation {
	if pairs == nil {
		pairs = []RequestResponsePair{}
	}
	if delays == nil {
		delays = []DelaySettings{}
	}
	return &Simulation{
		Data: Data{Pairs: pairs, GlobalActions: GlobalActions{Delays: delays}},
		Meta: Meta{SchemaVersion: SchemaVersion},
	}
}

// EncodeJSON serializes the simulation as indented JSON.
func (s *Simulation) EncodeJSON() ([]byte, error) {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode simulation: %w", err)
	}
	return data, nil
}

// DecodeJSON parses a JSON simulation document.
func DecodeJSON(data []byte) (*Simulation, error) {
	var s Simulation
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode simulation: %w", err)
	}
	return &s, nil
}

// EncodeYAML serializes the simulation as YAML.
func (s *Simulation) EncodeYAML() ([]byte, error) {
	data, err := yaml.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to encode simulation: %w", err)
	}
	return data, nil
}

// DecodeYAML parses a YAML simulation document.
func DecodeYAML(data []byte) (*Simulation, error) {
	var s Simulation
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode simulation: %w", err)
	}
	return &s, nil
}

// Load reads a simulation from disk, choosing the codec by file
// extension (.yaml/.yml for YAML, JSON otherwise).
func Load(path string) (*Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read simulation file: %w", err)
	}
	if isYAMLPath(path) {
		return DecodeYAML(data)
	}
	return DecodeJSON(data)
}

// Save writes the simulation to disk, choosing the codec by file
// extension the same way Load does.
func (s *Simulation) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAMLPath(path) {
		data, err = s.EncodeYAML()
	} else {
		data, err = s.EncodeJSON()
	}
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write simulation file: %w", err)
	}
	return nil
}

func isYAMLPath(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Validate checks the document invariants: a known schema version, a
// mandatory exact destination per pair, well-formed matchers, and no
// structurally duplicate pairs.
func (s *Simulation) Validate() error {
	if s.Meta.SchemaVersion != "" && s.Meta.SchemaVersion != SchemaVersion {
		return fmt.Errorf("unsupported schema version %q", s.Meta.SchemaVersion)
	}

	set := NewPairSet()
	for i, p := range s.Data.Pairs {
		if p.Request.Destination == nil {
			return fmt.Errorf("pair %d: destination is mandatory", i)
		}
		if p.Request.Destination.Kind != MatchExact {
			return fmt.Errorf("pair %d: destination must be an exact matcher, got %q", i, p.Request.Destination.Kind)
		}
		for name, m := range map[string]*Matcher{
			"path":   p.Request.Path,
			"method": p.Request.Method,
			"scheme": p.Request.Scheme,
			"query":  p.Request.Query,
			"body":   p.Request.Body,
		} {
			if err := m.Validate(); err != nil {
				return fmt.Errorf("pair %d: %s: %w", i, name, err)
			}
		}
		if !set.Add(p) {
			return fmt.Errorf("pair %d: duplicate of an earlier pair", i)
		}
	}

	for i, d := range s.Data.GlobalActions.Delays {
		if d.URLPattern == "" {
			return fmt.Errorf("delay %d: urlPattern is mandatory", i)
		}
		if d.Delay < 0 {
			return fmt.Errorf("delay %d: negative delay", i)
		}
	}

	return nil
}
