package sim

import (
	"fmt"
	"regexp"
	"strings"
)

// MatcherKind identifies how a Matcher compares a request field value.
type MatcherKind string

// Supported matcher kinds
const (
	MatchExact MatcherKind = "exact"
	MatchGlob  MatcherKind = "glob"
)

// Matcher constrains a single request field. A nil *Matcher places no
// constraint on the field at all, including its absence.
type Matcher struct {
	Kind  MatcherKind `json:"matcher" yaml:"matcher"`
	Value string      `json:"value" yaml:"value"`
}

// Exact returns a matcher satisfied only by a value that string-equals v.
func Exact(v string) *Matcher {
	return &Matcher{Kind: MatchExact, Value: v}
}

// Glob returns a matcher satisfied by values conforming to pattern,
// where `*` matches zero or more arbitrary characters.
func Glob(pattern string) *Matcher {
	return &Matcher{Kind: MatchGlob, Value: pattern}
}

// Blank returns a matcher satisfied by an absent or empty field. It is a
// distinct state from a nil matcher, which accepts any value.
func Blank() *Matcher {
	return Exact("")
}

// Matches reports whether value satisfies the matcher. A nil matcher
// accepts every value.
func (m *Matcher) Matches(value string) bool {
	if m == nil {
		return true
	}
	switch m.Kind {
	case MatchGlob:
		return globMatch(m.Value, value)
	default:
		return m.Value == value
	}
}

// Equal reports structural equality (kind and value). Two nil matchers
// are equal; a nil matcher never equals a non-nil one.
func (m *Matcher) Equal(o *Matcher) bool {
	if m == nil || o == nil {
		return m == nil && o == nil
	}
	return m.Kind == o.Kind && m.Value == o.Value
}

// Validate checks that the matcher kind is known.
func (m *Matcher) Validate() error {
	if m == nil {
		return nil
	}
	switch m.Kind {
	case MatchExact, MatchGlob:
		return nil
	default:
		return fmt.Errorf("unknown matcher kind %q", m.Kind)
	}
}

// globMatch evaluates a glob pattern where `*` matches any run of
// characters, separators included. path.Match style segment globbing is
// deliberately not used: query strings and URL paths must be matchable
// across `/` and `&` boundaries.
func globMatch(pattern, value string) bool {
	var b strings.Builder
	b.WriteString(`(?s)^`)
	for i, part := range strings.Split(pattern, "*") {
		if i > 0 {
			b.WriteString(`.*`)
		}
		b.WriteString(regexp.QuoteMeta(part))
	}
	b.WriteString(`$`)

	re, err := regexp.Compile(b.String())
	if err != nil {
		return false
	}
	return re.MatchString(value)
}
