package dsl

import (
	"fmt"

	"github.com/simforge/simforge/sim"
)

// EqualsTo returns an exact matcher for the given value. Non-string
// values are rendered with fmt.Sprint.
func EqualsTo(value any) *sim.Matcher {
	return sim.Exact(stringify(value))
}

// Matches returns a glob matcher where `*` matches zero or more
// arbitrary characters.
func Matches(pattern string) *sim.Matcher {
	return sim.Glob(pattern)
}

// Any returns a matcher satisfied by every value.
func Any() *sim.Matcher {
	return sim.Glob("*")
}

// StartsWith returns a glob matcher for values beginning with prefix.
func StartsWith(prefix string) *sim.Matcher {
	return sim.Glob(prefix + "*")
}

// EndsWith returns a glob matcher for values ending with suffix.
func EndsWith(suffix string) *sim.Matcher {
	return sim.Glob("*" + suffix)
}

// Contains returns a glob matcher for values containing substr.
func Contains(substr string) *sim.Matcher {
	return sim.Glob("*" + substr + "*")
}

// toMatcher lifts a literal argument to an exact matcher; *sim.Matcher
// arguments pass through untouched.
func toMatcher(v any) *sim.Matcher {
	if m, ok := v.(*sim.Matcher); ok {
		return m
	}
	return sim.Exact(stringify(v))
}

func stringify(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
