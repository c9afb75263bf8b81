package dsl

import (
	"net/http"
	"strings"
	"time"

	"github.com/simforge/simforge/sim"
)

const schemeSeparator = "://"

// StubServiceBuilder accumulates request/response pairs and delay
// settings for one simulated service. Each builder is locked to a
// single base URL; derive per-method matcher builders from it, attach a
// response with WillReturn, and the pair folds back into this builder.
//
// Builders form a single-owner object graph meant to be driven from one
// goroutine; they are not safe for concurrent mutation.
type StubServiceBuilder struct {
	destination *sim.Matcher
	scheme      *sim.Matcher
	pairs       *sim.PairSet
	delays      []sim.DelaySettings
}

// Service creates a builder for the given base URL. The URL is split on
// the first `://`: the prefix becomes an exact scheme matcher and the
// remainder the destination. Without a separator the whole string is
// the destination and any scheme is accepted.
func Service(baseURL string) *StubServiceBuilder {
	b := &StubServiceBuilder{pairs: sim.NewPairSet()}
	if i := strings.Index(baseURL, schemeSeparator); i >= 0 {
		b.scheme = sim.Exact(baseURL[:i])
		b.destination = sim.Exact(baseURL[i+len(schemeSeparator):])
	} else {
		b.destination = sim.Exact(baseURL)
	}
	return b
}

// Get creates a GET request matcher for the given path, which is either
// a literal string or a *sim.Matcher.
func (b *StubServiceBuilder) Get(path any) *RequestMatcherBuilder {
	return b.method(sim.Exact(http.MethodGet), path)
}

// Put creates a PUT request matcher for the given path.
func (b *StubServiceBuilder) Put(path any) *RequestMatcherBuilder {
	return b.method(sim.Exact(http.MethodPut), path)
}

// Post creates a POST request matcher for the given path.
func (b *StubServiceBuilder) Post(path any) *RequestMatcherBuilder {
	return b.method(sim.Exact(http.MethodPost), path)
}

// Delete creates a DELETE request matcher for the given path.
func (b *StubServiceBuilder) Delete(path any) *RequestMatcherBuilder {
	return b.method(sim.Exact(http.MethodDelete), path)
}

// Patch creates a PATCH request matcher for the given path.
func (b *StubServiceBuilder) Patch(path any) *RequestMatcherBuilder {
	return b.method(sim.Exact(http.MethodPatch), path)
}

// AnyMethod creates a request matcher for the given path that accepts
// every HTTP method.
func (b *StubServiceBuilder) AnyMethod(path any) *RequestMatcherBuilder {
	return b.method(nil, path)
}

func (b *StubServiceBuilder) method(method *sim.Matcher, path any) *RequestMatcherBuilder {
	return newRequestMatcherBuilder(b, method, b.scheme, b.destination, toMatcher(path))
}

// RequestResponsePairs returns the deduplicated pairs collected so far,
// in registration order.
func (b *StubServiceBuilder) RequestResponsePairs() []sim.RequestResponsePair {
	return b.pairs.Pairs()
}

// DelaySettings returns the delay settings collected so far, in
// registration order.
func (b *StubServiceBuilder) DelaySettings() []sim.DelaySettings {
	out := make([]sim.DelaySettings, len(b.delays))
	copy(out, b.delays)
	return out
}

// AndDelay starts a service-wide delay declaration; finish it with
// ForAll or ForMethod.
func (b *StubServiceBuilder) AndDelay(delay time.Duration) *StubServiceDelaySettingsBuilder {
	return &StubServiceDelaySettingsBuilder{delay: delay, service: b}
}

// addPair registers a finished pair. Structural duplicates collapse to
// a single entry.
func (b *StubServiceBuilder) addPair(p sim.RequestResponsePair) *StubServiceBuilder {
	b.pairs.Add(p)
	return b
}

// addDelaySetting appends a delay setting; a nil setting is ignored.
func (b *StubServiceBuilder) addDelaySetting(d *sim.DelaySettings) {
	if d != nil {
		b.delays = append(b.delays, *d)
	}
}

// destinationPattern is the literal destination, used to build delay
// URL patterns.
func (b *StubServiceBuilder) destinationPattern() string {
	return b.destination.Value
}
