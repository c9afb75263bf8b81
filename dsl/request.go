package dsl

import (
	"net/url"
	"strings"

	"github.com/simforge/simforge/sim"
)

// RequestMatcherBuilder composes the matcher slots of one request
// descriptor. Method, scheme, destination and path are fixed at
// creation; body, headers and query parameters accumulate through
// chained calls until WillReturn finalizes the descriptor and registers
// it with the parent service builder.
type RequestMatcherBuilder struct {
	service     *StubServiceBuilder
	method      *sim.Matcher
	scheme      *sim.Matcher
	destination *sim.Matcher
	path        *sim.Matcher

	query       *sim.Matcher
	body        *sim.Matcher
	headers     map[string][]string
	queryParams *queryMultimap
	fuzzyQuery  bool
}

func newRequestMatcherBuilder(service *StubServiceBuilder, method, scheme, destination, path *sim.Matcher) *RequestMatcherBuilder {
	return &RequestMatcherBuilder{
		service:     service,
		method:      method,
		scheme:      scheme,
		destination: destination,
		path:        path,
		query:       sim.Blank(),
		body:        sim.Blank(),
		headers:     make(map[string][]string),
		queryParams: newQueryMultimap(),
	}
}

// Body sets the body matcher. A string literal (or a BodyConverter's
// rendered body) is matched exactly; a *sim.Matcher is used as-is.
func (b *RequestMatcherBuilder) Body(body any) *RequestMatcherBuilder {
	switch v := body.(type) {
	case *sim.Matcher:
		b.body = v
	case BodyConverter:
		b.body = sim.Exact(v.Body())
	default:
		b.body = sim.Exact(stringify(v))
	}
	return b
}

// AnyBody clears body matching entirely: any body, including none,
// matches. This is a distinct state from the default blank matcher,
// which only accepts an empty body.
func (b *RequestMatcherBuilder) AnyBody() *RequestMatcherBuilder {
	b.body = nil
	return b
}

// Header sets a single-valued exact header expectation. Repeated calls
// with the same key replace the prior value.
func (b *RequestMatcherBuilder) Header(key, value string) *RequestMatcherBuilder {
	b.headers[key] = []string{value}
	return b
}

// QueryParam registers query parameter expectations. The key and each
// value may be a string literal (lifted to an exact matcher) or a
// *sim.Matcher; a nil matcher means any, as everywhere else. With no
// values the key is expected to be present with any value. Once any
// key or value across all calls is non-exact, the whole composed query
// string degrades to glob matching.
func (b *RequestMatcherBuilder) QueryParam(key any, values ...any) *RequestMatcherBuilder {
	keyMatcher := toQueryMatcher(key)
	if keyMatcher.Kind != sim.MatchExact {
		b.fuzzyQuery = true
	}

	if len(values) == 0 {
		b.queryParams.add(keyMatcher, Any())
		b.fuzzyQuery = true
		return b
	}

	for _, value := range values {
		valueMatcher := toQueryMatcher(value)
		if valueMatcher.Kind != sim.MatchExact {
			b.fuzzyQuery = true
		}
		b.queryParams.add(keyMatcher, valueMatcher)
	}
	return b
}

// toQueryMatcher lifts a QueryParam argument to a matcher. A nil
// matcher cannot stand alone inside the composed query string, so it
// becomes the any-value glob.
func toQueryMatcher(v any) *sim.Matcher {
	if v == nil {
		return Any()
	}
	if m := toMatcher(v); m != nil {
		return m
	}
	return Any()
}

// AnyQueryParams accepts any query string. Precedence against
// QueryParam is last-call-wins: this call discards previously added
// parameters, and a later QueryParam call overrides it again.
func (b *RequestMatcherBuilder) AnyQueryParams() *RequestMatcherBuilder {
	b.query = nil
	b.queryParams = newQueryMultimap()
	b.fuzzyQuery = false
	return b
}

// WillReturn finalizes the request descriptor, pairs it with the built
// response, registers the pair and any response delay with the parent
// service builder, and returns the parent for further chaining.
func (b *RequestMatcherBuilder) WillReturn(response *ResponseBuilder) *StubServiceBuilder {
	request := b.build()
	service := b.service.addPair(sim.RequestResponsePair{
		Request:  request,
		Response: response.build(),
	})
	response.registerDelay(service, request)
	return service
}

// build encodes the composed query and assembles the descriptor. Query
// encoding happens here, once, not incrementally.
func (b *RequestMatcherBuilder) build() sim.Request {
	query := b.query
	if !b.queryParams.isEmpty() {
		encoded := b.queryParams.encode()
		if b.fuzzyQuery {
			query = sim.Glob(encoded)
		} else {
			query = sim.Exact(encoded)
		}
	}

	headers := make(map[string][]string, len(b.headers))
	for k, v := range b.headers {
		headers[k] = append([]string(nil), v...)
	}

	return sim.Request{
		Path:        b.path,
		Method:      b.method,
		Destination: b.destination,
		Scheme:      b.scheme,
		Query:       query,
		Body:        b.body,
		Headers:     headers,
	}
}

// queryMultimap maps field-matcher keys to ordered, repeatable lists of
// field-matcher values, preserving first-insertion key order. Keys are
// grouped by structural identity.
type queryMultimap struct {
	order   []*sim.Matcher
	entries map[string][]*sim.Matcher
}

func newQueryMultimap() *queryMultimap {
	return &queryMultimap{entries: make(map[string][]*sim.Matcher)}
}

func (m *queryMultimap) add(key, value *sim.Matcher) {
	k := matcherKey(key)
	if _, exists := m.entries[k]; !exists {
		m.order = append(m.order, key)
	}
	m.entries[k] = append(m.entries[k], value)
}

func (m *queryMultimap) isEmpty() bool {
	return len(m.order) == 0
}

// encode form-encodes every key=value pair and joins them with `&` in
// insertion order, producing the composite query pattern.
func (m *queryMultimap) encode() string {
	var parts []string
	for _, key := range m.order {
		for _, value := range m.entries[matcherKey(key)] {
			parts = append(parts, encodeQueryComponent(key.Value)+"="+encodeQueryComponent(value.Value))
		}
	}
	return strings.Join(parts, "&")
}

func matcherKey(m *sim.Matcher) string {
	return string(m.Kind) + "\x00" + m.Value
}

// encodeQueryComponent form-encodes a pattern with `+` replaced by
// `%20`. Glob metacharacters are left unescaped so fuzzy patterns
// survive encoding.
func encodeQueryComponent(s string) string {
	encoded := url.QueryEscape(s)
	encoded = strings.ReplaceAll(encoded, "+", "%20")
	return strings.ReplaceAll(encoded, "%2A", "*")
}
