package sim

import "encoding/json"

// Response is the canned reply returned when the paired request matches.
// Body and headers may contain template variables when Templated is set;
// the engine substitutes them at replay time.
type Response struct {
	Status    int                 `json:"status" yaml:"status"`
	Body      string              `json:"body" yaml:"body"`
	Headers   map[string][]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Templated bool                `json:"templated,omitempty" yaml:"templated,omitempty"`
}

// Equal reports structural equality of two responses.
func (r Response) Equal(o Response) bool {
	return r.Status == o.Status &&
		r.Body == o.Body &&
		r.Templated == o.Templated &&
		headersEqual(r.Headers, o.Headers)
}

// RequestResponsePair is an immutable association between one request
// descriptor and one response.
type RequestResponsePair struct {
	Request  Request  `json:"request" yaml:"request"`
	Response Response `json:"response" yaml:"response"`
}

// Equal reports full structural equality of two pairs.
func (p RequestResponsePair) Equal(o RequestResponsePair) bool {
	return p.Request.Equal(o.Request) && p.Response.Equal(o.Response)
}

// fingerprint produces a canonical key for deduplication. encoding/json
// sorts map keys, so structurally equal pairs always produce the same
// bytes. Nil request headers canonicalize to the empty map first, since
// Equal treats the two alike but they marshal differently.
func (p RequestResponsePair) fingerprint() string {
	if p.Request.Headers == nil {
		p.Request.Headers = map[string][]string{}
	}
	data, err := json.Marshal(p)
	if err != nil {
		return ""
	}
	return string(data)
}

// PairSet is a collection of pairs deduplicated by full structural
// equality. Insertion order is preserved for deterministic export, but
// carries no matching significance.
type PairSet struct {
	seen  map[string]struct{}
	pairs []RequestResponsePair
}

// NewPairSet returns an empty pair set.
func NewPairSet() *PairSet {
	return &PairSet{seen: make(map[string]struct{})}
}

// Add inserts a pair, reporting false if a structurally identical pair
// is already present.
func (s *PairSet) Add(p RequestResponsePair) bool {
	fp := p.fingerprint()
	if _, dup := s.seen[fp]; dup {
		return false
	}
	s.seen[fp] = struct{}{}
	s.pairs = append(s.pairs, p)
	return true
}

// Len reports the number of distinct pairs.
func (s *PairSet) Len() int {
	return len(s.pairs)
}

// Pairs returns the distinct pairs in insertion order.
func (s *PairSet) Pairs() []RequestResponsePair {
	out := make([]RequestResponsePair, len(s.pairs))
	copy(out, s.pairs)
	return out
}

// DelaySettings configures artificial latency applied by the engine at
// replay time, for all requests whose URL matches URLPattern (and
// method matches HTTPMethod, when set).
type DelaySettings struct {
	URLPattern string `json:"urlPattern" yaml:"urlPattern"`
	HTTPMethod string `json:"httpMethod,omitempty" yaml:"httpMethod,omitempty"`
	Delay      int    `json:"delay" yaml:"delay"` // milliseconds
}
