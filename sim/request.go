package sim

// Request describes one matchable request: seven matcher slots, with
// headers modeled as a name to expected-values mapping rather than a
// single field matcher. Destination is mandatory and always exact;
// a nil scheme matches both http and https.
type Request struct {
	Path        *Matcher            `json:"path" yaml:"path"`
	Method      *Matcher            `json:"method" yaml:"method"`
	Destination *Matcher            `json:"destination" yaml:"destination"`
	Scheme      *Matcher            `json:"scheme" yaml:"scheme"`
	Query       *Matcher            `json:"query" yaml:"query"`
	Body        *Matcher            `json:"body" yaml:"body"`
	Headers     map[string][]string `json:"headers" yaml:"headers"`
}

// Equal reports full structural equality of two requests.
func (r Request) Equal(o Request) bool {
	if !r.Path.Equal(o.Path) ||
		!r.Method.Equal(o.Method) ||
		!r.Destination.Equal(o.Destination) ||
		!r.Scheme.Equal(o.Scheme) ||
		!r.Query.Equal(o.Query) ||
		!r.Body.Equal(o.Body) {
		return false
	}
	return headersEqual(r.Headers, o.Headers)
}

func headersEqual(a, b map[string][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, av := range a {
		bv, ok := b[k]
		if !ok || len(av) != len(bv) {
			return false
		}
		for i := range av {
			if av[i] != bv[i] {
				return false
			}
		}
	}
	return true
}
