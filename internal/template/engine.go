package template

import (
	"math/rand"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
)

// Engine substitutes {{...}} variables in templated response bodies and
// headers. The external engine performs the same substitution at replay
// time; this implementation exists so responses can be previewed locally.
type Engine struct {
	rng *rand.Rand
	now func() time.Time
}

// NewEngine creates a template engine.
func NewEngine() *Engine {
	return &Engine{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
		now: time.Now,
	}
}

// Context carries the request data available to templates.
type Context struct {
	Method      string
	Path        string
	QueryParams map[string][]string
	Headers     map[string][]string
	Body        string
}

var variablePattern = regexp.MustCompile(`\{\{([^}]+)\}\}`)

// Process replaces all template variables in the input. Unknown
// variables resolve to the empty string.
func (e *Engine) Process(template string, ctx *Context) string {
	return variablePattern.ReplaceAllStringFunc(template, func(match string) string {
		name := strings.TrimSpace(match[2 : len(match)-2])
		return e.resolve(name, ctx)
	})
}

// ProcessHeaders applies Process to every header value.
func (e *Engine) ProcessHeaders(headers map[string][]string, ctx *Context) map[string][]string {
	result := make(map[string][]string, len(headers))
	for key, values := range headers {
		out := make([]string, len(values))
		for i, v := range values {
			out[i] = e.Process(v, ctx)
		}
		result[key] = out
	}
	return result
}

// resolve maps a dotted variable name to its value. Supported sources:
// method, path, query.<key>, header.<key>, body.<gjson path>, uuid,
// randomInt, randomInt.<max>, timestamp.
func (e *Engine) resolve(name string, ctx *Context) string {
	name = strings.TrimPrefix(name, ".")

	parts := strings.SplitN(name, ".", 2)
	source := parts[0]
	var key string
	if len(parts) > 1 {
		key = parts[1]
	}

	switch source {
	case "method":
		return ctx.Method
	case "path":
		return ctx.Path
	case "query":
		if key != "" && ctx.QueryParams != nil {
			if vals, ok := ctx.QueryParams[key]; ok && len(vals) > 0 {
				return vals[0]
			}
		}
	case "header":
		if key != "" && ctx.Headers != nil {
			// Headers are case-insensitive
			for k, vals := range ctx.Headers {
				if strings.EqualFold(k, key) && len(vals) > 0 {
					return vals[0]
				}
			}
		}
	case "body":
		if key != "" && ctx.Body != "" {
			result := gjson.Get(ctx.Body, key)
			if result.Exists() {
				return result.String()
			}
		}
	case "uuid":
		return uuid.New().String()
	case "randomInt":
		limit := 100
		if key != "" {
			if n, err := strconv.Atoi(key); err == nil && n > 0 {
				limit = n
			}
		}
		return strconv.Itoa(e.rng.Intn(limit))
	case "timestamp":
		return e.now().UTC().Format(time.RFC3339)
	}

	return ""
}
