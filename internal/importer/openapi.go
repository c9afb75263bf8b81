// Package importer generates skeleton simulations from OpenAPI 3
// documents: one request/response pair per operation, ready to be
// refined by hand or pushed to the engine as-is.
package importer

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/rs/zerolog"

	"github.com/simforge/simforge/dsl"
	"github.com/simforge/simforge/sim"
)

// Options controls simulation generation.
type Options struct {
	// BaseURL overrides the document's first server URL.
	BaseURL string
	// Include restricts generation to operations whose path matches any
	// of these glob patterns (doublestar syntax, `**` crosses segments).
	Include []string
	// Exclude drops operations whose path matches any of these patterns.
	Exclude []string
}

// Importer converts OpenAPI documents into simulations.
type Importer struct {
	log zerolog.Logger
}

// New creates an importer.
func New(log zerolog.Logger) *Importer {
	return &Importer{log: log}
}

// FromFile reads an OpenAPI document from disk and generates a
// simulation from it.
func (i *Importer) FromFile(path string, opts Options) (*sim.Simulation, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}
	return i.FromData(data, opts)
}

// FromData generates a simulation from raw OpenAPI document bytes.
func (i *Importer) FromData(data []byte, opts Options) (*sim.Simulation, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI spec: %w", err)
	}
	if err := doc.Validate(loader.Context); err != nil {
		return nil, fmt.Errorf("invalid OpenAPI spec: %w", err)
	}

	baseURL := opts.BaseURL
	if baseURL == "" {
		if len(doc.Servers) == 0 || doc.Servers[0].URL == "" {
			return nil, fmt.Errorf("OpenAPI spec declares no servers; pass a base URL")
		}
		baseURL = doc.Servers[0].URL
	}
	baseURL = strings.TrimRight(baseURL, "/")

	service := dsl.Service(baseURL)
	count := 0

	// Sorted paths keep the generated document deterministic.
	paths := doc.Paths.Map()
	sortedPaths := make([]string, 0, len(paths))
	for p := range paths {
		sortedPaths = append(sortedPaths, p)
	}
	sort.Strings(sortedPaths)

	for _, pathPattern := range sortedPaths {
		pathItem := paths[pathPattern]
		if pathItem == nil || !i.includePath(pathPattern, opts) {
			continue
		}

		for _, entry := range []struct {
			method string
			op     *openapi3.Operation
		}{
			{"GET", pathItem.Get},
			{"POST", pathItem.Post},
			{"PUT", pathItem.Put},
			{"DELETE", pathItem.Delete},
			{"PATCH", pathItem.Patch},
		} {
			if entry.op == nil {
				continue
			}
			i.addPair(service, entry.method, pathPattern, entry.op)
			count++
		}
	}

	i.log.Info().Int("operations", count).Str("baseUrl", baseURL).Msg("Generated simulation from OpenAPI spec")
	return dsl.Simulation(service), nil
}

func (i *Importer) includePath(path string, opts Options) bool {
	for _, pattern := range opts.Exclude {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return false
		}
	}
	if len(opts.Include) == 0 {
		return true
	}
	for _, pattern := range opts.Include {
		if ok, err := doublestar.Match(pattern, path); err == nil && ok {
			return true
		}
	}
	return false
}

var pathParamPattern = regexp.MustCompile(`\{[^}]+\}`)

func (i *Importer) addPair(service *dsl.StubServiceBuilder, method, pathPattern string, op *openapi3.Operation) {
	// Template parameters become glob wildcards: /users/{id} matches any id.
	var pathArg any = pathPattern
	if pathParamPattern.MatchString(pathPattern) {
		pathArg = dsl.Matches(pathParamPattern.ReplaceAllString(pathPattern, "*"))
	}

	var builder *dsl.RequestMatcherBuilder
	switch method {
	case "GET":
		builder = service.Get(pathArg)
	case "POST":
		builder = service.Post(pathArg)
	case "PUT":
		builder = service.Put(pathArg)
	case "DELETE":
		builder = service.Delete(pathArg)
	case "PATCH":
		builder = service.Patch(pathArg)
	default:
		return
	}

	// Generated skeletons accept any body and query so the stub matches
	// before it is refined.
	builder.AnyBody().AnyQueryParams()

	status, body := exampleResponse(op)
	response := dsl.Response().Status(status)
	if body != "" {
		response.Body(body).Header("Content-Type", "application/json")
	}
	builder.WillReturn(response)
}

// exampleResponse picks the lowest declared 2xx status (falling back to
// 200) and its JSON example body, when one exists.
func exampleResponse(op *openapi3.Operation) (int, string) {
	status := 200
	var body string

	if op.Responses == nil {
		return status, body
	}

	codes := make([]int, 0)
	for code := range op.Responses.Map() {
		if n, err := strconv.Atoi(code); err == nil && n >= 200 && n < 300 {
			codes = append(codes, n)
		}
	}
	if len(codes) == 0 {
		return status, body
	}
	sort.Ints(codes)
	status = codes[0]

	ref := op.Responses.Map()[strconv.Itoa(status)]
	if ref == nil || ref.Value == nil {
		return status, body
	}
	content := ref.Value.Content.Get("application/json")
	if content == nil || content.Example == nil {
		return status, body
	}
	if data, err := json.Marshal(content.Example); err == nil {
		body = string(data)
	}
	return status, body
}
