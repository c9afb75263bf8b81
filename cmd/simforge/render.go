package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simforge/simforge/internal/template"
	"github.com/simforge/simforge/sim"
)

var renderCmd = &cobra.Command{
	Use:   "render <simulation-file>",
	Short: "Preview a response body with template variables resolved",
	Long: `Render loads a simulation, picks one request-response pair and prints
its response with {{...}} template variables substituted from the
sample request data given on the command line. Responses that are not
templated are printed as-is.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderPair    int
	renderMethod  string
	renderPath    string
	renderQuery   []string
	renderHeaders []string
	renderBody    string
)

func init() {
	renderCmd.Flags().IntVar(&renderPair, "pair", 0, "Index of the pair to render")
	renderCmd.Flags().StringVar(&renderMethod, "method", "GET", "Sample request method")
	renderCmd.Flags().StringVar(&renderPath, "path", "/", "Sample request path")
	renderCmd.Flags().StringArrayVar(&renderQuery, "query", nil, "Sample query parameter as key=value (repeatable)")
	renderCmd.Flags().StringArrayVar(&renderHeaders, "header", nil, "Sample header as Name:value (repeatable)")
	renderCmd.Flags().StringVar(&renderBody, "body", "", "Sample request body")
}

func runRender(cmd *cobra.Command, args []string) error {
	s, err := sim.Load(args[0])
	if err != nil {
		return err
	}

	if renderPair < 0 || renderPair >= len(s.Data.Pairs) {
		return fmt.Errorf("pair index %d out of range, simulation has %d pairs", renderPair, len(s.Data.Pairs))
	}
	pair := s.Data.Pairs[renderPair]

	ctx := &template.Context{
		Method:      renderMethod,
		Path:        renderPath,
		QueryParams: splitPairs(renderQuery, "="),
		Headers:     splitPairs(renderHeaders, ":"),
		Body:        renderBody,
	}

	body := pair.Response.Body
	headers := pair.Response.Headers
	if pair.Response.Templated {
		engine := template.NewEngine()
		body = engine.Process(body, ctx)
		headers = engine.ProcessHeaders(headers, ctx)
	}

	fmt.Printf("HTTP %d\n", pair.Response.Status)
	for name, values := range headers {
		for _, v := range values {
			fmt.Printf("%s: %s\n", name, v)
		}
	}
	fmt.Println()
	fmt.Println(body)
	return nil
}

// splitPairs turns repeated "key<sep>value" flags into a multimap.
func splitPairs(items []string, sep string) map[string][]string {
	if len(items) == 0 {
		return nil
	}
	out := make(map[string][]string, len(items))
	for _, item := range items {
		key, value, _ := strings.Cut(item, sep)
		key = strings.TrimSpace(key)
		out[key] = append(out[key], strings.TrimSpace(value))
	}
	return out
}
