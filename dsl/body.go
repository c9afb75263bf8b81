package dsl

import (
	"encoding/json"
	"fmt"

	"github.com/beevik/etree"
)

// BodyConverter renders a structured value into a body string plus its
// content type. Request matchers use only the body; response builders
// also apply the content type as a header.
type BodyConverter interface {
	Body() string
	ContentType() string
}

type bodyConverter struct {
	body        string
	contentType string
}

func (c bodyConverter) Body() string        { return c.body }
func (c bodyConverter) ContentType() string { return c.contentType }

// JSONBody marshals v into a JSON body converter. Marshaling failure is
// a programming defect, not an input error, and panics.
func JSONBody(v any) BodyConverter {
	data, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("dsl: cannot marshal JSON body: %v", err))
	}
	return bodyConverter{body: string(data), contentType: "application/json"}
}

// XMLBody normalizes a raw XML string into a canonical single-line body
// converter so that formatting differences never break exact matching.
// Malformed XML is a programming defect and panics.
func XMLBody(raw string) BodyConverter {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(raw); err != nil {
		panic(fmt.Sprintf("dsl: cannot parse XML body: %v", err))
	}
	doc.Indent(etree.NoIndent)
	out, err := doc.WriteToString()
	if err != nil {
		panic(fmt.Sprintf("dsl: cannot serialize XML body: %v", err))
	}
	return bodyConverter{body: out, contentType: "application/xml"}
}
