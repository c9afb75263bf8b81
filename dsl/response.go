package dsl

import (
	"net/http"
	"time"

	"github.com/simforge/simforge/sim"
)

// ResponseBuilder composes the canned response for a matched request.
type ResponseBuilder struct {
	status    int
	body      string
	headers   map[string][]string
	templated bool
	delay     time.Duration
}

// Response creates a response builder with a 200 status.
func Response() *ResponseBuilder {
	return &ResponseBuilder{
		status:  http.StatusOK,
		headers: make(map[string][]string),
	}
}

// Status sets the response status code.
func (r *ResponseBuilder) Status(code int) *ResponseBuilder {
	r.status = code
	return r
}

// Body sets the response body. A BodyConverter also sets the
// Content-Type header; a string literal is used verbatim.
func (r *ResponseBuilder) Body(body any) *ResponseBuilder {
	if c, ok := body.(BodyConverter); ok {
		r.body = c.Body()
		return r.Header("Content-Type", c.ContentType())
	}
	r.body = stringify(body)
	return r
}

// Header adds response header values. Unlike request header matchers,
// response headers accumulate.
func (r *ResponseBuilder) Header(key string, values ...string) *ResponseBuilder {
	r.headers[key] = append(r.headers[key], values...)
	return r
}

// Templated marks the body and headers for template substitution by the
// engine at replay time.
func (r *ResponseBuilder) Templated() *ResponseBuilder {
	r.templated = true
	return r
}

// WithDelay attaches artificial latency to this response. The delay is
// registered against the matched request's destination and path when
// the pair is finalized.
func (r *ResponseBuilder) WithDelay(delay time.Duration) *ResponseBuilder {
	r.delay = delay
	return r
}

func (r *ResponseBuilder) build() sim.Response {
	resp := sim.Response{
		Status:    r.status,
		Body:      r.body,
		Templated: r.templated,
	}
	if len(r.headers) > 0 {
		resp.Headers = make(map[string][]string, len(r.headers))
		for k, v := range r.headers {
			resp.Headers[k] = append([]string(nil), v...)
		}
	}
	return resp
}

// registerDelay folds a response-declared delay into the service's
// delay settings, scoped to the request's destination and path.
func (r *ResponseBuilder) registerDelay(service *StubServiceBuilder, request sim.Request) {
	if r.delay <= 0 {
		return
	}
	pattern := service.destinationPattern()
	if request.Path != nil {
		pattern += request.Path.Value
	}
	var method string
	if request.Method != nil {
		method = request.Method.Value
	}
	service.addDelaySetting(&sim.DelaySettings{
		URLPattern: pattern,
		HTTPMethod: method,
		Delay:      int(r.delay.Milliseconds()),
	})
}

// Success returns a builder for a 200 response.
func Success() *ResponseBuilder {
	return Response()
}

// Created returns a builder for a 201 response with a Location header.
func Created(location string) *ResponseBuilder {
	return Response().Status(http.StatusCreated).Header("Location", location)
}

// NoContent returns a builder for a 204 response.
func NoContent() *ResponseBuilder {
	return Response().Status(http.StatusNoContent)
}

// BadRequest returns a builder for a 400 response.
func BadRequest() *ResponseBuilder {
	return Response().Status(http.StatusBadRequest)
}

// Unauthorised returns a builder for a 401 response.
func Unauthorised() *ResponseBuilder {
	return Response().Status(http.StatusUnauthorized)
}

// Forbidden returns a builder for a 403 response.
func Forbidden() *ResponseBuilder {
	return Response().Status(http.StatusForbidden)
}

// ServerError returns a builder for a 500 response.
func ServerError() *ResponseBuilder {
	return Response().Status(http.StatusInternalServerError)
}
