/**
 * Copyright (c) 2019, The Artemis Authors.
 *
 * Permission to use, copy, modify, and/or distribute this software for any
 * purpose with or without fee is hereby granted, provided that the above
 * copyright notice and this permission notice appear in all copies.
 *
 * THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHOR DISCLAIMS ALL WARRANTIES
 * WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
 * MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHOR BE LIABLE FOR
 * ANY SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
 * WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN
 * ACTION OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF
 * OR IN CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
 */

package web

import (
	"net/http"
	"net/url"

	"github.com/botobag/webgraphql/engine"
)

// QueryInput is the GraphQL request carried by an HTTP request: the request URI, the request
// headers and the body decoded as a JSON object. A QueryInput is immutable. Interceptors that want
// to alter it derive a new one with WithBody.
type QueryInput struct {
	uri     *url.URL
	headers http.Header
	body    map[string]interface{}
}

// NewQueryInput creates a QueryInput. The arguments are copied so later changes made by the caller
// are not visible through the QueryInput. Nested values in body are shared.
func NewQueryInput(uri *url.URL, headers http.Header, body map[string]interface{}) *QueryInput {
	return &QueryInput{
		uri:     cloneURL(uri),
		headers: headers.Clone(),
		body:    cloneBody(body),
	}
}

func cloneURL(uri *url.URL) *url.URL {
	if uri == nil {
		return nil
	}
	u := *uri
	return &u
}

func cloneBody(body map[string]interface{}) map[string]interface{} {
	clone := make(map[string]interface{}, len(body))
	for key, value := range body {
		clone[key] = value
	}
	return clone
}

// URI returns the URI of the HTTP request.
func (input *QueryInput) URI() *url.URL {
	return cloneURL(input.uri)
}

// Headers returns the headers of the HTTP request.
func (input *QueryInput) Headers() http.Header {
	return input.headers.Clone()
}

// Header returns the first value associated with the given request header.
func (input *QueryInput) Header(name string) string {
	return input.headers.Get(name)
}

// Body returns the decoded request body.
func (input *QueryInput) Body() map[string]interface{} {
	return cloneBody(input.body)
}

func (input *QueryInput) stringValue(key string) string {
	s, _ := input.body[key].(string)
	return s
}

func (input *QueryInput) mapValue(key string) map[string]interface{} {
	m, _ := input.body[key].(map[string]interface{})
	return m
}

// Query returns the "query" entry in the body or an empty string if the entry is missing or is
// not a string.
func (input *QueryInput) Query() string {
	return input.stringValue("query")
}

// OperationName returns the "operationName" entry in the body.
func (input *QueryInput) OperationName() string {
	return input.stringValue("operationName")
}

// Variables returns the "variables" entry in the body.
func (input *QueryInput) Variables() map[string]interface{} {
	return input.mapValue("variables")
}

// Extensions returns the "extensions" entry in the body.
func (input *QueryInput) Extensions() map[string]interface{} {
	return input.mapValue("extensions")
}

// WithBody returns a copy of input with the body entry for key set to value.
func (input *QueryInput) WithBody(key string, value interface{}) *QueryInput {
	body := cloneBody(input.body)
	body[key] = value
	return &QueryInput{
		uri:     input.uri,
		headers: input.headers,
		body:    body,
	}
}

// Request converts input into the request given to the engine.
func (input *QueryInput) Request() *engine.Request {
	return &engine.Request{
		Query:         input.Query(),
		OperationName: input.OperationName(),
		Variables:     input.Variables(),
	}
}
