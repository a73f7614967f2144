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

	"github.com/botobag/webgraphql/engine"
)

// QueryOutput is the outcome of a QueryInput produced by the ExecutionChain: the engine result
// plus headers to be added to the HTTP response.
type QueryOutput struct {
	result  *engine.Result
	headers http.Header
}

// NewQueryOutput creates a QueryOutput. headers may be nil.
func NewQueryOutput(result *engine.Result, headers http.Header) *QueryOutput {
	if result == nil {
		result = engine.ErrorResult()
	}
	return &QueryOutput{
		result:  result,
		headers: headers.Clone(),
	}
}

// Result returns the engine result.
func (output *QueryOutput) Result() *engine.Result {
	return output.result
}

// Headers returns the headers to be added to the HTTP response or nil if there's none.
func (output *QueryOutput) Headers() http.Header {
	return output.headers.Clone()
}

// WithHeader returns a copy of output with values appended to the response header name.
func (output *QueryOutput) WithHeader(name string, values ...string) *QueryOutput {
	headers := output.headers.Clone()
	if headers == nil {
		headers = http.Header{}
	}
	for _, value := range values {
		headers.Add(name, value)
	}
	return &QueryOutput{
		result:  output.result,
		headers: headers,
	}
}

// ToSpecification returns the response body in the form defined by the GraphQL specification.
func (output *QueryOutput) ToSpecification() map[string]interface{} {
	return output.result.ToSpecification()
}
