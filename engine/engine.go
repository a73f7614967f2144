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

// Package engine defines the contract between the web layer and the GraphQL engine that executes
// queries, and provides an implementation backed by github.com/graph-gophers/graphql-go.
package engine

import (
	"context"
)

// Request contains the parameters for executing a GraphQL operation.
type Request struct {
	// Query is the GraphQL document.
	Query string

	// OperationName selects an operation when the document contains more than one.
	OperationName string

	// Variables holds the values for the variables defined by the operation.
	Variables map[string]interface{}
}

// Engine executes GraphQL requests. Implementations must be safe for concurrent use; the web layer
// shares a single instance across all requests.
type Engine interface {
	// Execute parses, validates and executes req. Errors in the request (syntax, validation, field
	// errors) are reported in Result.Errors rather than a Go error.
	Execute(ctx context.Context, req *Request) *Result
}

// The Func type is an adapter to allow the use of ordinary functions as Engine.
type Func func(ctx context.Context, req *Request) *Result

// Execute implements Engine by calling f(ctx, req).
func (f Func) Execute(ctx context.Context, req *Request) *Result {
	return f(ctx, req)
}
