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
	"context"
	"sync/atomic"

	"github.com/botobag/webgraphql/concurrent/future"
	"github.com/botobag/webgraphql/engine"

	"github.com/pkg/errors"
)

// ExecuteFunc executes a QueryInput. The returned Future finishes with a *QueryOutput.
type ExecuteFunc func(ctx context.Context, input *QueryInput) future.Future

// Interceptor wraps execution of a query. It may inspect or replace the input before passing it to
// next and may inspect or replace the output by registering a continuation on the future returned
// from next (see future.Map and future.Then). An interceptor can answer the query by itself and
// skip the rest of the chain by returning its own future without calling next.
//
// next must be called at most once.
type Interceptor interface {
	Intercept(ctx context.Context, input *QueryInput, next ExecuteFunc) future.Future
}

// The InterceptorFunc type is an adapter to allow the use of ordinary functions as Interceptor.
type InterceptorFunc func(ctx context.Context, input *QueryInput, next ExecuteFunc) future.Future

// Intercept implements Interceptor by calling f(ctx, input, next).
func (f InterceptorFunc) Intercept(ctx context.Context, input *QueryInput, next ExecuteFunc) future.Future {
	return f(ctx, input, next)
}

// ExecutionChain executes queries with an engine through a list of interceptors. Interceptors are
// applied in the order they're given: the first interceptor sees the input first and the output
// last. The chain holds no per-request state and is safe for concurrent use.
type ExecutionChain struct {
	engine       engine.Engine
	interceptors []Interceptor
}

var (
	errMissingEngine      = errors.New("web: must specify an engine")
	errMissingChain       = errors.New("web: must specify an execution chain")
	errNilInput           = errors.New("web: nil QueryInput")
	errNilResult          = errors.New("web: engine returned a nil result")
	errNextCalledTwice    = errors.New("web: interceptor called next more than once")
	errNilInterceptFuture = errors.New("web: interceptor returned a nil future")
)

// NewExecutionChain creates an ExecutionChain. The list of interceptors is copied.
func NewExecutionChain(e engine.Engine, interceptors ...Interceptor) (*ExecutionChain, error) {
	if e == nil {
		return nil, errMissingEngine
	}
	for i, interceptor := range interceptors {
		if interceptor == nil {
			return nil, errors.Errorf("web: interceptor at index %d is nil", i)
		}
	}
	return &ExecutionChain{
		engine:       e,
		interceptors: append([]Interceptor(nil), interceptors...),
	}, nil
}

// Execute runs input through the interceptors and the engine. The returned Future finishes with a
// *QueryOutput. Errors from interceptors or the engine are delivered through the future as is.
func (chain *ExecutionChain) Execute(ctx context.Context, input *QueryInput) future.Future {
	return future.Map(chain.proceed(ctx, input, 0), func(value interface{}) (interface{}, error) {
		output, ok := value.(*QueryOutput)
		if !ok || output == nil {
			return nil, errors.Errorf("web: execution chain finished with %T, expected *web.QueryOutput", value)
		}
		return output, nil
	})
}

// proceed applies the interceptor at index, or runs the engine once all interceptors are applied.
func (chain *ExecutionChain) proceed(ctx context.Context, input *QueryInput, index int) future.Future {
	if input == nil {
		return future.Err(errNilInput)
	}

	if index >= len(chain.interceptors) {
		return chain.executeEngine(ctx, input)
	}

	var (
		interceptor = chain.interceptors[index]
		called      int32
	)

	next := func(ctx context.Context, input *QueryInput) future.Future {
		if !atomic.CompareAndSwapInt32(&called, 0, 1) {
			return future.Err(errNextCalledTwice)
		}
		return chain.proceed(ctx, input, index+1)
	}

	f := interceptor.Intercept(ctx, input, next)
	if f == nil {
		return future.Err(errNilInterceptFuture)
	}
	return f
}

// executeEngine runs the engine on its own goroutine so the caller isn't blocked.
func (chain *ExecutionChain) executeEngine(ctx context.Context, input *QueryInput) future.Future {
	request := input.Request()
	return future.Go(func() (interface{}, error) {
		result := chain.engine.Execute(ctx, request)
		if result == nil {
			return nil, errNilResult
		}
		return NewQueryOutput(result, nil), nil
	})
}
