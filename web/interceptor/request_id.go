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

package interceptor

import (
	"context"

	"github.com/botobag/webgraphql/concurrent/future"
	"github.com/botobag/webgraphql/web"

	"github.com/google/uuid"
)

// DefaultRequestIDHeader is the header used by RequestID when no header is given.
const DefaultRequestIDHeader = "X-Request-Id"

type requestIDKey struct{}

// RequestIDFromContext returns the request id stored in ctx by the RequestID interceptor.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey{}).(string)
	return id, ok
}

// RequestID assigns an id to every request. The id in the request header is reused when present;
// otherwise a random UUID is generated. The id is stored in the context passed down the chain and
// set in the same header of the response.
func RequestID(header string) web.Interceptor {
	if len(header) == 0 {
		header = DefaultRequestIDHeader
	}

	return web.InterceptorFunc(func(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
		id := input.Header(header)
		if len(id) == 0 {
			id = uuid.New().String()
		}

		ctx = context.WithValue(ctx, requestIDKey{}, id)

		return future.Map(next(ctx, input), func(value interface{}) (interface{}, error) {
			output, ok := value.(*web.QueryOutput)
			if !ok || output == nil {
				return value, nil
			}
			return output.WithHeader(header, id), nil
		})
	})
}
