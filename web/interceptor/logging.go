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
	"time"

	"github.com/botobag/webgraphql/concurrent/future"
	"github.com/botobag/webgraphql/web"

	"go.uber.org/zap"
)

// Logging logs every operation once it finishes. Place it after RequestID in the chain to include
// the request id in the log entries.
func Logging(logger *zap.Logger) web.Interceptor {
	return web.InterceptorFunc(func(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
		start := time.Now()

		return future.Then(next(ctx, input), func(value interface{}, err error) (interface{}, error) {
			fields := []zap.Field{
				zap.String("operationName", input.OperationName()),
				zap.Duration("duration", time.Since(start)),
			}
			if id, ok := RequestIDFromContext(ctx); ok {
				fields = append(fields, zap.String("requestID", id))
			}

			if err != nil {
				logger.Error("GraphQL operation failed", append(fields, zap.Error(err))...)
				return nil, err
			}

			output, ok := value.(*web.QueryOutput)
			if !ok || output == nil {
				// The chain reports the unexpected value.
				return value, nil
			}

			if errs := output.Result().Errors; len(errs) > 0 {
				logger.Info("GraphQL operation completed with errors",
					append(fields, zap.Int("errors", len(errs)), zap.String("firstError", errs[0].Message))...)
			} else {
				logger.Debug("GraphQL operation completed", fields...)
			}

			return output, nil
		})
	})
}
