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
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/botobag/webgraphql/concurrent/future"
	"github.com/botobag/webgraphql/engine"
	"github.com/botobag/webgraphql/web"

	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

// Error messages and codes of automatic persisted queries understood by Apollo clients.
const (
	PersistedQueryNotFound     = "PersistedQueryNotFound"
	PersistedQueryNotSupported = "PersistedQueryNotSupported"

	persistedQueryNotFoundCode     = "PERSISTED_QUERY_NOT_FOUND"
	persistedQueryNotSupportedCode = "PERSISTED_QUERY_NOT_SUPPORTED"
	persistedQueryVersion          = 1
)

// PersistedQueries implements automatic persisted queries [0]. A client sends the SHA-256 hash of
// the query in "extensions.persistedQuery.sha256Hash" instead of the query. On a cache miss the
// chain is answered with a PersistedQueryNotFound error, after which the client sends the query
// together with its hash and the pair is cached.
//
// [0]: https://www.apollographql.com/docs/apollo-server/performance/apq/
type PersistedQueries struct {
	// Maps SHA-256 hashes (lowercase hex) to queries
	cache *lru.Cache
}

var _ web.Interceptor = (*PersistedQueries)(nil)

// NewPersistedQueries creates a PersistedQueries that keeps up to size queries.
func NewPersistedQueries(size int) (*PersistedQueries, error) {
	cache, err := lru.New(size)
	if err != nil {
		return nil, errors.Wrap(err, "interceptor: cannot create persisted query cache")
	}
	return &PersistedQueries{cache}, nil
}

// Len returns the number of cached queries.
func (pq *PersistedQueries) Len() int {
	return pq.cache.Len()
}

func errorOutput(message string, code string) future.Future {
	err := engine.NewError("%s", message)
	err.Extensions = map[string]interface{}{
		"code": code,
	}
	return future.Ready(web.NewQueryOutput(engine.ErrorResult(err), nil))
}

// Intercept implements web.Interceptor.
func (pq *PersistedQueries) Intercept(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
	extension, ok := input.Extensions()["persistedQuery"].(map[string]interface{})
	if !ok {
		return next(ctx, input)
	}

	// JSON numbers are decoded into float64.
	if version, _ := extension["version"].(float64); version != persistedQueryVersion {
		return errorOutput(PersistedQueryNotSupported, persistedQueryNotSupportedCode)
	}

	hash, _ := extension["sha256Hash"].(string)
	hash = strings.ToLower(hash)
	if len(hash) == 0 {
		return errorOutput("persistedQuery.sha256Hash is missing", persistedQueryNotFoundCode)
	}

	query := input.Query()
	if len(query) == 0 {
		cached, found := pq.cache.Get(hash)
		if !found {
			return errorOutput(PersistedQueryNotFound, persistedQueryNotFoundCode)
		}
		return next(ctx, input.WithBody("query", cached.(string)))
	}

	sum := sha256.Sum256([]byte(query))
	if hex.EncodeToString(sum[:]) != hash {
		return errorOutput("provided sha256Hash does not match query", persistedQueryNotFoundCode)
	}

	pq.cache.Add(hash, query)
	return next(ctx, input)
}
