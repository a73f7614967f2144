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

// Package web serves GraphQL over HTTP. A Handler converts an HTTP request into a QueryInput, runs
// it through an ExecutionChain and converts the resulting QueryOutput into an HTTP response.
package web

import (
	"net/http"

	"github.com/botobag/webgraphql/concurrent/future"

	"go.uber.org/zap"
)

// Handler serves GraphQL queries from HTTP requests. It implements http.Handler and can be mounted
// on any router; it doesn't look at the request method or path.
type Handler struct {
	chain          *ExecutionChain
	bodyReader     BodyReader
	errorPresenter ErrorPresenter
	logger         *zap.Logger
}

var _ http.Handler = (*Handler)(nil)

// handlerConfig contains configuration for a Handler.
type handlerConfig struct {
	// Configuration given to the default JSONBodyReader; It is not applicable if a custom BodyReader
	// is used.
	maxBodySize uint

	logger         *zap.Logger
	bodyReader     BodyReader
	errorPresenter ErrorPresenter
}

// Option configures Handler.
type Option func(config *handlerConfig)

// MaxBodySize sets the maximum number of bytes to be read from request body.
func MaxBodySize(size uint) Option {
	return func(config *handlerConfig) {
		config.maxBodySize = size
	}
}

// Logger sets the logger. Handler doesn't log by default.
func Logger(logger *zap.Logger) Option {
	return func(config *handlerConfig) {
		config.logger = logger
	}
}

// OverrideBodyReader overrides the default JSONBodyReader.
func OverrideBodyReader(bodyReader BodyReader) Option {
	return func(config *handlerConfig) {
		config.bodyReader = bodyReader
	}
}

// OverrideErrorPresenter overrides the default DefaultErrorPresenter.
func OverrideErrorPresenter(errorPresenter ErrorPresenter) Option {
	return func(config *handlerConfig) {
		config.errorPresenter = errorPresenter
	}
}

// NewHandler creates a Handler that executes queries with chain.
func NewHandler(chain *ExecutionChain, opts ...Option) (*Handler, error) {
	if chain == nil {
		return nil, errMissingChain
	}

	config := handlerConfig{
		maxBodySize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(&config)
	}

	logger := config.logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bodyReader := config.bodyReader
	if bodyReader == nil {
		bodyReader = JSONBodyReader{
			MaxBodySize: config.maxBodySize,
		}
	}

	errorPresenter := config.errorPresenter
	if errorPresenter == nil {
		errorPresenter = DefaultErrorPresenter{
			Logger: logger,
		}
	}

	return &Handler{
		chain:          chain,
		bodyReader:     bodyReader,
		errorPresenter: errorPresenter,
		logger:         logger,
	}, nil
}

// Handle serves r. Failures in reading the request body are returned immediately and the chain is
// not invoked. Otherwise the returned Future finishes with a *Response once the chain finishes, or
// with the error raised from the chain.
func (h *Handler) Handle(r *http.Request) (future.Future, error) {
	body, err := h.bodyReader.ReadBody(r)
	if err != nil {
		return nil, err
	}

	input := NewQueryInput(r.URL, r.Header, body)

	return future.Map(h.chain.Execute(r.Context(), input), func(value interface{}) (interface{}, error) {
		return newResponse(value.(*QueryOutput)), nil
	}), nil
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f, err := h.Handle(r)
	if err != nil {
		h.errorPresenter.Write(w, r, err)
		return
	}

	// Wait for the chain. The response must be written before ServeHTTP returns.
	value, err := future.BlockOn(f)
	if err != nil {
		h.errorPresenter.Write(w, r, err)
		return
	}

	resp := value.(*Response)
	body, err := resp.MarshalBody()
	if err != nil {
		h.errorPresenter.Write(w, r, err)
		return
	}

	if err := resp.write(w, body); err != nil {
		h.logger.Warn("cannot send GraphQL response", zap.Error(err), zap.String("uri", r.RequestURI))
	}
}
