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
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// ErrorPresenter presents an error that prevents a Response from being produced.
type ErrorPresenter interface {
	// Write sends err occurred while serving r to w.
	Write(w http.ResponseWriter, r *http.Request, err error)
}

// DefaultErrorPresenter implements the ErrorPresenter used by Handler when none is provided.
//
//	*MediaTypeError: 415 Unsupported Media Type with an Accept header
//	*InputError:     400 Bad Request
//	others:          500 Internal Server Error
type DefaultErrorPresenter struct {
	Logger *zap.Logger
}

// Write implements ErrorPresenter.
func (presenter DefaultErrorPresenter) Write(w http.ResponseWriter, r *http.Request, err error) {
	logger := presenter.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var (
		mediaTypeErr *MediaTypeError
		inputErr     *InputError
	)

	switch {
	case errors.As(err, &mediaTypeErr):
		logger.Debug("unsupported request content type",
			zap.String("contentType", mediaTypeErr.ContentType),
			zap.String("uri", r.RequestURI))
		w.Header().Set("Accept", strings.Join(mediaTypeErr.Supported, ", "))
		http.Error(w, mediaTypeErr.Error(), http.StatusUnsupportedMediaType)

	case errors.As(err, &inputErr):
		logger.Debug("invalid request body",
			zap.Error(inputErr),
			zap.String("uri", r.RequestURI))
		http.Error(w, inputErr.Error(), http.StatusBadRequest)

	default:
		logger.Error("cannot serve GraphQL request",
			zap.Error(err),
			zap.String("uri", r.RequestURI))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}
