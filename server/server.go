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

// Package server assembles the webgraphql HTTP server: the GraphQL handler with its interceptor
// chain, the Prometheus metrics endpoint and a health endpoint.
package server

import (
	"context"
	"net"
	"net/http"

	"github.com/botobag/webgraphql/config"
	"github.com/botobag/webgraphql/engine"
	"github.com/botobag/webgraphql/web"
	"github.com/botobag/webgraphql/web/interceptor"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// Server serves GraphQL queries over HTTP.
type Server struct {
	config  *config.Config
	logger  *zap.Logger
	handler http.Handler
}

// New creates a Server that executes queries with e. Interceptors are installed in the following
// order: request id, logging, metrics and (when enabled) persisted queries.
func New(cfg *config.Config, e engine.Engine, logger *zap.Logger) (*Server, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if logger == nil {
		logger = zap.NewNop()
	}

	registry := prometheus.NewRegistry()
	if err := registry.Register(collectors.NewGoCollector()); err != nil {
		return nil, errors.Wrap(err, "server: cannot register Go collector")
	}
	if err := registry.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, errors.Wrap(err, "server: cannot register process collector")
	}

	metrics, err := interceptor.NewMetrics(registry)
	if err != nil {
		return nil, err
	}

	interceptors := []web.Interceptor{
		interceptor.RequestID(cfg.RequestIDHeader),
		interceptor.Logging(logger),
		metrics,
	}

	if cfg.PersistedQueryCacheSize > 0 {
		persistedQueries, err := interceptor.NewPersistedQueries(cfg.PersistedQueryCacheSize)
		if err != nil {
			return nil, err
		}
		interceptors = append(interceptors, persistedQueries)
	}

	chain, err := web.NewExecutionChain(e, interceptors...)
	if err != nil {
		return nil, err
	}

	graphqlHandler, err := web.NewHandler(chain,
		web.MaxBodySize(cfg.MaxBodySize),
		web.Logger(logger))
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("POST "+cfg.Path, graphqlHandler)

	if len(cfg.MetricsPath) > 0 {
		mux.Handle("GET "+cfg.MetricsPath, promhttp.HandlerFor(registry, promhttp.HandlerOpts{
			EnableOpenMetrics: true,
		}))
	}

	mux.HandleFunc("GET "+config.HealthPath, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	return &Server{
		config:  cfg,
		logger:  logger,
		handler: mux,
	}, nil
}

// Handler returns the root http.Handler of the server.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// ListenAndServe listens on the configured address and serves requests until ctx is done. Then it
// shuts down gracefully, waiting up to the configured shutdown timeout for in-flight requests.
func (s *Server) ListenAndServe(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		return errors.Wrapf(err, "server: cannot listen on %s", s.config.Address)
	}
	return s.Serve(ctx, listener)
}

// Serve is like ListenAndServe but accepts connections from listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:  s.handler,
		ErrorLog: zap.NewStdLog(s.logger),
	}

	serveErr := make(chan error, 1)
	go func() {
		s.logger.Info("serving GraphQL",
			zap.String("address", listener.Addr().String()),
			zap.String("path", s.config.Path))
		serveErr <- httpServer.Serve(listener)
	}()

	select {
	case err := <-serveErr:
		return errors.Wrap(err, "server: stopped unexpectedly")

	case <-ctx.Done():
	}

	s.logger.Info("shutting down", zap.Duration("timeout", s.config.ShutdownTimeout))

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server: cannot shut down gracefully")
	}

	// Serve returns http.ErrServerClosed after Shutdown.
	<-serveErr
	return nil
}
