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

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// Outcome label values recorded by Metrics.
const (
	OutcomeSuccess      = "success"
	OutcomeGraphQLError = "graphql_error"
	OutcomeFailure      = "failure"
)

// Metrics records the number and the duration of GraphQL operations in Prometheus, labeled by
// outcome: "success", "graphql_error" (the response carries errors) or "failure" (the chain
// failed).
type Metrics struct {
	operations *prometheus.CounterVec
	duration   *prometheus.HistogramVec
}

var _ web.Interceptor = (*Metrics)(nil)

// NewMetrics creates a Metrics and registers its collectors to registerer.
func NewMetrics(registerer prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		operations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "webgraphql",
				Subsystem: "operations",
				Name:      "total",
				Help:      "Total number of GraphQL operations served",
			},
			[]string{"outcome"},
		),

		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "webgraphql",
				Subsystem: "operations",
				Name:      "duration_seconds",
				Help:      "Duration of GraphQL operations in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
	}

	for _, collector := range []prometheus.Collector{m.operations, m.duration} {
		if err := registerer.Register(collector); err != nil {
			return nil, errors.Wrap(err, "interceptor: cannot register metrics")
		}
	}

	return m, nil
}

// Intercept implements web.Interceptor.
func (m *Metrics) Intercept(ctx context.Context, input *web.QueryInput, next web.ExecuteFunc) future.Future {
	start := time.Now()

	return future.Then(next(ctx, input), func(value interface{}, err error) (interface{}, error) {
		outcome := OutcomeSuccess
		if err != nil {
			outcome = OutcomeFailure
		} else if output, ok := value.(*web.QueryOutput); !ok || output == nil {
			outcome = OutcomeFailure
		} else if output.Result().HasErrors() {
			outcome = OutcomeGraphQLError
		}

		m.operations.WithLabelValues(outcome).Inc()
		m.duration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

		return value, err
	})
}
