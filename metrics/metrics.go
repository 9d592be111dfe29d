// Copyright 2021 The restkit Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics for restkit calls.
package metrics

import (
	"errors"

	"github.com/gogama/restkit"
	"github.com/gogama/restkit/apierr"
	"github.com/gogama/restkit/request"
	"github.com/gogama/restkit/transient"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeSuccess is the outcome label value of a call which returned
// no error. Failed calls are labelled with the name of their error
// kind, or "error" if the error carries no kind.
const OutcomeSuccess = "success"

// A Collector is an event handler which records call metrics.
//
// Install a Collector in a handler group with Install. A Collector is
// safe for concurrent use by multiple goroutines.
type Collector struct {
	// Calls counts finished calls by API, method and outcome.
	Calls *prometheus.CounterVec

	// Duration observes the time from handing the plan to the
	// transport until the call ends, by API and method. Calls which
	// never reached the transport are not observed.
	Duration *prometheus.HistogramVec

	// TransportFailures counts transport failures by API and failure
	// category.
	TransportFailures *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg. A nil
// reg registers with the default registerer. The namespace, which may
// be empty, prefixes every metric name.
func New(reg prometheus.Registerer, namespace string) *Collector {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Collector{
		Calls: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "restkit_calls_total",
				Help:      "Total number of API calls",
			},
			[]string{"client", "method", "outcome"},
		),
		Duration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "restkit_call_duration_seconds",
				Help:      "API call duration in seconds",
				Buckets:   []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"client", "method"},
		),
		TransportFailures: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "restkit_transport_failures_total",
				Help:      "Total number of transport failures",
			},
			[]string{"client", "category"},
		),
	}
}

// Install adds c to the AfterSendError and AfterCall chains of g.
func (c *Collector) Install(g *restkit.HandlerGroup) {
	g.PushBack(restkit.AfterSendError, c)
	g.PushBack(restkit.AfterCall, c)
}

// Handle records metrics for the event.
func (c *Collector) Handle(evt restkit.Event, e *request.Execution) {
	switch evt {
	case restkit.AfterSendError:
		var ae *apierr.Error
		cause := e.Err
		if errors.As(e.Err, &ae) && ae.Err != nil {
			cause = ae.Err
		}
		c.TransportFailures.WithLabelValues(e.Client, transient.Categorize(cause).Name()).Inc()
	case restkit.AfterCall:
		c.Calls.WithLabelValues(e.Client, e.Plan.Method, Outcome(e.Err)).Inc()
		if e.Started() {
			c.Duration.WithLabelValues(e.Client, e.Plan.Method).Observe(e.Duration().Seconds())
		}
	}
}

// Outcome returns the outcome label value for a call error.
func Outcome(err error) string {
	if err == nil {
		return OutcomeSuccess
	}
	if k, ok := apierr.KindOf(err); ok {
		return k.Name()
	}
	return "error"
}
