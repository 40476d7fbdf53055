// Copyright 2026 The httpretry Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package metrics exports Prometheus metrics about attempts, retries
// and executions of an httpretry.Client.
//
// Create a Collector with New and install it into the client's handler
// group:
//
//	handlers := &httpretry.HandlerGroup{}
//	collector, err := metrics.New(prometheus.DefaultRegisterer, "myapp")
//	if err != nil {
//		return err
//	}
//	collector.Install(handlers)
//	client := &httpretry.Client{Handlers: handlers}
package metrics

import (
	"fmt"

	"github.com/gogama/httpretry"
	"github.com/gogama/httpretry/request"
	"github.com/prometheus/client_golang/prometheus"
)

// Values of the outcome label.
const (
	OutcomeSuccess = "success"
	OutcomeTimeout = "timeout"
	OutcomeError   = "error"
)

// A Collector records metrics from the events of the client it is
// installed into. It is safe for concurrent use.
type Collector struct {
	attempts   *prometheus.CounterVec
	retries    *prometheus.CounterVec
	delays     *prometheus.HistogramVec
	executions *prometheus.CounterVec
}

// New creates a Collector and registers its metrics with reg under the
// given namespace, which may be empty.
func New(reg prometheus.Registerer, namespace string) (*Collector, error) {
	c := &Collector{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpretry",
				Name:      "attempts_total",
				Help:      "Total number of HTTP request attempts",
			},
			[]string{"method", "outcome"},
		),
		retries: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpretry",
				Name:      "retries_total",
				Help:      "Total number of scheduled retries",
			},
			[]string{"method"},
		),
		delays: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "httpretry",
				Name:      "retry_delay_seconds",
				Help:      "Delay before each scheduled retry in seconds",
				Buckets:   []float64{0, 0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			},
			[]string{"method"},
		),
		executions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "httpretry",
				Name:      "executions_total",
				Help:      "Total number of completed plan executions",
			},
			[]string{"method", "outcome"},
		),
	}

	for _, m := range []prometheus.Collector{c.attempts, c.retries, c.delays, c.executions} {
		if err := reg.Register(m); err != nil {
			return nil, fmt.Errorf("httpretry/metrics: failed to register collector: %w", err)
		}
	}

	return c, nil
}

// Install adds the collector's event handlers to the end of g.
func (c *Collector) Install(g *httpretry.HandlerGroup) {
	g.PushBack(httpretry.AfterAttempt, httpretry.HandlerFunc(c.afterAttempt))
	g.PushBack(httpretry.BeforeRetry, httpretry.HandlerFunc(c.beforeRetry))
	g.PushBack(httpretry.AfterExecutionEnd, httpretry.HandlerFunc(c.afterExecutionEnd))
}

func (c *Collector) afterAttempt(_ httpretry.Event, e *request.Execution) {
	c.attempts.WithLabelValues(method(e), outcome(e)).Inc()
}

func (c *Collector) beforeRetry(_ httpretry.Event, e *request.Execution) {
	m := method(e)
	c.retries.WithLabelValues(m).Inc()
	wait := e.Wait
	if wait < 0 {
		wait = 0
	}
	c.delays.WithLabelValues(m).Observe(wait.Seconds())
}

func (c *Collector) afterExecutionEnd(_ httpretry.Event, e *request.Execution) {
	c.executions.WithLabelValues(method(e), outcome(e)).Inc()
}

func method(e *request.Execution) string {
	m, _ := e.Method()
	return m
}

func outcome(e *request.Execution) string {
	switch {
	case e.Err == nil:
		return OutcomeSuccess
	case e.Timeout():
		return OutcomeTimeout
	default:
		return OutcomeError
	}
}
