// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package metrics holds the Prometheus collectors for tacnet.
//
// Collectors live on a private registry rather than the global default so
// that tests and multiple instances in one process do not collide.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for augmentation calls.
const (
	OutcomeOK     = "ok"
	OutcomeEmpty  = "empty"
	OutcomeFailed = "failed"
)

// Metrics is the set of tacnet collectors.
// A nil *Metrics is valid; every method is then a no-op.
type Metrics struct {
	registry *prometheus.Registry

	AugmentCalls       *prometheus.CounterVec
	AugmentDuration    *prometheus.HistogramVec
	MessagesAppended   *prometheus.CounterVec
	SubmissionsDropped *prometheus.CounterVec
	HQReplies          *prometheus.CounterVec
	IntelReports       prometheus.Counter
	HTTPRequests       *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	register := func(c prometheus.Collector) { reg.MustRegister(c) }

	m := &Metrics{
		registry: reg,
		AugmentCalls: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tacnet_augment_calls_total",
				Help: "Augmentation calls by operation and outcome",
			},
			[]string{"op", "outcome"},
		),
		AugmentDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tacnet_augment_duration_seconds",
				Help:    "Augmentation call latency",
				Buckets: []float64{.1, .25, .5, 1, 2, 5, 10, 30},
			},
			[]string{"op"},
		),
		MessagesAppended: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tacnet_messages_appended_total",
				Help: "Messages appended to the radio log",
			},
			[]string{"sender"},
		),
		SubmissionsDropped: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tacnet_submissions_dropped_total",
				Help: "User submissions rejected before augmentation",
			},
			[]string{"reason"}, // "blank" or "in_flight"
		),
		HQReplies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tacnet_hq_replies_total",
				Help: "Simulated HQ replies by lifecycle event",
			},
			[]string{"event"}, // "scheduled", "skipped", "appended", "suppressed"
		),
		IntelReports: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "tacnet_intel_reports_total",
				Help: "Intel reports added to the feed",
			},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tacnet_http_requests_total",
				Help: "Status relay HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
	}

	register(m.AugmentCalls)
	register(m.AugmentDuration)
	register(m.MessagesAppended)
	register(m.SubmissionsDropped)
	register(m.HQReplies)
	register(m.IntelReports)
	register(m.HTTPRequests)
	register(collectors.NewGoCollector())

	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// Handler returns an HTTP handler that serves the registry.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveAugment records one augmentation call.
func (m *Metrics) ObserveAugment(op, outcome string, seconds float64) {
	if m == nil {
		return
	}
	m.AugmentCalls.WithLabelValues(op, outcome).Inc()
	m.AugmentDuration.WithLabelValues(op).Observe(seconds)
}

// MessageAppended records an append to the radio log.
func (m *Metrics) MessageAppended(sender string) {
	if m == nil {
		return
	}
	m.MessagesAppended.WithLabelValues(sender).Inc()
}

// SubmissionDropped records a rejected submission.
func (m *Metrics) SubmissionDropped(reason string) {
	if m == nil {
		return
	}
	m.SubmissionsDropped.WithLabelValues(reason).Inc()
}

// HQReply records an HQ reply lifecycle event.
func (m *Metrics) HQReply(event string) {
	if m == nil {
		return
	}
	m.HQReplies.WithLabelValues(event).Inc()
}

// IntelReported records a new intel report.
func (m *Metrics) IntelReported() {
	if m == nil {
		return
	}
	m.IntelReports.Inc()
}

// HTTPRequest records one status relay request.
func (m *Metrics) HTTPRequest(method, path, status string) {
	if m == nil {
		return
	}
	m.HTTPRequests.WithLabelValues(method, path, status).Inc()
}
