// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome labels for ToolCalls.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Metrics holds the Prometheus collectors of the research server. A nil
// *Metrics is valid and records nothing.
type Metrics struct {
	// ToolCalls counts MCP tool, resource and prompt invocations by name and outcome.
	ToolCalls *prometheus.CounterVec

	// ProviderDuration observes arXiv request latency by operation (search, lookup).
	ProviderDuration *prometheus.HistogramVec

	// PapersStored counts paper records written to the store.
	PapersStored prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		ToolCalls: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "research",
			Name:      "tool_calls_total",
			Help:      "MCP calls handled, by name and outcome.",
		}, []string{"tool", "outcome"}),
		ProviderDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "research",
			Name:      "provider_request_duration_seconds",
			Help:      "Latency of arXiv API calls.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"operation"}),
		PapersStored: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "research",
			Name:      "papers_stored_total",
			Help:      "Paper records written to the topic store.",
		}),
	}
}

// RecordToolCall increments ToolCalls for tool.
func (m *Metrics) RecordToolCall(tool string, err error) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.ToolCalls.WithLabelValues(tool, outcome).Inc()
}

// ObserveProvider records the time elapsed since start for operation.
func (m *Metrics) ObserveProvider(operation string, start time.Time) {
	if m == nil {
		return
	}
	m.ProviderDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// AddPapersStored adds n to PapersStored.
func (m *Metrics) AddPapersStored(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.PapersStored.Add(float64(n))
}
