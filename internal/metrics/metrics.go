package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Generative model usage
	AICallsTotal  prometheus.CounterVec
	AITokensTotal prometheus.Counter

	// Web search usage
	SearchCallsTotal prometheus.CounterVec

	// Daily coaching report runs
	ReportsGeneratedTotal prometheus.Counter
	ReportsSkippedTotal   prometheus.Counter
	ReportsFailedTotal    prometheus.Counter

	initialized bool
)

// Init initializes Prometheus metrics with the given prefix. Must be called
// once before any Record helper; the helpers no-op otherwise so library code
// stays usable from tests.
func Init(prefix string) {
	if initialized {
		return
	}
	initialized = true

	AICallsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_ai_calls_total",
			Help: "Total number of generative model calls",
		},
		[]string{"outcome"},
	)

	AITokensTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_ai_tokens_total",
			Help: "Total number of tokens reported by the generative model",
		},
	)

	SearchCallsTotal = *promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_search_calls_total",
			Help: "Total number of web search calls",
		},
		[]string{"outcome"},
	)

	ReportsGeneratedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_coaching_reports_generated_total",
			Help: "Total number of daily coaching reports written",
		},
	)

	ReportsSkippedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_coaching_reports_skipped_total",
			Help: "Total number of users skipped for having no activity",
		},
	)

	ReportsFailedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_coaching_reports_failed_total",
			Help: "Total number of per-user report generation failures",
		},
	)
}

// RecordAICall increments the generative model call counter
func RecordAICall(outcome string) {
	if !initialized {
		return
	}
	AICallsTotal.WithLabelValues(outcome).Inc()
}

// RecordAITokens adds to the token usage counter
func RecordAITokens(count int) {
	if !initialized {
		return
	}
	if count > 0 {
		AITokensTotal.Add(float64(count))
	}
}

// RecordSearchCall increments the web search call counter
func RecordSearchCall(outcome string) {
	if !initialized {
		return
	}
	SearchCallsTotal.WithLabelValues(outcome).Inc()
}

// RecordReportGenerated increments the generated-reports counter
func RecordReportGenerated() {
	if !initialized {
		return
	}
	ReportsGeneratedTotal.Inc()
}

// RecordReportSkipped increments the skipped-users counter
func RecordReportSkipped() {
	if !initialized {
		return
	}
	ReportsSkippedTotal.Inc()
}

// RecordReportFailed increments the per-user failure counter
func RecordReportFailed() {
	if !initialized {
		return
	}
	ReportsFailedTotal.Inc()
}
