// Package metrics exposes Prometheus instrumentation for pipeline runs.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics contains all Prometheus metrics for the service.
type Metrics struct {
	// Pipeline metrics
	PipelineRuns     *prometheus.CounterVec
	StageFailures    *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	StagesDegraded   prometheus.Counter
	TranscodeErrors  prometheus.Counter
	ChatRequests     *prometheus.CounterVec
	ActiveWebsockets prometheus.Gauge
}

// NewMetrics creates and registers all Prometheus metrics.
func NewMetrics() *Metrics {
	return &Metrics{
		PipelineRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "samvaad_pipeline_runs_total",
			Help: "Total number of pipeline runs by terminal state",
		}, []string{"status"}),
		StageFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "samvaad_stage_failures_total",
			Help: "Total number of hard stage failures by stage",
		}, []string{"stage"}),
		StageDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "samvaad_stage_duration_seconds",
			Help:    "Duration of pipeline stages",
			Buckets: prometheus.DefBuckets,
		}, []string{"stage"}),
		StagesDegraded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "samvaad_stages_degraded_total",
			Help: "Total number of translation stages that degraded with a marker",
		}),
		TranscodeErrors: promauto.NewCounter(prometheus.CounterOpts{
			Name: "samvaad_transcode_errors_total",
			Help: "Total number of audio transcode failures",
		}),
		ChatRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "samvaad_chat_requests_total",
			Help: "Total number of chat proxy requests by provider",
		}, []string{"provider"}),
		ActiveWebsockets: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "samvaad_active_websockets",
			Help: "Current number of connected dashboard websockets",
		}),
	}
}
