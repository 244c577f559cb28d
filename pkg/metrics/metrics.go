package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	// HTTP metrics
	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	// Pipeline stage metrics
	StageRunsTotal   *prometheus.CounterVec
	StageDuration    *prometheus.HistogramVec
	StagesInProgress prometheus.Gauge

	// External API metrics
	ExternalAPICalls    *prometheus.CounterVec
	ExternalAPIDuration *prometheus.HistogramVec
	ExternalAPIFailures *prometheus.CounterVec

	// Snapshot store metrics
	SnapshotReads  *prometheus.CounterVec
	SnapshotWrites *prometheus.CounterVec

	// Campaign metrics
	CampaignsSaved *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		HTTPRequestsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "endpoint", "status_code"},
		),

		HTTPRequestDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "endpoint"},
		),

		HTTPRequestsInFlight: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_requests_in_flight",
				Help: "Number of HTTP requests currently being processed",
			},
		),

		StageRunsTotal: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pipeline_stage_runs_total",
				Help: "Total number of pipeline stage runs",
			},
			[]string{"stage", "status"},
		),

		StageDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pipeline_stage_duration_seconds",
				Help:    "Pipeline stage duration in seconds",
				Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60, 120},
			},
			[]string{"stage"},
		),

		StagesInProgress: promauto.NewGauge(
			prometheus.GaugeOpts{
				Name: "pipeline_stages_in_progress",
				Help: "Number of pipeline stages currently running",
			},
		),

		ExternalAPICalls: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_calls_total",
				Help: "Total number of external API calls",
			},
			[]string{"api", "status"},
		),

		ExternalAPIDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "external_api_duration_seconds",
				Help:    "External API call duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"api"},
		),

		ExternalAPIFailures: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "external_api_failures_total",
				Help: "Total number of external API failures",
			},
			[]string{"api", "error_type"},
		),

		SnapshotReads: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_reads_total",
				Help: "Total number of snapshot store reads",
			},
			[]string{"key", "status"},
		),

		SnapshotWrites: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "snapshot_writes_total",
				Help: "Total number of snapshot store writes",
			},
			[]string{"key"},
		),

		CampaignsSaved: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "campaigns_saved_total",
				Help: "Total number of campaigns appended to the dashboard list",
			},
			[]string{"degraded"},
		),
	}
}

// HTTP request metrics
func (m *Metrics) RecordHTTPRequest(method, endpoint, statusCode string, duration time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// Pipeline stage metrics
func (m *Metrics) RecordStageRun(stage, status string, duration time.Duration) {
	m.StageRunsTotal.WithLabelValues(stage, status).Inc()
	m.StageDuration.WithLabelValues(stage).Observe(duration.Seconds())
}

// External API call metrics
func (m *Metrics) RecordExternalAPICall(api, status string, duration time.Duration) {
	m.ExternalAPICalls.WithLabelValues(api, status).Inc()
	m.ExternalAPIDuration.WithLabelValues(api).Observe(duration.Seconds())
}

// External API failure metrics
func (m *Metrics) RecordExternalAPIFailure(api, errorType string) {
	m.ExternalAPIFailures.WithLabelValues(api, errorType).Inc()
}

// Snapshot store metrics
func (m *Metrics) RecordSnapshotRead(key, status string) {
	m.SnapshotReads.WithLabelValues(key, status).Inc()
}

func (m *Metrics) RecordSnapshotWrite(key string) {
	m.SnapshotWrites.WithLabelValues(key).Inc()
}

// Campaign persistence metrics
func (m *Metrics) RecordCampaignSaved(degraded bool) {
	label := "false"
	if degraded {
		label = "true"
	}
	m.CampaignsSaved.WithLabelValues(label).Inc()
}

// Stages in progress counter
func (m *Metrics) IncStagesInProgress() {
	m.StagesInProgress.Inc()
}

func (m *Metrics) DecStagesInProgress() {
	m.StagesInProgress.Dec()
}

// HTTP requests in flight counter
func (m *Metrics) IncHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Inc()
}

func (m *Metrics) DecHTTPRequestsInFlight() {
	m.HTTPRequestsInFlight.Dec()
}
