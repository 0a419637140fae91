package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "hris_selfservice"

// Metrics holds the Prometheus collectors of the service.
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	BPMRequestsTotal   *prometheus.CounterVec
	BPMRequestDuration *prometheus.HistogramVec
	BPMBreakerState    *prometheus.GaugeVec

	CronJobRuns     *prometheus.CounterVec
	CronJobDuration *prometheus.HistogramVec

	VerificationCodes *prometheus.CounterVec
	AttachmentUploads *prometheus.CounterVec
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		HTTPRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		}, []string{"method", "route"}),

		BPMRequestsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bpm",
			Name:      "requests_total",
			Help:      "Calls made to the BPM service by operation and outcome",
		}, []string{"operation", "outcome"}),
		BPMRequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "bpm",
			Name:      "request_duration_seconds",
			Help:      "Duration of BPM calls in seconds, retries included",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		BPMBreakerState: factory.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "bpm",
			Name:      "circuit_breaker_state",
			Help:      "0 closed, 0.5 half-open, 1 open",
		}, []string{"name"}),

		CronJobRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "cron",
			Name:      "job_runs_total",
			Help:      "Scheduled job runs by result",
		}, []string{"job", "result"}),
		CronJobDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "cron",
			Name:      "job_duration_seconds",
			Help:      "Duration of scheduled job runs",
			Buckets:   prometheus.DefBuckets,
		}, []string{"job"}),

		VerificationCodes: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "auth",
			Name:      "verification_codes_total",
			Help:      "Verification code events by result",
		}, []string{"event", "result"}),
		AttachmentUploads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "storage",
			Name:      "attachment_uploads_total",
			Help:      "Attachment uploads by backend and result",
		}, []string{"backend", "result"}),
	}
}
