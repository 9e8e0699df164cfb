// Package metrics exposes Prometheus instrumentation for the HTTP API.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiring_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hiring_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// Tenant context metrics
	TenantSwitchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiring_tenant_switches_total",
			Help: "Total number of tenant switch attempts",
		},
		[]string{"outcome"},
	)

	// Status transition metrics
	StatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiring_status_transitions_total",
			Help: "Total number of status transition attempts",
		},
		[]string{"entity", "outcome"},
	)

	// Report metrics
	ReportBuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hiring_report_builds_total",
			Help: "Total number of report builds",
		},
		[]string{"report"},
	)
)

// Handler returns the HTTP handler serving the metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}

// ObserveRequest records one completed HTTP request.
func ObserveRequest(method, path, status string, duration time.Duration) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// RecordTenantSwitch increments the tenant switch counter for one outcome.
func RecordTenantSwitch(outcome string) {
	TenantSwitchesTotal.WithLabelValues(outcome).Inc()
}

// RecordStatusTransition increments the transition counter for one entity and outcome.
func RecordStatusTransition(entity, outcome string) {
	StatusTransitionsTotal.WithLabelValues(entity, outcome).Inc()
}

// RecordReportBuild increments the report build counter for one report name.
func RecordReportBuild(report string) {
	ReportBuildsTotal.WithLabelValues(report).Inc()
}
