package underwriting

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReportsComputed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "underwriting_reports_total",
			Help: "Total number of underwriting reports served",
		},
		[]string{"source", "cache"},
	)

	ReportDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "underwriting_report_duration_seconds",
			Help:    "Time spent computing one underwriting report",
			Buckets: prometheus.ExponentialBuckets(0.0005, 2, 14),
		},
		[]string{"source"},
	)

	RequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "underwriting_http_errors_total",
			Help: "Total number of API requests answered with an error",
		},
		[]string{"status"},
	)
)
