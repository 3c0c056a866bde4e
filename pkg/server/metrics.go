package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// ==============================================================================
// Prometheus Metrics
// ==============================================================================

var (
	// requestsTotal counts API requests by endpoint and response code
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hvacdiag_requests_total",
		Help: "Total API requests by endpoint and response code",
	}, []string{"endpoint", "code"})

	// analysisDuration tracks compute/diagnose latency
	analysisDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hvacdiag_analysis_duration_seconds",
		Help:    "Cycle computation and diagnosis duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.00001, 2, 14), // 10us to ~80ms
	}, []string{"operation"})

	// topConfidence tracks the confidence of the leading diagnosis
	topConfidence = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "hvacdiag_top_confidence",
		Help:    "Confidence of the top ranked diagnosis per report",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	})

	// diagnosesTotal counts top ranked diagnoses by signature
	diagnosesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hvacdiag_top_diagnoses_total",
		Help: "Top ranked diagnoses by fault signature",
	}, []string{"signature"})

	// catalogReloads counts catalog reload attempts by result
	catalogReloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hvacdiag_catalog_reloads_total",
		Help: "Catalog reload attempts by result",
	}, []string{"result"})
)
