package dispatcher

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	cyclesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "piscanner_dispatch_cycles_total",
		Help: "Number of dispatcher cycles, including no-op cycles.",
	})

	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "piscanner_dispatch_outcomes_total",
		Help: "Number of records resolved, by terminal status.",
	}, []string{"status"})

	retriedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "piscanner_dispatch_retried_total",
		Help: "Number of records left pending after a failed delivery attempt.",
	})

	remoteDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "piscanner_remote_request_duration_seconds",
		Help:    "Duration of outbound delivery requests.",
		Buckets: prometheus.DefBuckets,
	})
)
