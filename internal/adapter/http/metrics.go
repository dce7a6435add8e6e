package adapthttp

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "weightlog",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by path and status code.",
	}, []string{"path", "code"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "weightlog",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"path"})

	reportsBuilt = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "weightlog",
		Name:      "reports_built_total",
		Help:      "Report snapshots assembled.",
	})
)
