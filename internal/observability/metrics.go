package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	FetchCycles = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "amber",
		Name:      "fetch_cycles_total",
		Help:      "Total number of registry fetch cycles by result",
	}, []string{"result"})

	RecordsIngested = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "amber",
		Name:      "records_ingested_total",
		Help:      "Total number of raw records received from the registry",
	})

	NewRecords = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "amber",
		Name:      "new_records_total",
		Help:      "Total number of first-seen missing-person records by priority",
	}, []string{"priority"})

	ExtractionDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "amber",
		Name:      "extraction_duration_seconds",
		Help:      "Duration of entity extraction by strategy",
		Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12),
	}, []string{"strategy"})

	PushSent = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "amber",
		Name:      "push_sent_total",
		Help:      "Total number of push messages delivered",
	})

	PushFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "amber",
		Name:      "push_failed_total",
		Help:      "Total number of push message delivery failures",
	})

	CycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "amber",
		Name:      "cycle_duration_seconds",
		Help:      "Duration of one full polling cycle",
		Buckets:   prometheus.ExponentialBuckets(0.05, 2, 12),
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "amber",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request duration",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "amber",
		Name:      "ws_connections",
		Help:      "Number of active WebSocket dashboard connections",
	})
)
