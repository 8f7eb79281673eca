package report

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	reportsGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "predstats",
		Name:      "reports_generated_total",
		Help:      "Number of summary reports generated.",
	})

	reportDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "predstats",
		Name:      "report_duration_seconds",
		Help:      "Wall time spent building a summary report.",
		Buckets:   prometheus.DefBuckets,
	})
)
