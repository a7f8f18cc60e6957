package importing

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/sirupsen/logrus"
)

var (
	rowsProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "import",
		Name:      "rows_total",
		Help:      "Rows seen by the import preview, by domain and classification.",
	}, []string{"domain", "outcome"})

	commits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "backoffice",
		Subsystem: "import",
		Name:      "commits_total",
		Help:      "Import commits by domain and final status.",
	}, []string{"domain", "status"})

	stageLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "backoffice",
		Subsystem: "import",
		Name:      "stage_seconds",
		Help:      "Latency of each import pipeline stage.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"stage"})
)

func observeStage(stage string, start time.Time) {
	stageLatency.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

func countRows(domain, outcome string, n int) {
	if n <= 0 {
		return
	}
	rowsProcessed.WithLabelValues(domain, outcome).Add(float64(n))
}

func entryOrDefault(logger *logrus.Entry) *logrus.Entry {
	if logger != nil {
		return logger
	}
	return logrus.NewEntry(logrus.StandardLogger())
}
