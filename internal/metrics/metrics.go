package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// QueryMetrics holds the Prometheus metrics for dashboard queries.
type QueryMetrics struct {
	QueriesTotal  *prometheus.CounterVec
	QueryDuration *prometheus.HistogramVec
}

// NewQueryMetrics creates the metrics and registers them on reg. A nil reg
// leaves them unregistered, which is what tests want.
func NewQueryMetrics(reg prometheus.Registerer) *QueryMetrics {
	factory := promauto.With(reg)
	return &QueryMetrics{
		QueriesTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoice_dashboard",
			Subsystem: "query",
			Name:      "total",
			Help:      "Total number of dashboard queries by operation and outcome.",
		}, []string{"operation", "outcome"}), // outcome: ok, error
		QueryDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "invoice_dashboard",
			Subsystem: "query",
			Name:      "duration_seconds",
			Help:      "Duration of dashboard queries including all store calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
	}
}

// Observe records one finished query. Safe on a nil receiver.
func (m *QueryMetrics) Observe(operation string, start time.Time, err error) {
	if m == nil {
		return
	}
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.QueriesTotal.WithLabelValues(operation, outcome).Inc()
	m.QueryDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}
