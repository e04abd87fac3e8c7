package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// LedgerMetrics records counters for stock adjustments.
type LedgerMetrics struct {
	duration  *prometheus.HistogramVec
	committed *prometheus.CounterVec
	rejected  *prometheus.CounterVec
}

// NewLedgerMetrics registers the ledger metrics on the provided registerer.
func NewLedgerMetrics(reg prometheus.Registerer) *LedgerMetrics {
	if reg == nil {
		return &LedgerMetrics{}
	}
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "adjustment_duration_seconds",
		Help:    "Duration of stock adjustments in seconds.",
		Buckets: prometheus.DefBuckets,
	}, []string{"warehouse"})
	committed := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adjustments_committed",
		Help: "Successfully committed stock adjustments.",
	}, []string{"warehouse"})
	rejected := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "adjustments_rejected",
		Help: "Stock adjustments rejected at the ledger boundary.",
	}, []string{"reason"})
	reg.MustRegister(duration, committed, rejected)
	return &LedgerMetrics{
		duration:  duration,
		committed: committed,
		rejected:  rejected,
	}
}

// ObserveDuration records the duration of one adjustment.
func (l *LedgerMetrics) ObserveDuration(warehouse string, duration time.Duration) {
	if l == nil || l.duration == nil {
		return
	}
	l.duration.WithLabelValues(normalizeLabel(warehouse)).Observe(duration.Seconds())
}

// IncCommitted increments the committed counter for the given warehouse.
func (l *LedgerMetrics) IncCommitted(warehouse string) {
	if l == nil || l.committed == nil {
		return
	}
	l.committed.WithLabelValues(normalizeLabel(warehouse)).Inc()
}

// IncRejected increments the rejected counter for the given reason.
func (l *LedgerMetrics) IncRejected(reason string) {
	if l == nil || l.rejected == nil {
		return
	}
	l.rejected.WithLabelValues(normalizeLabel(reason)).Inc()
}

func normalizeLabel(value string) string {
	if value == "" {
		return "unknown"
	}
	return value
}
