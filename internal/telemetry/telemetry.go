// Package telemetry registers the Prometheus counters and histograms
// exposed by the optional debug/metrics surface (SPEC_FULL.md §4.12),
// grounded on tomtom215-cartographus's prometheus/client_golang usage,
// scaled down to the handful of series a single batch run produces.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is one run's private metric set, registered on its own
// registry so concurrent test runs never collide on the default
// DefaultRegisterer.
type Metrics struct {
	Registry *prometheus.Registry

	InteractionsTotal     prometheus.Counter
	UserRowsTotal         prometheus.Counter
	CooccurrencePairsTotal prometheus.Counter
	PassDuration          *prometheus.HistogramVec
}

// New constructs and registers a fresh Metrics set.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		Registry: reg,
		InteractionsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recoreco_interactions_total",
			Help: "Total (user, item) interactions read in pass 1.",
		}),
		UserRowsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recoreco_user_rows_total",
			Help: "Total user rows emitted to the co-occurrence matrix.",
		}),
		CooccurrencePairsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "recoreco_cooccurrence_pairs_total",
			Help: "Total item-pair co-occurrence increments recorded.",
		}),
		PassDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "recoreco_pass_duration_seconds",
			Help:    "Wall-clock duration of each pipeline pass.",
			Buckets: prometheus.DefBuckets,
		}, []string{"pass"}),
	}

	reg.MustRegister(m.InteractionsTotal, m.UserRowsTotal, m.CooccurrencePairsTotal, m.PassDuration)
	return m
}
