// Package metrics exposes Prometheus collectors for index builds and flag lookups.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Lookup outcomes.
const (
	OutcomeAlias    = "alias"
	OutcomeHit      = "hit"
	OutcomeFallback = "fallback"
)

// Build results.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the collectors for index builds and flag lookups.
type Metrics struct {
	Builds           *prometheus.CounterVec
	BuildDuration    prometheus.Histogram
	FlagLookups      *prometheus.CounterVec
	DegradedFlags    prometheus.Gauge
	IndexedCountries prometheus.Gauge
}

// New registers the collectors on reg. Use prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Builds: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countrydata_index_builds_total",
			Help: "Total number of reference index builds by result",
		}, []string{"result"}),
		BuildDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "countrydata_index_build_duration_seconds",
			Help:    "Duration of reference index builds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FlagLookups: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "countrydata_flag_lookups_total",
			Help: "Total number of flag lookups by outcome",
		}, []string{"outcome"}),
		DegradedFlags: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countrydata_degraded_flags",
			Help: "Countries whose flag fell back to the globe during the last build",
		}),
		IndexedCountries: factory.NewGauge(prometheus.GaugeOpts{
			Name: "countrydata_indexed_countries",
			Help: "Countries in the reference index",
		}),
	}
}

// ObserveBuild records the duration since start and counts the build by result.
func (m *Metrics) ObserveBuild(start time.Time, err error) {
	m.BuildDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		m.Builds.WithLabelValues(ResultFailure).Inc()
		return
	}
	m.Builds.WithLabelValues(ResultSuccess).Inc()
}

// SetIndexSize sets the indexed country and degraded flag gauges.
func (m *Metrics) SetIndexSize(countries, degraded int) {
	m.IndexedCountries.Set(float64(countries))
	m.DegradedFlags.Set(float64(degraded))
}

// IncrementLookup counts one flag lookup with the given outcome.
func (m *Metrics) IncrementLookup(outcome string) {
	m.FlagLookups.WithLabelValues(outcome).Inc()
}
