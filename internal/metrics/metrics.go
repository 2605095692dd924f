// Package metrics holds the Prometheus collectors for degrees queries.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vanshika/degrees/internal/dataset"
)

// Search outcomes.
const (
	OutcomeConnected    = "connected"
	OutcomeNotConnected = "not_connected"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

// Metrics groups the collectors recorded by the service.
type Metrics struct {
	searches     *prometheus.CounterVec
	duration     *prometheus.HistogramVec
	explored     prometheus.Histogram
	degrees      prometheus.Histogram
	datasetSizes *prometheus.GaugeVec
}

// New creates the collectors and registers them with reg. A nil reg leaves
// them unregistered, which suits tests.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "degrees_searches_total",
			Help: "Shortest path searches by outcome",
		}, []string{"outcome"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "degrees_search_duration_seconds",
			Help:    "Shortest path search latency in seconds",
			Buckets: prometheus.ExponentialBuckets(0.0001, 2, 16), // 0.1ms to ~3s
		}, []string{"outcome"}),
		explored: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_search_explored_people",
			Help:    "People dequeued per search",
			Buckets: prometheus.ExponentialBuckets(1, 4, 10),
		}),
		degrees: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "degrees_separation",
			Help:    "Degrees of separation for connected pairs",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6, 8, 10},
		}),
		datasetSizes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "degrees_dataset_records",
			Help: "Records in the loaded dataset by kind",
		}, []string{"kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.searches, m.duration, m.explored, m.degrees, m.datasetSizes)
	}
	return m
}

// ObserveSearch records one finished search. explored and degrees are
// ignored for outcomes that did not run a traversal.
func (m *Metrics) ObserveSearch(outcome string, elapsed time.Duration, explored, degrees int) {
	if m == nil {
		return
	}
	m.searches.WithLabelValues(outcome).Inc()
	m.duration.WithLabelValues(outcome).Observe(elapsed.Seconds())
	switch outcome {
	case OutcomeConnected:
		m.explored.Observe(float64(explored))
		m.degrees.Observe(float64(degrees))
	case OutcomeNotConnected:
		m.explored.Observe(float64(explored))
	}
}

// SetDataset publishes the size of the loaded dataset.
func (m *Metrics) SetDataset(stats dataset.Stats) {
	if m == nil {
		return
	}
	m.datasetSizes.WithLabelValues("people").Set(float64(stats.People))
	m.datasetSizes.WithLabelValues("movies").Set(float64(stats.Movies))
	m.datasetSizes.WithLabelValues("stars").Set(float64(stats.Stars))
	m.datasetSizes.WithLabelValues("dropped_stars").Set(float64(stats.DroppedStars))
}
