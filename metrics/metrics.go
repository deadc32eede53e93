// ABOUTME: Prometheus collector fed by arena allocation and collection events
// ABOUTME: Install it on an arena with arena.WithObserver

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/prateek/gcarena/arena"
)

const namespace = "gcarena"

// Collector implements arena.Observer by updating Prometheus series.
// One Collector may observe several arenas; the live gauge then reports
// whichever arena collected last.
type Collector struct {
	collections prometheus.Counter
	allocations prometheus.Counter
	collected   prometheus.Counter
	live        prometheus.Gauge
	duration    prometheus.Histogram
}

var _ arena.Observer = (*Collector)(nil)

// NewCollector creates the series and registers them with reg.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		collections: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collections_total",
			Help:      "Number of completed collections.",
		}),
		allocations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "allocations_total",
			Help:      "Number of allocations made.",
		}),
		collected: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collected_total",
			Help:      "Number of allocations reclaimed by collections.",
		}),
		live: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "live_allocations",
			Help:      "Allocations still linked after the most recent collection.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "collection_duration_seconds",
			Help:      "Wall time spent in each collection.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	for _, m := range []prometheus.Collector{c.collections, c.allocations, c.collected, c.live, c.duration} {
		if err := reg.Register(m); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// MustNewCollector is like NewCollector but panics if registration fails.
func MustNewCollector(reg prometheus.Registerer) *Collector {
	c, err := NewCollector(reg)
	if err != nil {
		panic(err)
	}
	return c
}

func (c *Collector) OnAllocate() {
	c.allocations.Inc()
}

func (c *Collector) OnCollect(col arena.Collection, live int, d time.Duration) {
	c.collections.Inc()
	c.collected.Add(float64(col.Collected))
	c.live.Set(float64(live))
	c.duration.Observe(d.Seconds())
}
