// ABOUTME: Tests for the Prometheus collector
// ABOUTME: Drives a real arena and reads the series back from a registry

package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/prateek/gcarena/arena"
)

type cell struct{}

func (cell) Trace(*arena.Visitor) {}

func gather(t *testing.T, reg *prometheus.Registry) map[string]*dto.Metric {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)
	out := make(map[string]*dto.Metric, len(families))
	for _, mf := range families {
		require.Len(t, mf.GetMetric(), 1)
		out[mf.GetName()] = mf.GetMetric()[0]
	}
	return out
}

func TestCollectorCountsCollections(t *testing.T) {
	reg := prometheus.NewRegistry()
	c, err := NewCollector(reg)
	require.NoError(t, err)

	a := arena.New(arena.WithObserver(c))
	arena.AllocateRooted(a, cell{})
	for i := 0; i < 4; i++ {
		arena.Allocate(a, cell{})
	}
	a.Collect()
	arena.Allocate(a, cell{})
	a.Collect()

	m := gather(t, reg)
	assert.Equal(t, 2.0, m["gcarena_collections_total"].GetCounter().GetValue())
	assert.Equal(t, 6.0, m["gcarena_allocations_total"].GetCounter().GetValue())
	assert.Equal(t, 5.0, m["gcarena_collected_total"].GetCounter().GetValue())
	assert.Equal(t, 1.0, m["gcarena_live_allocations"].GetGauge().GetValue())
	assert.Equal(t, uint64(2), m["gcarena_collection_duration_seconds"].GetHistogram().GetSampleCount())
}

func TestDuplicateRegistration(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := NewCollector(reg)
	require.NoError(t, err)

	_, err = NewCollector(reg)
	var already prometheus.AlreadyRegisteredError
	require.ErrorAs(t, err, &already)

	assert.Panics(t, func() { MustNewCollector(reg) })
}
