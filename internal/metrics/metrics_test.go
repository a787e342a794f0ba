// Package metrics includes tests for the downloader's Prometheus collectors.
package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

// TestNewRegistersCollectors builds a registry with all collectors attached.
func TestNewRegistersCollectors(t *testing.T) {
	t.Parallel()

	m := New()
	require.NotNil(t, m.Registry)

	families, err := m.Registry.Gather()
	require.NoError(t, err)
	// Counter vecs with no observations gather empty; the histogram is
	// always present.
	names := make([]string, 0, len(families))
	for _, mf := range families {
		names = append(names, mf.GetName())
	}
	require.Contains(t, names, "pagezip_fetch_duration_seconds")
}

// TestObserveSuccess increments the ok counter and the byte total.
func TestObserveSuccess(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveSuccess(1024, 150*time.Millisecond)
	m.ObserveSuccess(512, 50*time.Millisecond)

	require.InDelta(t, 2, testutil.ToFloat64(m.PagesTotal.WithLabelValues("ok")), 0.001)
	require.InDelta(t, 1536, testutil.ToFloat64(m.BytesTotal), 0.001)
	require.Equal(t, 1, testutil.CollectAndCount(m.FetchDuration))
}

// TestObserveFailure increments only the failed counter.
func TestObserveFailure(t *testing.T) {
	t.Parallel()

	m := New()
	m.ObserveFailure()

	require.InDelta(t, 1, testutil.ToFloat64(m.PagesTotal.WithLabelValues("failed")), 0.001)
	require.InDelta(t, 0, testutil.ToFloat64(m.BytesTotal), 0.001)
}

// TestIndependentRegistries keeps two runs' collectors apart.
func TestIndependentRegistries(t *testing.T) {
	t.Parallel()

	first := New()
	second := New()
	first.ObserveFailure()

	require.InDelta(t, 1, testutil.ToFloat64(first.PagesTotal.WithLabelValues("failed")), 0.001)
	require.InDelta(t, 0, testutil.ToFloat64(second.PagesTotal.WithLabelValues("failed")), 0.001)
}
