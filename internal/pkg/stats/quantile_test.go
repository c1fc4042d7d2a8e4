package stats_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/trailboard/internal/pkg/stats"
)

func TestQuantile_Interpolates(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.0, stats.Quantile(sorted, 0), 1e-9)
	assert.InDelta(t, 2.5, stats.Quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 4.0, stats.Quantile(sorted, 1), 1e-9)
	assert.InDelta(t, 1.75, stats.Quantile(sorted, 0.25), 1e-9)
}

func TestQuantileEdges_DropsDuplicates(t *testing.T) {
	values := []float64{1, 1, 1, 1, 1, 1, 1, 1, 2, 3}
	edges := stats.QuantileEdges(values, 4)
	for i := 1; i < len(edges); i++ {
		assert.Greater(t, edges[i], edges[i-1])
	}
	assert.Equal(t, 1.0, edges[0])
	assert.Equal(t, 3.0, edges[len(edges)-1])
}

func TestQuantileBins_CountsSumAndMidpointsIncrease(t *testing.T) {
	values := make([]float64, 0, 137)
	for i := 0; i < 137; i++ {
		values = append(values, float64((i*37)%53)/10+0.1)
	}
	bins := stats.QuantileBins(values, 20)
	require.NotEmpty(t, bins)
	require.LessOrEqual(t, len(bins), 20)

	total := 0
	for i, b := range bins {
		total += b.Count
		if i > 0 {
			assert.Greater(t, b.Midpoint(), bins[i-1].Midpoint())
		}
	}
	assert.Equal(t, len(values), total)
}

func TestQuantileBins_EqualPopulation(t *testing.T) {
	values := make([]float64, 100)
	for i := range values {
		values[i] = float64(i + 1)
	}
	bins := stats.QuantileBins(values, 20)
	require.Len(t, bins, 20)
	// Lowest edge is inclusive so the first bucket carries one extra value.
	assert.Equal(t, 5, bins[0].Count)
	for _, b := range bins[1:] {
		assert.InDelta(t, 5, b.Count, 1)
	}
}

func TestQuantileBins_SingleValue(t *testing.T) {
	bins := stats.QuantileBins([]float64{2.5, 2.5, 2.5}, 20)
	require.Len(t, bins, 1)
	assert.Equal(t, 3, bins[0].Count)
	assert.Equal(t, 2.5, bins[0].Midpoint())
}

func TestQuantileBins_Empty(t *testing.T) {
	assert.Nil(t, stats.QuantileBins(nil, 20))
}
