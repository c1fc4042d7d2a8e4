package wiring_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/trailboard/internal/adapters/csvfile"
	"github.com/samirrijal/trailboard/internal/pkg/config"
	"github.com/samirrijal/trailboard/internal/wiring"
)

func testConfig() *config.Config {
	return &config.Config{
		Source:    config.SourceConfig{Kind: config.SourceCSV},
		Data:      config.DataConfig{Dir: "data", Trails: "Trails.csv", TrailPoints: "merged_trails.csv"},
		Dashboard: config.DashboardConfig{PieTitle: "Trails by Dog Access Policy", MileageChart: true, CirclePackSize: 320},
		Map:       config.MapConfig{Title: "Map", CenterLat: 40.02, CenterLon: -105.27, Zoom: 13, AmenityRadius: 5000},
		Valkey:    config.ValkeyConfig{TTL: 120},
	}
}

func TestDashboardOptions(t *testing.T) {
	opts := wiring.DashboardOptions(testConfig())

	assert.Equal(t, 40.02, opts.Map.Center.Lat)
	assert.Equal(t, -105.27, opts.Map.Center.Lon)
	assert.Equal(t, 13.0, opts.Map.Zoom)
	assert.Equal(t, "Trails by Dog Access Policy", opts.PieTitle)
	assert.True(t, opts.MileageChart)
	assert.Equal(t, 320, opts.CirclePack.Size)
	assert.Equal(t, 5000.0, opts.AmenityRadius)
	assert.Equal(t, 120, opts.CacheTTL)
}

func TestOpenSource_CSV(t *testing.T) {
	src, closeFn, err := wiring.OpenSource(context.Background(), testConfig())
	require.NoError(t, err)
	defer closeFn()

	_, ok := src.(*csvfile.Source)
	assert.True(t, ok, "expected csv source, got %T", src)
}

func TestOpenSource_Unknown(t *testing.T) {
	cfg := testConfig()
	cfg.Source.Kind = "excel"
	_, _, err := wiring.OpenSource(context.Background(), cfg)
	assert.Error(t, err)
}

func TestOpenCache_Disabled(t *testing.T) {
	cache, err := wiring.OpenCache(testConfig())
	require.NoError(t, err)
	assert.Nil(t, cache)
}
