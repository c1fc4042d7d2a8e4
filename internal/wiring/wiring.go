// Package wiring builds the dashboard pipeline from configuration. It is
// shared by the API server and the report CLI.
package wiring

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/samirrijal/trailboard/internal/adapters/csvfile"
	"github.com/samirrijal/trailboard/internal/adapters/postgres"
	"github.com/samirrijal/trailboard/internal/adapters/valkey"
	"github.com/samirrijal/trailboard/internal/charts"
	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/core/ports"
	"github.com/samirrijal/trailboard/internal/core/usecases"
	"github.com/samirrijal/trailboard/internal/pkg/config"
)

// DashboardOptions maps configuration onto the dashboard service options.
func DashboardOptions(cfg *config.Config) usecases.Options {
	return usecases.Options{
		Map: charts.MapOptions{
			Title:      cfg.Map.Title,
			Center:     domain.GeoPoint{Lat: cfg.Map.CenterLat, Lon: cfg.Map.CenterLon},
			Zoom:       cfg.Map.Zoom,
			MarkerSize: cfg.Map.MarkerSize,
		},
		PieTitle:      cfg.Dashboard.PieTitle,
		MileageTitle:  cfg.Dashboard.MileageTitle,
		MileageChart:  cfg.Dashboard.MileageChart,
		CirclePack:    charts.CirclePackOptions{Size: cfg.Dashboard.CirclePackSize},
		AmenityRadius: cfg.Map.AmenityRadius,
		CacheTTL:      cfg.Valkey.TTL,
	}
}

// OpenSource returns the configured dataset source. The returned func
// releases its resources.
func OpenSource(ctx context.Context, cfg *config.Config) (ports.DatasetSource, func(), error) {
	switch cfg.Source.Kind {
	case config.SourcePostgres:
		db, err := postgres.New(ctx, cfg.Database.DSN())
		if err != nil {
			return nil, nil, fmt.Errorf("database: %w", err)
		}
		return postgres.NewTrailRepo(db), db.Close, nil
	case config.SourceCSV, "":
		return csvfile.NewSource(cfg.Data, cfg.Columns), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}
}

// OpenCache connects to Valkey when it is enabled. A nil cache with a nil
// error means caching is off.
func OpenCache(cfg *config.Config) (*valkey.Cache, error) {
	if !cfg.Valkey.Enabled {
		return nil, nil
	}
	cache, err := valkey.New(cfg.Valkey.Addr, "trailboard:")
	if err != nil {
		return nil, err
	}
	slog.Info("valkey cache enabled", "addr", cfg.Valkey.Addr, "ttl", cfg.Valkey.TTL)
	return cache, nil
}

// NewDashboard builds the dashboard service. cache may be nil.
func NewDashboard(cfg *config.Config, source ports.DatasetSource, cache *valkey.Cache) *usecases.DashboardService {
	var c ports.CacheService
	if cache != nil {
		c = cache
	}
	return usecases.NewDashboardService(source, c, DashboardOptions(cfg))
}
