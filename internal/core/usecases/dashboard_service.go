package usecases

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"github.com/samirrijal/trailboard/internal/charts"
	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/core/ports"
	"github.com/samirrijal/trailboard/internal/pkg/metrics"
	"github.com/samirrijal/trailboard/internal/pkg/telemetry"
)

// Options are the presentation settings of the dashboard.
type Options struct {
	Map          charts.MapOptions
	PieTitle     string
	MileageTitle string
	// MileageChart adds the mileage distribution line chart to the page.
	MileageChart bool
	CirclePack   charts.CirclePackOptions
	// AmenityRadius limits map amenities to this many meters around
	// Map.Center. 0 shows all of them.
	AmenityRadius float64
	// CacheTTL is how long a rendered circle-pack image is kept, in seconds.
	CacheTTL int
}

// Dashboard is the chart output of one render.
type Dashboard struct {
	Summary       *domain.Summary
	Map           charts.Figure
	Pie           charts.Figure
	Line          *charts.Figure // nil unless Options.MileageChart
	CirclePackPNG []byte         // nil when no activity is allowed anywhere
	GeneratedAt   time.Time
}

// DashboardService runs the load, classify, aggregate and chart pipeline.
type DashboardService struct {
	source ports.DatasetSource
	cache  ports.CacheService
	opts   Options
}

// NewDashboardService creates a new DashboardService. cache may be nil.
func NewDashboardService(source ports.DatasetSource, cache ports.CacheService, opts Options) *DashboardService {
	return &DashboardService{source: source, cache: cache, opts: opts}
}

// Ping checks that the dataset source is reachable.
func (s *DashboardService) Ping(ctx context.Context) error {
	return s.source.Ping(ctx)
}

// Summary loads the datasets and returns their aggregates.
func (s *DashboardService) Summary(ctx context.Context) (*domain.Summary, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	var sum *domain.Summary
	_ = s.stage(ctx, telemetry.SpanAggregate, func(context.Context) error {
		sum = Summarize(ds)
		return nil
	})
	return sum, nil
}

// Trails loads the trails and lists those matching f.
func (s *DashboardService) Trails(ctx context.Context, f TrailFilter) ([]domain.TrailListing, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}
	return ListTrails(ds.Trails, f), nil
}

// ActivityImage loads the datasets and returns the circle-pack PNG.
func (s *DashboardService) ActivityImage(ctx context.Context) ([]byte, error) {
	sum, err := s.Summary(ctx)
	if err != nil {
		return nil, err
	}
	return s.circlePack(ctx, sum.Activities)
}

// Render runs the full pipeline and returns every chart of the page.
func (s *DashboardService) Render(ctx context.Context) (*Dashboard, error) {
	ds, err := s.load(ctx)
	if err != nil {
		return nil, err
	}

	var (
		sum    *domain.Summary
		layers []charts.MapLayer
	)
	_ = s.stage(ctx, telemetry.SpanAggregate, func(context.Context) error {
		sum = Summarize(ds)
		layers = GroupMapLayers(ds.Points)
		return nil
	})

	d := &Dashboard{Summary: sum, GeneratedAt: time.Now()}
	_ = s.stage(ctx, telemetry.SpanCharts, func(context.Context) error {
		mapOpts := s.opts.Map
		hasCenter := mapOpts.Center != (domain.GeoPoint{})
		if !hasCenter {
			mapOpts.Center, hasCenter = charts.FitCenter(layers)
		}
		amenities := ds.Amenities
		if hasCenter {
			amenities = NearbyAmenities(amenities, mapOpts.Center, s.opts.AmenityRadius)
		}
		d.Map = charts.BuildDogAccessMap(layers, amenities, ds.Shapes, mapOpts)
		d.Pie = charts.BuildDogAccessPie(sum.DogAccess, s.opts.PieTitle)
		if s.opts.MileageChart {
			line := charts.BuildMileageLine(sum.Mileage, s.opts.MileageTitle)
			d.Line = &line
		}
		return nil
	})

	png, err := s.circlePack(ctx, sum.Activities)
	if err != nil {
		return nil, err
	}
	d.CirclePackPNG = png

	metrics.DashboardRenders.Inc()
	return d, nil
}

func (s *DashboardService) load(ctx context.Context) (*domain.Dataset, error) {
	var ds *domain.Dataset
	err := s.stage(ctx, telemetry.SpanLoad, func(ctx context.Context) error {
		var err error
		ds, err = s.source.Load(ctx)
		return err
	})
	if err != nil {
		metrics.DashboardFailures.WithLabelValues("load").Inc()
		return nil, fmt.Errorf("load datasets: %w", err)
	}
	metrics.DatasetRows.WithLabelValues("trails").Set(float64(len(ds.Trails)))
	metrics.DatasetRows.WithLabelValues("points").Set(float64(len(ds.Points)))
	metrics.DatasetRows.WithLabelValues("amenities").Set(float64(len(ds.Amenities)))
	metrics.DatasetRows.WithLabelValues("shapes").Set(float64(len(ds.Shapes)))
	return ds, nil
}

// circlePack renders the activity raster, going through the cache when one
// is configured. The image is a pure function of the totals and options, so
// the key is a hash of both.
func (s *DashboardService) circlePack(ctx context.Context, totals []domain.ActivityTotal) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}

	var key string
	if s.cache != nil {
		if raw, err := json.Marshal(struct {
			T []domain.ActivityTotal
			O charts.CirclePackOptions
		}{totals, s.opts.CirclePack}); err == nil {
			h := sha256.Sum256(raw)
			key = "circlepack:" + hex.EncodeToString(h[:16])
			if data, err := s.cache.Get(ctx, key); err == nil {
				metrics.CacheHits.WithLabelValues("circlepack").Inc()
				return data, nil
			} else if !errors.Is(err, ports.ErrCacheMiss) {
				slog.WarnContext(ctx, "circle pack cache read failed", "error", err)
			}
			metrics.CacheMisses.WithLabelValues("circlepack").Inc()
		}
	}

	var png []byte
	err := s.stage(ctx, telemetry.SpanCirclePack, func(context.Context) error {
		var err error
		png, err = charts.RenderCirclePack(totals, s.opts.CirclePack)
		return err
	})
	if err != nil {
		metrics.DashboardFailures.WithLabelValues("circlepack").Inc()
		return nil, err
	}

	if key != "" {
		ttl := s.opts.CacheTTL
		if ttl <= 0 {
			ttl = 300
		}
		if err := s.cache.Set(ctx, key, png, ttl); err != nil {
			slog.WarnContext(ctx, "circle pack cache write failed", "error", err)
		}
	}
	return png, nil
}

// stage runs fn inside a trace span and records its duration.
func (s *DashboardService) stage(ctx context.Context, name string, fn func(ctx context.Context) error) error {
	ctx, span := telemetry.Tracer().Start(ctx, name)
	defer span.End()

	start := time.Now()
	err := fn(ctx)
	metrics.StageDuration.WithLabelValues(name).Observe(time.Since(start).Seconds())
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}
