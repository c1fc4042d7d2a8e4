package main

import (
	"context"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/samirrijal/trailboard/internal/adapters/csvfile"
	"github.com/samirrijal/trailboard/internal/adapters/postgres"
	"github.com/samirrijal/trailboard/internal/pkg/config"
	"github.com/samirrijal/trailboard/internal/pkg/logging"
)

func main() {
	_ = godotenv.Load(".env")

	dataDir := flag.String("data", "", "directory holding the CSV datasets (overrides data.dir)")
	timeout := flag.Duration("timeout", 5*time.Minute, "maximum time for the whole import")
	flag.Parse()

	cfg, err := config.Load("trailboard-ingestor")
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)
	if *dataDir != "" {
		cfg.Data.Dir = *dataDir
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	if err := run(ctx, cfg); err != nil {
		slog.Error("ingestion failed", "error", err)
		cancel()
		os.Exit(1)
	}
}

// run reads the CSV datasets and replaces the database copy in one pass
// per table.
func run(ctx context.Context, cfg *config.Config) error {
	start := time.Now()

	src := csvfile.NewSource(cfg.Data, cfg.Columns)
	ds, err := src.Load(ctx)
	if err != nil {
		return err
	}
	slog.Info("datasets read",
		"dir", cfg.Data.Dir,
		"trails", len(ds.Trails),
		"points", len(ds.Points),
		"amenities", len(ds.Amenities),
	)

	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer db.Close()

	repo := postgres.NewTrailRepo(db)
	if err := repo.ReplaceTrails(ctx, ds.Trails); err != nil {
		return err
	}
	if err := repo.ReplacePoints(ctx, ds.Points); err != nil {
		return err
	}
	if err := repo.ReplaceAmenities(ctx, ds.Amenities); err != nil {
		return err
	}
	if len(ds.Shapes) > 0 {
		slog.Warn("trail shapes are not stored in postgres", "shapes", len(ds.Shapes))
	}

	slog.Info("ingestion complete", "duration", time.Since(start).Round(time.Millisecond))
	return nil
}
