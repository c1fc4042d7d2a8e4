package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/samirrijal/trailboard/internal/pkg/metrics"
)

// DB wraps pgxpool.Pool and provides a shared connection pool.
type DB struct {
	Pool *pgxpool.Pool
}

// New creates a new DB connection pool.
func New(ctx context.Context, dsn string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse dsn: %w", err)
	}

	cfg.MaxConns = 10

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}

	return &DB{Pool: pool}, nil
}

// Ping checks the connection.
func (db *DB) Ping(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}

// ObservePool copies pool statistics into the Prometheus gauges.
func (db *DB) ObservePool() {
	st := db.Pool.Stat()
	metrics.DBPoolConnsOpen.Set(float64(st.TotalConns()))
	metrics.DBPoolConnsAcquired.Set(float64(st.AcquiredConns()))
	metrics.DBPoolConnsIdle.Set(float64(st.IdleConns()))
}

// Close releases pool resources.
func (db *DB) Close() {
	db.Pool.Close()
}
