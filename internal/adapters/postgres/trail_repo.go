package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

const batchSize = 1000

// TrailRepo implements ports.DatasetSource and ports.TrailStore with pgx.
type TrailRepo struct {
	db *DB
}

// NewTrailRepo creates a new TrailRepo.
func NewTrailRepo(db *DB) *TrailRepo {
	return &TrailRepo{db: db}
}

// Ping checks the database connection.
func (r *TrailRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

// Load reads every dataset table. Trail shapes are not stored in the
// database, so Shapes is always empty.
func (r *TrailRepo) Load(ctx context.Context) (*domain.Dataset, error) {
	defer r.db.ObservePool()

	trails, err := r.trails(ctx)
	if err != nil {
		return nil, fmt.Errorf("query trails: %w", err)
	}
	points, err := r.points(ctx)
	if err != nil {
		return nil, fmt.Errorf("query trail points: %w", err)
	}
	amenities, err := r.amenities(ctx)
	if err != nil {
		return nil, fmt.Errorf("query amenities: %w", err)
	}
	return &domain.Dataset{Trails: trails, Points: points, Amenities: amenities}, nil
}

func (r *TrailRepo) trails(ctx context.Context) ([]domain.Trail, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT trail_id, name, dog_policy, mileage, difficulty, bicycles, horses, dogs, ebikes
		FROM trails ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Trail
	for rows.Next() {
		var (
			t                              domain.Trail
			bicycles, horses, dogs, ebikes string
		)
		if err := rows.Scan(&t.ID, &t.Name, &t.DogPolicy, &t.Mileage, &t.Difficulty,
			&bicycles, &horses, &dogs, &ebikes); err != nil {
			return nil, err
		}
		t.Uses = map[domain.Activity]string{
			domain.ActivityBicycles: bicycles,
			domain.ActivityHorses:   horses,
			domain.ActivityDogs:     dogs,
			domain.ActivityEBikes:   ebikes,
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TrailRepo) points(ctx context.Context) ([]domain.Trail, error) {
	rows, err := r.db.Pool.Query(ctx, `
		SELECT trail_id, name, dog_policy, difficulty, lat, lon
		FROM trail_points ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Trail
	for rows.Next() {
		var (
			p        domain.Trail
			lat, lon *float64
		)
		if err := rows.Scan(&p.ID, &p.Name, &p.DogPolicy, &p.Difficulty, &lat, &lon); err != nil {
			return nil, err
		}
		if lat != nil && lon != nil {
			p.Location = &domain.GeoPoint{Lat: *lat, Lon: *lon}
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *TrailRepo) amenities(ctx context.Context) ([]domain.Amenity, error) {
	rows, err := r.db.Pool.Query(ctx, `SELECT kind, name, lat, lon FROM amenities ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Amenity
	for rows.Next() {
		var (
			a    domain.Amenity
			kind string
		)
		if err := rows.Scan(&kind, &a.Name, &a.Location.Lat, &a.Location.Lon); err != nil {
			return nil, err
		}
		a.Kind = domain.AmenityKind(kind)
		out = append(out, a)
	}
	return out, rows.Err()
}

// ReplaceTrails swaps the trails table contents in one transaction.
func (r *TrailRepo) ReplaceTrails(ctx context.Context, trails []domain.Trail) error {
	return r.replace(ctx, "trails", len(trails), func(b *pgx.Batch, i int) {
		t := trails[i]
		b.Queue(`
			INSERT INTO trails (trail_id, name, dog_policy, mileage, difficulty, bicycles, horses, dogs, ebikes)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`, t.ID, t.Name, t.DogPolicy, t.Mileage, t.Difficulty,
			t.Uses[domain.ActivityBicycles], t.Uses[domain.ActivityHorses],
			t.Uses[domain.ActivityDogs], t.Uses[domain.ActivityEBikes])
	})
}

// ReplacePoints swaps the trail_points table contents in one transaction.
func (r *TrailRepo) ReplacePoints(ctx context.Context, points []domain.Trail) error {
	return r.replace(ctx, "trail_points", len(points), func(b *pgx.Batch, i int) {
		p := points[i]
		var lat, lon *float64
		if p.Location != nil {
			lat, lon = &p.Location.Lat, &p.Location.Lon
		}
		b.Queue(`
			INSERT INTO trail_points (trail_id, name, dog_policy, difficulty, lat, lon)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, p.ID, p.Name, p.DogPolicy, p.Difficulty, lat, lon)
	})
}

// ReplaceAmenities swaps the amenities table contents in one transaction.
func (r *TrailRepo) ReplaceAmenities(ctx context.Context, amenities []domain.Amenity) error {
	return r.replace(ctx, "amenities", len(amenities), func(b *pgx.Batch, i int) {
		a := amenities[i]
		b.Queue(`INSERT INTO amenities (kind, name, lat, lon) VALUES ($1, $2, $3, $4)`,
			string(a.Kind), a.Name, a.Location.Lat, a.Location.Lon)
	})
}

// replace truncates table and inserts n rows queued by row, flushing every
// batchSize rows.
func (r *TrailRepo) replace(ctx context.Context, table string, n int, row func(b *pgx.Batch, i int)) error {
	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	if _, err := tx.Exec(ctx, "DELETE FROM "+pgx.Identifier{table}.Sanitize()); err != nil {
		return fmt.Errorf("clear %s: %w", table, err)
	}

	batch := &pgx.Batch{}
	for i := 0; i < n; i++ {
		row(batch, i)
		if batch.Len() >= batchSize {
			if err := flushBatch(ctx, tx, batch); err != nil {
				return fmt.Errorf("insert %s: %w", table, err)
			}
			batch = &pgx.Batch{}
		}
	}
	if batch.Len() > 0 {
		if err := flushBatch(ctx, tx, batch); err != nil {
			return fmt.Errorf("insert %s: %w", table, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit %s: %w", table, err)
	}
	return nil
}

// flushBatch sends batch and reads every result. A Close error is returned
// when all items succeeded.
func flushBatch(ctx context.Context, tx batchSender, batch *pgx.Batch) (err error) {
	count := batch.Len()
	br := tx.SendBatch(ctx, batch)
	defer func() {
		if cerr := br.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close batch: %w", cerr)
		}
	}()
	for i := 0; i < count; i++ {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("batch item %d: %w", i, err)
		}
	}
	return nil
}

// batchSender is the part of pgx.Tx used by flushBatch.
type batchSender interface {
	SendBatch(ctx context.Context, b *pgx.Batch) pgx.BatchResults
}
