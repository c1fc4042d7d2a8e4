package ports

import (
	"context"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

// DatasetSource loads the trail datasets for one render. Implementations must
// read their backing storage on every call; nothing is kept between calls.
type DatasetSource interface {
	Load(ctx context.Context) (*domain.Dataset, error)
	// Ping reports whether the backing storage is reachable.
	Ping(ctx context.Context) error
}

// TrailStore persists datasets for the postgres-backed source.
type TrailStore interface {
	ReplaceTrails(ctx context.Context, trails []domain.Trail) error
	ReplacePoints(ctx context.Context, points []domain.Trail) error
	ReplaceAmenities(ctx context.Context, amenities []domain.Amenity) error
}
