// Package csvfile loads the trail datasets from CSV exports on disk.
package csvfile

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/samirrijal/trailboard/internal/adapters/shapefile"
	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/pkg/config"
)

// Source reads every dataset from files under one directory. Nothing is
// cached: each Load reads the files again.
type Source struct {
	files config.DataConfig
	cols  config.ColumnsConfig
}

// NewSource creates a Source. Relative file names resolve against files.Dir.
func NewSource(files config.DataConfig, cols config.ColumnsConfig) *Source {
	return &Source{files: files, cols: cols}
}

func (s *Source) path(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.files.Dir, name)
}

// Ping checks that the required files exist.
func (s *Source) Ping(_ context.Context) error {
	for _, name := range []string{s.files.Trails, s.files.TrailPoints} {
		if _, err := os.Stat(s.path(name)); err != nil {
			return fmt.Errorf("stat %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the trails, trail points, amenities and trail shapes.
func (s *Source) Load(ctx context.Context) (*domain.Dataset, error) {
	trails, err := s.loadTrails(s.path(s.files.Trails))
	if err != nil {
		return nil, err
	}
	points, err := s.loadPoints(s.path(s.files.TrailPoints))
	if err != nil {
		return nil, err
	}
	InheritFromTrails(points, trails)

	ds := &domain.Dataset{Trails: trails, Points: points}

	for _, opt := range []struct {
		kind domain.AmenityKind
		file string
	}{
		{domain.AmenityPark, s.files.Parks},
		{domain.AmenityDogBusiness, s.files.DogBusinesses},
		{domain.AmenityVeterinarian, s.files.Veterinarians},
	} {
		amenities, err := s.loadAmenities(ctx, opt.kind, s.path(opt.file))
		if err != nil {
			return nil, err
		}
		ds.Amenities = append(ds.Amenities, amenities...)
	}

	if s.files.TrailShapes != "" {
		path := s.path(s.files.TrailShapes)
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			slog.DebugContext(ctx, "trail shapes not found, skipping", "file", path)
		} else {
			shapes, err := shapefile.Load(path, s.cols.Shapes.Name)
			if err != nil {
				return nil, err
			}
			ds.Shapes = shapes
		}
	}

	slog.DebugContext(ctx, "datasets loaded",
		"trails", len(ds.Trails),
		"points", len(ds.Points),
		"amenities", len(ds.Amenities),
		"shapes", len(ds.Shapes),
	)
	return ds, nil
}

func (s *Source) loadTrails(path string) ([]domain.Trail, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("trails: %w", err)
	}
	c := s.cols.Trails
	if err := t.require(c.DogPolicy, c.Mileage, c.Bicycles, c.Horses, c.Dogs, c.EBikes); err != nil {
		return nil, err
	}

	flags := map[domain.Activity]string{
		domain.ActivityBicycles: c.Bicycles,
		domain.ActivityHorses:   c.Horses,
		domain.ActivityDogs:     c.Dogs,
		domain.ActivityEBikes:   c.EBikes,
	}

	trails := make([]domain.Trail, 0, len(t.rows))
	for _, rec := range t.rows {
		tr := domain.Trail{
			ID:         t.get(rec, c.ID),
			Name:       t.get(rec, c.Name),
			Mileage:    t.float(rec, c.Mileage),
			Difficulty: t.get(rec, c.Difficulty),
			DogPolicy:  t.get(rec, c.DogPolicy),
			Uses:       make(map[domain.Activity]string, len(flags)),
		}
		for a, col := range flags {
			tr.Uses[a] = t.get(rec, col)
		}
		trails = append(trails, tr)
	}
	return trails, nil
}

func (s *Source) loadPoints(path string) ([]domain.Trail, error) {
	t, err := readTable(path)
	if err != nil {
		return nil, fmt.Errorf("trail points: %w", err)
	}
	c := s.cols.Points
	if err := t.require(c.DogPolicy, c.Latitude, c.Longitude); err != nil {
		return nil, err
	}

	points := make([]domain.Trail, 0, len(t.rows))
	for _, rec := range t.rows {
		points = append(points, domain.Trail{
			ID:         t.get(rec, c.ID),
			Name:       t.get(rec, c.Name),
			Location:   t.location(rec, c.Latitude, c.Longitude),
			Difficulty: t.get(rec, c.Difficulty),
			DogPolicy:  t.get(rec, c.DogPolicy),
		})
	}
	return points, nil
}

// loadAmenities reads one optional amenity file. A missing file yields no
// amenities; a present file must carry the coordinate columns.
func (s *Source) loadAmenities(ctx context.Context, kind domain.AmenityKind, path string) ([]domain.Amenity, error) {
	if path == "" {
		return nil, nil
	}
	t, err := readTable(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.DebugContext(ctx, "amenity file not found, skipping", "kind", kind, "file", path)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", kind, err)
	}
	c := s.cols.Amenities
	if err := t.require(c.Latitude, c.Longitude); err != nil {
		return nil, err
	}

	var out []domain.Amenity
	for _, rec := range t.rows {
		loc := t.location(rec, c.Latitude, c.Longitude)
		if loc == nil {
			continue
		}
		out = append(out, domain.Amenity{Kind: kind, Name: t.get(rec, c.Name), Location: *loc})
	}
	return out, nil
}

// InheritFromTrails fills blank dog policy and difficulty on points from the
// trail row with the same ID.
func InheritFromTrails(points, trails []domain.Trail) {
	byID := make(map[string]*domain.Trail, len(trails))
	for i := range trails {
		if id := trails[i].ID; id != "" {
			if _, dup := byID[id]; !dup {
				byID[id] = &trails[i]
			}
		}
	}
	for i := range points {
		tr, ok := byID[points[i].ID]
		if !ok || points[i].ID == "" {
			continue
		}
		if points[i].DogPolicy == "" {
			points[i].DogPolicy = tr.DogPolicy
		}
		if points[i].Difficulty == "" {
			points[i].Difficulty = tr.Difficulty
		}
		if points[i].Name == "" {
			points[i].Name = tr.Name
		}
	}
}
