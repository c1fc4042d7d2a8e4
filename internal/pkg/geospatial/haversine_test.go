package geospatial_test

import (
	"math"
	"testing"

	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/pkg/geospatial"
)

var (
	boulder = domain.GeoPoint{Lat: 40.0150, Lon: -105.2705}
	denver  = domain.GeoPoint{Lat: 39.7392, Lon: -104.9903}
)

func TestHaversine(t *testing.T) {
	d := geospatial.Haversine(boulder, denver)
	// ~39 km between downtown Boulder and downtown Denver.
	if d < 38000 || d > 40000 {
		t.Errorf("Haversine(boulder, denver) = %.0f m, want ~39000", d)
	}
	if got := geospatial.Haversine(boulder, boulder); got != 0 {
		t.Errorf("Haversine(p, p) = %v, want 0", got)
	}
	if math.Abs(geospatial.Haversine(boulder, denver)-geospatial.Haversine(denver, boulder)) > 1e-6 {
		t.Error("Haversine is not symmetric")
	}
}

func TestBoundingBox(t *testing.T) {
	b := geospatial.BoundingBox(boulder, 1000)
	if !b.Contains(boulder) {
		t.Fatal("box does not contain its center")
	}
	if b.Contains(denver) {
		t.Error("1 km box should not contain Denver")
	}
	if b.MaxLat-b.MinLat <= 0 || b.MaxLon-b.MinLon <= b.MaxLat-b.MinLat {
		t.Errorf("unexpected box shape %+v", b)
	}
}

func TestWithin(t *testing.T) {
	near := domain.GeoPoint{Lat: 40.0200, Lon: -105.2705} // ~550 m north
	if !geospatial.Within(near, boulder, 1000) {
		t.Error("point 550 m away should be within 1 km")
	}
	if geospatial.Within(near, boulder, 300) {
		t.Error("point 550 m away should not be within 300 m")
	}
	if geospatial.Within(denver, boulder, 10000) {
		t.Error("Denver should not be within 10 km of Boulder")
	}
}
