// Package shapefile reads trail polylines from ESRI shapefiles.
package shapefile

import (
	"fmt"
	"strings"

	"github.com/jonas-p/go-shp"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

// Load reads every polyline (or polygon ring) in path. nameField is the DBF
// attribute holding the trail name; an unknown field leaves names empty.
func Load(path, nameField string) ([]domain.TrailShape, error) {
	r, err := shp.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open shapefile %s: %w", path, err)
	}
	defer r.Close()

	nameIdx := -1
	for i, f := range r.Fields() {
		if strings.EqualFold(f.String(), nameField) {
			nameIdx = i
			break
		}
	}

	var shapes []domain.TrailShape
	for r.Next() {
		idx, shape := r.Shape()

		var parts [][]domain.GeoPoint
		switch s := shape.(type) {
		case *shp.PolyLine:
			parts = split(s.Parts, s.Points)
		case *shp.Polygon:
			parts = split(s.Parts, s.Points)
		default:
			continue
		}
		if len(parts) == 0 {
			continue
		}

		ts := domain.TrailShape{Parts: parts}
		if nameIdx >= 0 {
			ts.Name = strings.TrimSpace(strings.Trim(r.ReadAttribute(idx, nameIdx), "\x00"))
		}
		shapes = append(shapes, ts)
	}
	return shapes, nil
}

// split cuts the flat point list at the part offsets. Shapefile points are
// (X, Y) = (lon, lat).
func split(offsets []int32, points []shp.Point) [][]domain.GeoPoint {
	var parts [][]domain.GeoPoint
	for i, start := range offsets {
		end := int32(len(points))
		if i+1 < len(offsets) {
			end = offsets[i+1]
		}
		if start < 0 || start >= end || int(end) > len(points) {
			continue
		}
		part := make([]domain.GeoPoint, 0, end-start)
		for _, p := range points[start:end] {
			part = append(part, domain.GeoPoint{Lat: p.Y, Lon: p.X})
		}
		parts = append(parts, part)
	}
	return parts
}
