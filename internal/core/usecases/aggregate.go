package usecases

import (
	"sort"
	"strings"

	"github.com/samirrijal/trailboard/internal/charts"
	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/pkg/geospatial"
	"github.com/samirrijal/trailboard/internal/pkg/stats"
)

// MileageBucketCount is the number of quantile buckets for the mileage chart.
const MileageBucketCount = 20

// UnknownDifficulty labels map points whose difficulty is blank.
const UnknownDifficulty = "Unknown"

// CountByDogAccess counts trails per dog-access category. Unclassified trails
// and empty categories are left out. Results are ordered by count, largest
// first, with ties broken by domain.DogAccessOrder.
func CountByDogAccess(trails []domain.Trail) []domain.CategoryCount {
	counts := make(map[domain.DogAccess]int, len(domain.DogAccessOrder))
	for _, a := range ClassifyAll(trails) {
		if a != domain.DogAccessUnclassified {
			counts[a]++
		}
	}

	out := make([]domain.CategoryCount, 0, len(counts))
	for _, a := range domain.DogAccessOrder {
		if n := counts[a]; n > 0 {
			out = append(out, domain.CategoryCount{Access: a, Label: a.Label(), Count: n})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

// MileageDistribution bins positive trail mileages into quantile buckets.
func MileageDistribution(trails []domain.Trail) []domain.MileageBucket {
	values := make([]float64, 0, len(trails))
	for _, t := range trails {
		if t.Mileage != nil && *t.Mileage > 0 {
			values = append(values, *t.Mileage)
		}
	}

	bins := stats.QuantileBins(values, MileageBucketCount)
	out := make([]domain.MileageBucket, len(bins))
	for i, b := range bins {
		out[i] = domain.MileageBucket{
			Lower:    b.Lower,
			Upper:    b.Upper,
			Midpoint: b.Midpoint(),
			Count:    b.Count,
		}
	}
	return out
}

// ActivityTotals counts trails whose flag for each activity reads "yes".
// Activities nobody allows are dropped.
func ActivityTotals(trails []domain.Trail) []domain.ActivityTotal {
	var out []domain.ActivityTotal
	for _, a := range domain.Activities {
		n := 0
		for _, t := range trails {
			if strings.EqualFold(strings.TrimSpace(t.Uses[a]), "yes") {
				n++
			}
		}
		if n > 0 {
			out = append(out, domain.ActivityTotal{Activity: a, Label: a.Label(), Count: n})
		}
	}
	return out
}

// GroupMapLayers splits geo-located points into one layer per
// (dog-access category, difficulty) pair. Layers follow domain.DogAccessOrder,
// then difficulty in lexical order. Unclassified points and points without a
// location are skipped.
func GroupMapLayers(points []domain.Trail) []charts.MapLayer {
	type key struct {
		access     domain.DogAccess
		difficulty string
	}
	groups := make(map[key][]domain.Trail)
	difficulties := make(map[domain.DogAccess][]string)

	for _, p := range points {
		if p.Location == nil {
			continue
		}
		access := ClassifyDogPolicy(p.DogPolicy)
		if access == domain.DogAccessUnclassified {
			continue
		}
		diff := strings.TrimSpace(p.Difficulty)
		if diff == "" {
			diff = UnknownDifficulty
		}
		k := key{access, diff}
		if _, seen := groups[k]; !seen {
			difficulties[access] = append(difficulties[access], diff)
		}
		groups[k] = append(groups[k], p)
	}

	var layers []charts.MapLayer
	for _, a := range domain.DogAccessOrder {
		diffs := difficulties[a]
		sort.Strings(diffs)
		for _, d := range diffs {
			layers = append(layers, charts.MapLayer{Access: a, Difficulty: d, Points: groups[key{a, d}]})
		}
	}
	return layers
}

// Summarize computes every aggregate for a dataset.
func Summarize(ds *domain.Dataset) *domain.Summary {
	return &domain.Summary{
		DogAccess:  CountByDogAccess(ds.Trails),
		Mileage:    MileageDistribution(ds.Trails),
		Activities: ActivityTotals(ds.Trails),
		Trails:     len(ds.Trails),
		Points:     len(ds.Points),
		Amenities:  len(ds.Amenities),
	}
}

// NearbyAmenities keeps the amenities within radiusMeters of center.
// A non-positive radius keeps everything.
func NearbyAmenities(amenities []domain.Amenity, center domain.GeoPoint, radiusMeters float64) []domain.Amenity {
	if radiusMeters <= 0 {
		return amenities
	}
	out := make([]domain.Amenity, 0, len(amenities))
	for _, a := range amenities {
		if geospatial.Within(a.Location, center, radiusMeters) {
			out = append(out, a)
		}
	}
	return out
}
