package usecases

import (
	"strings"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

// TrailFilter narrows ListTrails. Zero values match everything.
type TrailFilter struct {
	Access domain.DogAccess
	// Name matches trails whose name contains it, ignoring case.
	Name string
}

// ListTrails classifies every trail and keeps those matching f, in input order.
func ListTrails(trails []domain.Trail, f TrailFilter) []domain.TrailListing {
	name := strings.ToLower(strings.TrimSpace(f.Name))
	out := make([]domain.TrailListing, 0, len(trails))
	for _, t := range trails {
		access := ClassifyDogPolicy(t.DogPolicy)
		if f.Access != domain.DogAccessUnclassified && access != f.Access {
			continue
		}
		if name != "" && !strings.Contains(strings.ToLower(t.Name), name) {
			continue
		}
		out = append(out, domain.TrailListing{
			ID:          t.ID,
			Name:        t.Name,
			Access:      access,
			AccessLabel: access.Label(),
			Mileage:     t.Mileage,
			Difficulty:  t.Difficulty,
		})
	}
	return out
}

// ParseDogAccess accepts a category key ("off_leash") or its display label
// ("Off-Leash Allowed"), ignoring case.
func ParseDogAccess(s string) (domain.DogAccess, bool) {
	s = strings.TrimSpace(s)
	for _, a := range domain.DogAccessOrder {
		if strings.EqualFold(s, string(a)) || strings.EqualFold(s, a.Label()) {
			return a, true
		}
	}
	return domain.DogAccessUnclassified, false
}
