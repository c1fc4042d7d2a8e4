package usecases

import (
	"strings"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

// dogPolicyRules are checked in order; the first substring found wins.
// "leash" must stay ahead of "voice and sight" so that descriptions mentioning
// both resolve to leash_required.
var dogPolicyRules = []struct {
	needle string
	access domain.DogAccess
}{
	{"no dogs", domain.DogAccessNoDogs},
	{"leash", domain.DogAccessLeashRequired},
	{"voice and sight", domain.DogAccessOffLeash},
}

// ClassifyDogPolicy maps a free-text dog regulation to a DogAccess category.
// An empty description is unclassified.
func ClassifyDogPolicy(desc string) domain.DogAccess {
	if desc == "" {
		return domain.DogAccessUnclassified
	}
	norm := strings.ToLower(strings.TrimSpace(desc))
	for _, r := range dogPolicyRules {
		if strings.Contains(norm, r.needle) {
			return r.access
		}
	}
	return domain.DogAccessUnclassified
}

// ClassifyAll classifies every trail, preserving order.
func ClassifyAll(trails []domain.Trail) []domain.DogAccess {
	out := make([]domain.DogAccess, len(trails))
	for i, t := range trails {
		out[i] = ClassifyDogPolicy(t.DogPolicy)
	}
	return out
}
