package usecases_test

import (
	"testing"

	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/core/usecases"
)

func TestListTrails(t *testing.T) {
	trails := []domain.Trail{
		{ID: "1", Name: "Mesa Trail", DogPolicy: "Voice and Sight", Mileage: miles(6.7)},
		{ID: "2", Name: "Sanitas Valley", DogPolicy: "Leash required"},
		{ID: "3", Name: "Mesa Reservoir", DogPolicy: "No Dogs"},
		{ID: "4", Name: "Unknown", DogPolicy: ""},
	}

	all := usecases.ListTrails(trails, usecases.TrailFilter{})
	if len(all) != 4 {
		t.Fatalf("expected 4 trails, got %d", len(all))
	}
	if all[3].AccessLabel != "Unclassified" {
		t.Errorf("expected Unclassified label, got %q", all[3].AccessLabel)
	}
	if all[0].Mileage == nil || *all[0].Mileage != 6.7 {
		t.Errorf("mileage not carried over: %v", all[0].Mileage)
	}

	mesa := usecases.ListTrails(trails, usecases.TrailFilter{Name: " mesa "})
	if len(mesa) != 2 || mesa[0].ID != "1" || mesa[1].ID != "3" {
		t.Errorf("name filter: got %+v", mesa)
	}

	leash := usecases.ListTrails(trails, usecases.TrailFilter{Access: domain.DogAccessLeashRequired})
	if len(leash) != 1 || leash[0].ID != "2" {
		t.Errorf("access filter: got %+v", leash)
	}

	none := usecases.ListTrails(trails, usecases.TrailFilter{Access: domain.DogAccessNoDogs, Name: "sanitas"})
	if len(none) != 0 {
		t.Errorf("combined filter: got %+v", none)
	}
}

func TestParseDogAccess(t *testing.T) {
	tests := []struct {
		in   string
		want domain.DogAccess
		ok   bool
	}{
		{"off_leash", domain.DogAccessOffLeash, true},
		{"Leash Required", domain.DogAccessLeashRequired, true},
		{"NO_DOGS", domain.DogAccessNoDogs, true},
		{"cats", domain.DogAccessUnclassified, false},
		{"", domain.DogAccessUnclassified, false},
	}
	for _, tc := range tests {
		got, ok := usecases.ParseDogAccess(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseDogAccess(%q) = %q, %v; want %q, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}
