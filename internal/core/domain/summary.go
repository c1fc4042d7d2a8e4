package domain

// CategoryCount is the number of trails in one dog-access category.
type CategoryCount struct {
	Access DogAccess `json:"access"`
	Label  string    `json:"label"`
	Count  int       `json:"count"`
}

// MileageBucket is one quantile bucket of the mileage distribution.
type MileageBucket struct {
	Lower    float64 `json:"lower"`
	Upper    float64 `json:"upper"`
	Midpoint float64 `json:"midpoint"`
	Count    int     `json:"count"`
}

// ActivityTotal is the number of trails allowing an activity.
type ActivityTotal struct {
	Activity Activity `json:"activity"`
	Label    string   `json:"label"`
	Count    int      `json:"count"`
}

// Summary holds the chart-ready aggregates of a dataset.
type Summary struct {
	DogAccess  []CategoryCount `json:"dog_access"`
	Mileage    []MileageBucket `json:"mileage"`
	Activities []ActivityTotal `json:"activities"`
	Trails     int             `json:"trails"`
	Points     int             `json:"points"`
	Amenities  int             `json:"amenities"`
}

// TrailListing is one trail row with its classified dog access.
type TrailListing struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Access      DogAccess `json:"access,omitempty"`
	AccessLabel string    `json:"access_label"`
	Mileage     *float64  `json:"mileage,omitempty"`
	Difficulty  string    `json:"difficulty,omitempty"`
}
