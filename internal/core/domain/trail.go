package domain

// DogAccess is the dog-policy category derived from a trail's free-text
// regulation description. The zero value means the text did not classify.
type DogAccess string

const (
	DogAccessUnclassified  DogAccess = ""
	DogAccessNoDogs        DogAccess = "no_dogs"
	DogAccessLeashRequired DogAccess = "leash_required"
	DogAccessOffLeash      DogAccess = "off_leash"
)

// DogAccessOrder is the display order used by every chart.
var DogAccessOrder = []DogAccess{DogAccessOffLeash, DogAccessLeashRequired, DogAccessNoDogs}

// Label returns the human-readable category name.
func (d DogAccess) Label() string {
	switch d {
	case DogAccessOffLeash:
		return "Off-Leash Allowed"
	case DogAccessLeashRequired:
		return "Leash Required"
	case DogAccessNoDogs:
		return "No Dogs"
	}
	return "Unclassified"
}

// Color returns the fixed plot color for the category.
func (d DogAccess) Color() string {
	switch d {
	case DogAccessOffLeash:
		return "green"
	case DogAccessLeashRequired:
		return "orange"
	case DogAccessNoDogs:
		return "red"
	}
	return "gray"
}

// Activity is an allowed-use flag carried by each trail row.
type Activity string

const (
	ActivityBicycles Activity = "bicycles"
	ActivityHorses   Activity = "horses"
	ActivityDogs     Activity = "dogs"
	ActivityEBikes   Activity = "ebikes"
)

// Activities lists every tracked activity in display order.
var Activities = []Activity{ActivityBicycles, ActivityHorses, ActivityDogs, ActivityEBikes}

// Label returns the human-readable activity name.
func (a Activity) Label() string {
	switch a {
	case ActivityBicycles:
		return "Bicycles"
	case ActivityHorses:
		return "Horses"
	case ActivityDogs:
		return "Dogs"
	case ActivityEBikes:
		return "E-Bikes"
	}
	return string(a)
}

// Trail is one row of trail data.
type Trail struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Location   *GeoPoint           `json:"location,omitempty"`
	Mileage    *float64            `json:"mileage,omitempty"`
	Difficulty string              `json:"difficulty,omitempty"`
	DogPolicy  string              `json:"dog_policy,omitempty"` // raw regulation text, "" when absent
	Uses       map[Activity]string `json:"uses,omitempty"`       // raw yes/no flag text
}

// AmenityKind identifies the amenity dataset a venue came from.
type AmenityKind string

const (
	AmenityPark         AmenityKind = "park"
	AmenityDogBusiness  AmenityKind = "dog_business"
	AmenityVeterinarian AmenityKind = "veterinarian"
)

// AmenityKinds lists every amenity kind in display order.
var AmenityKinds = []AmenityKind{AmenityPark, AmenityDogBusiness, AmenityVeterinarian}

// Label returns the map legend name for the kind.
func (k AmenityKind) Label() string {
	switch k {
	case AmenityPark:
		return "Parks"
	case AmenityDogBusiness:
		return "Dog-Friendly Businesses"
	case AmenityVeterinarian:
		return "Veterinarians"
	}
	return string(k)
}

// Amenity is a venue near the trail network.
type Amenity struct {
	Kind     AmenityKind `json:"kind"`
	Name     string      `json:"name"`
	Location GeoPoint    `json:"location"`
}

// Dataset is the snapshot loaded for a single render.
type Dataset struct {
	Trails    []Trail // one row per trail
	Points    []Trail // geo-located rows for the map
	Amenities []Amenity
	Shapes    []TrailShape
}
