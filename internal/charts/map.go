package charts

import (
	"fmt"

	grob "github.com/MetalBlueberry/go-plotly/graph_objects"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

// MapLayer is the set of trail points shown by one togglable map trace.
type MapLayer struct {
	Access     domain.DogAccess
	Difficulty string
	Points     []domain.Trail
}

// Name is the legend and button label of the layer.
func (l MapLayer) Name() string {
	return fmt.Sprintf("%s · %s", l.Access.Label(), l.Difficulty)
}

// MapOptions configures the dog-access map. A zero Center fits the view to
// the plotted trail points.
type MapOptions struct {
	Title      string
	Center     domain.GeoPoint
	Zoom       float64
	MarkerSize int
}

var (
	// Short labels for the per-category buttons.
	categoryButtonLabels = map[domain.DogAccess]string{
		domain.DogAccessOffLeash:      "Off-Leash",
		domain.DogAccessLeashRequired: "Leash Required",
		domain.DogAccessNoDogs:        "No Dogs",
	}
	categoryTitles = map[domain.DogAccess]string{
		domain.DogAccessOffLeash:      "Off-Leash Trails",
		domain.DogAccessLeashRequired: "Leash Required Trails",
		domain.DogAccessNoDogs:        "No Dogs Allowed Trails",
	}
	amenityColors = map[domain.AmenityKind]string{
		domain.AmenityPark:         "#2e7d32",
		domain.AmenityDogBusiness:  "#6a1b9a",
		domain.AmenityVeterinarian: "#1565c0",
	}
)

// BuildDogAccessMap builds the interactive map. Trail layers come first, in
// the given order, followed by the trail network (when shapes are present)
// and one trace per amenity kind. Only the first trail layer starts visible;
// the menus switch trail layers while the network and amenity traces stay on.
func BuildDogAccessMap(layers []MapLayer, amenities []domain.Amenity, shapes []domain.TrailShape, opts MapOptions) Figure {
	size := opts.MarkerSize
	if size <= 0 {
		size = 8
	}

	var traces grob.Traces
	for i, l := range layers {
		lat, lon, text := trailCoords(l.Points)
		traces = append(traces, &grob.Scattermapbox{
			Type:    grob.TraceTypeScattermapbox,
			Mode:    grob.ScattermapboxMode("markers"),
			Name:    l.Name(),
			Lat:     lat,
			Lon:     lon,
			Text:    text,
			Marker:  &grob.ScattermapboxMarker{Size: float64(size), Color: l.Access.Color()},
			Visible: grob.ScattermapboxVisible(i == 0),
		})
	}

	if len(shapes) > 0 {
		traces = append(traces, networkTrace(shapes))
	}

	byKind := make(map[domain.AmenityKind][]domain.Amenity)
	for _, a := range amenities {
		byKind[a.Kind] = append(byKind[a.Kind], a)
	}
	for _, k := range domain.AmenityKinds {
		venues := byKind[k]
		if len(venues) == 0 {
			continue
		}
		lat := make(coords, 0, len(venues))
		lon := make(coords, 0, len(venues))
		text := make([]string, 0, len(venues))
		for _, v := range venues {
			lat = append(lat, v.Location.Lat)
			lon = append(lon, v.Location.Lon)
			text = append(text, v.Name)
		}
		traces = append(traces, &grob.Scattermapbox{
			Type:   grob.TraceTypeScattermapbox,
			Mode:   grob.ScattermapboxMode("markers"),
			Name:   k.Label(),
			Lat:    lat,
			Lon:    lon,
			Text:   text,
			Marker: &grob.ScattermapboxMarker{Size: float64(size + 2), Color: amenityColors[k]},
		})
	}

	center := opts.Center
	if center == (domain.GeoPoint{}) {
		center, _ = FitCenter(layers)
	}
	layout := &grob.Layout{
		Title: &grob.LayoutTitle{Text: opts.Title},
		Mapbox: &grob.LayoutMapbox{
			Style:  "open-street-map",
			Center: &grob.LayoutMapboxCenter{Lat: center.Lat, Lon: center.Lon},
			Zoom:   opts.Zoom,
		},
		// go-plotly omits zero margins, so 1px is the tightest edge that encodes.
		Margin: &grob.LayoutMargin{R: 1, T: 40, L: 1, B: 1},
	}
	if len(layers) > 0 {
		layout.Updatemenus = mapMenus(layers, len(traces))
	}
	return Figure{Data: traces, Layout: layout}
}

// FitCenter is the middle of the box spanning every trail point. ok is
// false when no layer has a point.
func FitCenter(layers []MapLayer) (center domain.GeoPoint, ok bool) {
	var b domain.Bounds
	for _, l := range layers {
		for _, p := range l.Points {
			if !ok {
				b, ok = domain.PointBounds(*p.Location), true
				continue
			}
			b = b.Extend(*p.Location)
		}
	}
	if !ok {
		return domain.GeoPoint{}, false
	}
	return b.Center(), true
}

func trailCoords(points []domain.Trail) (lat, lon coords, text []string) {
	lat = make(coords, 0, len(points))
	lon = make(coords, 0, len(points))
	text = make([]string, 0, len(points))
	for _, p := range points {
		lat = append(lat, p.Location.Lat)
		lon = append(lon, p.Location.Lon)
		text = append(text, p.Name)
	}
	return lat, lon, text
}

// networkTrace joins every shape part into one line trace, separating parts
// with null gaps.
func networkTrace(shapes []domain.TrailShape) *grob.Scattermapbox {
	var (
		lat, lon coords
		text     []string
	)
	for _, s := range shapes {
		for _, part := range s.Parts {
			if len(part) == 0 {
				continue
			}
			if len(lat) > 0 {
				lat = append(lat, nil)
				lon = append(lon, nil)
				text = append(text, "")
			}
			for _, p := range part {
				lat = append(lat, p.Lat)
				lon = append(lon, p.Lon)
				text = append(text, s.Name)
			}
		}
	}
	return &grob.Scattermapbox{
		Type: grob.TraceTypeScattermapbox,
		Mode: grob.ScattermapboxMode("lines"),
		Name: "Trail Network",
		Lat:  lat,
		Lon:  lon,
		Text: text,
		Line: &grob.ScattermapboxLine{Color: "#8d6e63", Width: 2},
	}
}

// Visibility returns the visible array for a menu button: trail layer i is
// shown when show(i) is true and every trace after the trail layers is shown.
func Visibility(layers, traces int, show func(i int) bool) []bool {
	v := make([]bool, traces)
	for i := range v {
		if i < layers {
			v[i] = show(i)
		} else {
			v[i] = true
		}
	}
	return v
}

func mapMenus(layers []MapLayer, traces int) []UpdateMenu {
	update := func(label, title string, show func(i int) bool) Button {
		return Button{
			Label:  label,
			Method: "update",
			Args: []any{
				map[string]any{"visible": Visibility(len(layers), traces, show)},
				map[string]any{"title.text": title},
			},
		}
	}

	var perLayer []Button
	for i, l := range layers {
		idx := i
		title := fmt.Sprintf("%s (%s)", categoryTitles[l.Access], l.Difficulty)
		perLayer = append(perLayer, update(l.Name(), title, func(j int) bool { return j == idx }))
	}

	var perCategory []Button
	for _, a := range domain.DogAccessOrder {
		access := a
		present := false
		for _, l := range layers {
			if l.Access == access {
				present = true
				break
			}
		}
		if !present {
			continue
		}
		perCategory = append(perCategory, update(categoryButtonLabels[access], categoryTitles[access],
			func(j int) bool { return layers[j].Access == access }))
	}
	perCategory = append(perCategory, update("Show All", "All Trails", func(int) bool { return true }))

	return []UpdateMenu{
		{Buttons: perLayer, Direction: "down", ShowActive: true, X: 0.1, XAnchor: "left", Y: 0.95, YAnchor: "top"},
		{Buttons: perCategory, Direction: "down", ShowActive: true, X: 0.4, XAnchor: "left", Y: 0.95, YAnchor: "top"},
	}
}
