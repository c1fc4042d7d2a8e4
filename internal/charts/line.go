package charts

import (
	grob "github.com/MetalBlueberry/go-plotly/graph_objects"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

const mileageColor = "#6BA368"

// BuildMileageLine plots trail counts against mileage bucket midpoints.
func BuildMileageLine(buckets []domain.MileageBucket, title string) Figure {
	x := make([]float64, 0, len(buckets))
	y := make([]int, 0, len(buckets))
	for _, b := range buckets {
		x = append(x, b.Midpoint)
		y = append(y, b.Count)
	}
	return Figure{
		Data: grob.Traces{
			&grob.Scatter{
				Type:   grob.TraceTypeScatter,
				Mode:   grob.ScatterMode("lines+markers"),
				Name:   "Trail Count",
				X:      x,
				Y:      y,
				Marker: &grob.ScatterMarker{Size: 6, Color: mileageColor},
				Line:   &grob.ScatterLine{Color: mileageColor, Shape: grob.ScatterLineShape("spline")},
			},
		},
		Layout: &grob.Layout{
			Title: &grob.LayoutTitle{Text: title, X: 0.5, Font: &grob.LayoutTitleFont{Size: 22}},
			Xaxis: &grob.LayoutXaxis{
				Title:    &grob.LayoutXaxisTitle{Text: "Trail Mileage (mi)"},
				Tickfont: &grob.LayoutXaxisTickfont{Size: 14},
			},
			Yaxis: &grob.LayoutYaxis{
				Title:    &grob.LayoutYaxisTitle{Text: "Number of Trails"},
				Tickfont: &grob.LayoutYaxisTickfont{Size: 14},
			},
		},
	}
}
