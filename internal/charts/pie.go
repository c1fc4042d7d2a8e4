package charts

import (
	grob "github.com/MetalBlueberry/go-plotly/graph_objects"

	"github.com/samirrijal/trailboard/internal/core/domain"
)

// BuildDogAccessPie builds the dog-policy share chart with a fixed color per
// category.
func BuildDogAccessPie(counts []domain.CategoryCount, title string) Figure {
	labels := make([]string, 0, len(counts))
	values := make([]int, 0, len(counts))
	colors := make([]string, 0, len(counts))
	for _, c := range counts {
		labels = append(labels, c.Label)
		values = append(values, c.Count)
		colors = append(colors, c.Access.Color())
	}
	return Figure{
		Data: grob.Traces{
			&grob.Pie{
				Type:     grob.TraceTypePie,
				Labels:   labels,
				Values:   values,
				Textinfo: grob.PieTextinfo("label+percent"),
				Sort:     grob.False,
				Marker:   &grob.PieMarker{Colors: colors},
			},
		},
		Layout: &grob.Layout{
			Title: &grob.LayoutTitle{Text: title},
		},
	}
}
