// Package charts builds plotly.js figure documents and the circle-packing
// raster for the dashboard.
package charts

import (
	grob "github.com/MetalBlueberry/go-plotly/graph_objects"
)

// Figure is a plotly figure: traces plus layout.
type Figure = grob.Fig

// Button is an updatemenu entry. Args holds the trace update followed by
// the layout update.
type Button struct {
	Label  string `json:"label"`
	Method string `json:"method"`
	Args   []any  `json:"args"`
}

// UpdateMenu is one dropdown of layout.updatemenus, which go-plotly leaves
// untyped.
type UpdateMenu struct {
	Buttons    []Button `json:"buttons"`
	Direction  string   `json:"direction,omitempty"`
	ShowActive bool     `json:"showactive"`
	X          float64  `json:"x"`
	XAnchor    string   `json:"xanchor,omitempty"`
	Y          float64  `json:"y"`
	YAnchor    string   `json:"yanchor,omitempty"`
}

// coords holds a lat or lon column. nil entries encode as JSON null, which
// plotly draws as a gap between line segments.
type coords []any
