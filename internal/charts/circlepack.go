package charts

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/fogleman/gg"

	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/pkg/packing"
)

// CirclePackOptions configures the activity circle-packing raster.
type CirclePackOptions struct {
	Size    int // square image edge in pixels
	Title   string
	Palette []string
}

// DefaultPalette is used when CirclePackOptions.Palette is empty.
var DefaultPalette = []string{"#66c2a5", "#fc8d62", "#8da0cb", "#e78ac3", "#a6d854"}

// RenderCirclePack draws one circle per activity, area proportional to its
// count, and returns the PNG encoding. An empty totals slice yields no image.
func RenderCirclePack(totals []domain.ActivityTotal, opts CirclePackOptions) ([]byte, error) {
	if len(totals) == 0 {
		return nil, nil
	}
	values := make([]float64, len(totals))
	for i, t := range totals {
		values[i] = float64(t.Count)
	}
	circles, err := packing.Pack(values)
	if err != nil {
		return nil, fmt.Errorf("pack activities: %w", err)
	}

	size := opts.Size
	if size <= 0 {
		size = 480
	}
	palette := opts.Palette
	if len(palette) == 0 {
		palette = DefaultPalette
	}

	top := 0.0
	if opts.Title != "" {
		top = 32
	}
	const margin = 8.0
	plot := float64(size) - top - 2*margin
	scale := plot / 2
	cx := float64(size) / 2
	cy := top + margin + plot/2

	dc := gg.NewContext(size, size)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	if opts.Title != "" {
		dc.SetRGB(0.15, 0.15, 0.15)
		dc.DrawStringAnchored(opts.Title, cx, top/2+margin/2, 0.5, 0.5)
	}

	for i, c := range circles {
		// Image y grows downward.
		x, y, r := cx+c.X*scale, cy-c.Y*scale, c.R*scale

		dc.DrawCircle(x, y, r)
		dc.SetHexColor(palette[i%len(palette)])
		dc.FillPreserve()
		dc.SetRGB(1, 1, 1)
		dc.SetLineWidth(2)
		dc.Stroke()

		dc.SetRGB(0.1, 0.1, 0.1)
		_, lh := dc.MeasureString("M")
		dc.DrawStringAnchored(totals[c.Index].Label, x, y-lh*0.75, 0.5, 0.5)
		dc.DrawStringAnchored(strconv.Itoa(totals[c.Index].Count), x, y+lh*0.75, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
