// Package view renders the dashboard HTML page.
package view

import (
	"embed"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/samirrijal/trailboard/internal/charts"
	"github.com/samirrijal/trailboard/internal/core/domain"
	"github.com/samirrijal/trailboard/internal/core/usecases"
)

//go:embed templates/*.html
var templates embed.FS

// PlotlyJS is the client-side charting bundle loaded by the page.
const PlotlyJS = "https://cdn.plot.ly/plotly-2.35.2.min.js"

// Page is the data bound to templates/index.html. Plot fields hold
// serialized figure JSON; empty slots are left out of the page.
type Page struct {
	Title           string
	PlotlyJS        string
	MapPlot         template.JS
	PiePlot         template.JS
	LinePlot        template.JS
	CirclePackPNG   template.URL
	CirclePackTitle string
	Summary         *domain.Summary
	GeneratedAt     time.Time
}

// NewPage serializes a rendered dashboard into template slots.
func NewPage(title, circlePackTitle string, d *usecases.Dashboard) (Page, error) {
	p := Page{
		Title:           title,
		PlotlyJS:        PlotlyJS,
		CirclePackTitle: circlePackTitle,
		Summary:         d.Summary,
		GeneratedAt:     d.GeneratedAt,
	}

	var err error
	if p.MapPlot, err = figureJS(d.Map); err != nil {
		return Page{}, fmt.Errorf("map figure: %w", err)
	}
	if p.PiePlot, err = figureJS(d.Pie); err != nil {
		return Page{}, fmt.Errorf("pie figure: %w", err)
	}
	if d.Line != nil {
		if p.LinePlot, err = figureJS(*d.Line); err != nil {
			return Page{}, fmt.Errorf("line figure: %w", err)
		}
	}
	if len(d.CirclePackPNG) > 0 {
		p.CirclePackPNG = template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(d.CirclePackPNG))
	}
	return p, nil
}

func figureJS(f charts.Figure) (template.JS, error) {
	b, err := json.Marshal(f)
	if err != nil {
		return "", err
	}
	return template.JS(b), nil
}

// Renderer executes the parsed page template.
type Renderer struct {
	tmpl *template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("index.html").Funcs(template.FuncMap{
		"stamp": func(t time.Time) string { return t.Format("2006-01-02 15:04:05 MST") },
	}).ParseFS(templates, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render writes the page to w.
func (r *Renderer) Render(w io.Writer, p Page) error {
	return r.tmpl.ExecuteTemplate(w, "index.html", p)
}
