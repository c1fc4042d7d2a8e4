package http

import (
	"context"
	"time"

	"github.com/samirrijal/trailboard/internal/core/usecases"
	"github.com/samirrijal/trailboard/internal/view"
)

// Pinger is a backing service the readiness check can probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PageOptions are the page-level labels of the dashboard.
type PageOptions struct {
	Title           string
	CirclePackTitle string
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Dashboard *usecases.DashboardService
	Renderer  *view.Renderer
	Page      PageOptions
	Cache     Pinger // nil when caching is disabled

	// RequestTimeout bounds one dashboard pipeline run.
	RequestTimeout time.Duration
	// RateLimit is requests per minute per IP. 0 disables the limiter.
	RateLimit int
	Version   string
}
