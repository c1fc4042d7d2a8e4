package http

import (
	"bytes"
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/trailboard/internal/core/usecases"
	"github.com/samirrijal/trailboard/internal/view"
)

// failJSON logs err and answers with a structured 500. Deadline errors are
// passed up so the timeout middleware can answer 408.
func failJSON(c *fiber.Ctx, err error, msg string) error {
	LoggerFromCtx(c.UserContext()).Error(msg, "error", err)
	if errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return errInternal(c, msg)
}

// DashboardHandler renders the full HTML dashboard.
func DashboardHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx := c.UserContext()
		log := LoggerFromCtx(ctx)

		d, err := deps.Dashboard.Render(ctx)
		if err != nil {
			log.Error("dashboard render failed", "error", err)
			if errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return errPage(c)
		}

		page, err := view.NewPage(deps.Page.Title, deps.Page.CirclePackTitle, d)
		if err != nil {
			log.Error("dashboard page build failed", "error", err)
			return errPage(c)
		}

		var buf bytes.Buffer
		if err := deps.Renderer.Render(&buf, page); err != nil {
			log.Error("dashboard template failed", "error", err)
			return errPage(c)
		}

		// Rebuilt from the files on every request.
		c.Set(fiber.HeaderCacheControl, "no-store")
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
}

// SummaryHandler returns the dashboard aggregates as JSON.
func SummaryHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		sum, err := deps.Dashboard.Summary(c.UserContext())
		if err != nil {
			return failJSON(c, err, "failed to load trail data")
		}
		return c.JSON(sum)
	}
}

// ActivityImageHandler returns the activity circle-packing PNG.
func ActivityImageHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		png, err := deps.Dashboard.ActivityImage(c.UserContext())
		if err != nil {
			return failJSON(c, err, "failed to render activity chart")
		}
		if len(png) == 0 {
			return errNotFound(c, "no trail allows any tracked activity")
		}
		c.Type("png")
		return c.Send(png)
	}
}

// ListTrailsHandler returns classified trails, filtered by ?access= and ?q=.
func ListTrailsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var f usecases.TrailFilter
		if raw := c.Query("access"); raw != "" {
			access, ok := usecases.ParseDogAccess(raw)
			if !ok {
				return errBadRequest(c, "access must be one of off_leash, leash_required, no_dogs")
			}
			f.Access = access
		}
		f.Name = c.Query("q")
		if len(f.Name) > 200 {
			return errBadRequest(c, "query too long (max 200 characters)")
		}

		trails, err := deps.Dashboard.Trails(c.UserContext(), f)
		if err != nil {
			return failJSON(c, err, "failed to load trail data")
		}

		offset, limit := pageParams(c)
		offset = clampOffset(offset, len(trails))
		start, end := page(len(trails), offset, limit)

		pg := Pagination{Offset: offset, Limit: limit, Total: len(trails)}
		SetLinkHeaders(c, pg)
		return c.JSON(PaginatedResponse{Data: trails[start:end], Pagination: pg})
	}
}
