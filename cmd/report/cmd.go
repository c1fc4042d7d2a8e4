package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/samirrijal/trailboard/internal/core/usecases"
	"github.com/samirrijal/trailboard/internal/pkg/config"
	"github.com/samirrijal/trailboard/internal/pkg/logging"
	"github.com/samirrijal/trailboard/internal/view"
	"github.com/samirrijal/trailboard/internal/wiring"
)

var (
	dataDir      string
	mileageChart bool
	timeout      time.Duration
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "report",
		Short:        "Render the trail dashboard without a server",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&dataDir, "data", "", "directory holding the CSV datasets (overrides data.dir)")
	root.PersistentFlags().BoolVar(&mileageChart, "mileage-chart", false, "include the mileage distribution chart")
	root.PersistentFlags().DurationVar(&timeout, "timeout", time.Minute, "maximum time to load and render")

	root.AddCommand(newRenderCmd(), newSummaryCmd())
	return root
}

func newRenderCmd() *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "render",
		Short: "Write the dashboard HTML page to a file",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			svc, closeFn, err := dashboard(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			var buf bytes.Buffer
			if err := renderPage(ctx, &buf, cfg, svc); err != nil {
				return err
			}
			if out == "-" {
				_, err := cmd.OutOrStdout().Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("write %s: %w", out, err)
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "wrote %s (%d bytes)\n", out, buf.Len())
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "index.html", `output file, "-" for stdout`)
	return cmd
}

func newSummaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Print the dashboard aggregates as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			svc, closeFn, err := dashboard(ctx, cfg)
			if err != nil {
				return err
			}
			defer closeFn()

			sum, err := svc.Summary(ctx)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sum)
		},
	}
}

// loadConfig reads the shared configuration and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load("trailboard-report")
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Log.Level, "text")

	if dataDir != "" {
		cfg.Data.Dir = dataDir
	}
	if cmd.Flags().Changed("mileage-chart") {
		cfg.Dashboard.MileageChart = mileageChart
	}
	return cfg, nil
}

func dashboard(ctx context.Context, cfg *config.Config) (*usecases.DashboardService, func(), error) {
	source, closeFn, err := wiring.OpenSource(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	// No cache: a one-shot render has nothing to reuse.
	return wiring.NewDashboard(cfg, source, nil), closeFn, nil
}

func renderPage(ctx context.Context, w io.Writer, cfg *config.Config, svc *usecases.DashboardService) error {
	d, err := svc.Render(ctx)
	if err != nil {
		return err
	}
	page, err := view.NewPage(cfg.Dashboard.Title, cfg.Dashboard.CirclePackTitle, d)
	if err != nil {
		return err
	}
	r, err := view.NewRenderer()
	if err != nil {
		return err
	}
	return r.Render(w, page)
}
