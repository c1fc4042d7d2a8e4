package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/samirrijal/trailboard/internal/adapters/postgres"
	"github.com/samirrijal/trailboard/internal/pkg/config"
	"github.com/samirrijal/trailboard/internal/pkg/logging"
)

var upFiles = []string{
	"migrations/001_trails.sql",
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: migrate <up|down>")
		os.Exit(2)
	}
	_ = godotenv.Load(".env")

	cfg, err := config.Load("trailboard-migrate")
	if err != nil {
		slog.Error("config", "error", err)
		os.Exit(1)
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	ctx := context.Background()
	db, err := postgres.New(ctx, cfg.Database.DSN())
	if err != nil {
		slog.Error("db", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	var files []string
	switch os.Args[1] {
	case "up":
		files = upFiles
	case "down":
		files = downFiles(upFiles)
	default:
		slog.Error("unknown command", "command", os.Args[1])
		os.Exit(2)
	}

	if err := apply(ctx, db, files); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
	slog.Info("migrations applied", "direction", os.Args[1], "files", len(files))
}

// downFiles maps each up migration to its .down.sql twin, newest first.
func downFiles(up []string) []string {
	out := make([]string, 0, len(up))
	for i := len(up) - 1; i >= 0; i-- {
		ext := filepath.Ext(up[i])
		out = append(out, up[i][:len(up[i])-len(ext)]+".down"+ext)
	}
	return out
}

func apply(ctx context.Context, db *postgres.DB, files []string) error {
	for _, f := range files {
		data, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", f, err)
		}
		if _, err := db.Pool.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", f, err)
		}
		slog.Info("applied", "file", f)
	}
	return nil
}
