package config_test

import (
	"strings"
	"testing"

	"github.com/samirrijal/trailboard/internal/pkg/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load("trailboard-test")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("server.port = %d, want 8080", cfg.Server.Port)
	}
	if cfg.Source.Kind != config.SourceCSV {
		t.Errorf("source.kind = %q, want csv", cfg.Source.Kind)
	}
	if cfg.Columns.Trails.DogPolicy != "OSMPTrailsOSMPDOGREGDESC" {
		t.Errorf("columns.trails.dog_policy = %q", cfg.Columns.Trails.DogPolicy)
	}
	if cfg.Columns.Points.DogPolicy != "DOGREGDESC" {
		t.Errorf("columns.points.dog_policy = %q", cfg.Columns.Points.DogPolicy)
	}
	if cfg.Map.CenterLat != 40.02 || cfg.Map.CenterLon != -105.27 || cfg.Map.Zoom != 13 {
		t.Errorf("map = %+v, want 40.02,-105.27 zoom 13", cfg.Map)
	}
	if cfg.Dashboard.MileageChart {
		t.Error("dashboard.mileage_chart should default to false")
	}
	if cfg.Telemetry.ServiceName != "trailboard-test" {
		t.Errorf("telemetry.service_name = %q", cfg.Telemetry.ServiceName)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRAILBOARD_DATA_DIR", "/srv/osmp")
	t.Setenv("TRAILBOARD_DASHBOARD_MILEAGE_CHART", "true")

	cfg, err := config.Load("trailboard")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Data.Dir != "/srv/osmp" {
		t.Errorf("data.dir = %q, want /srv/osmp", cfg.Data.Dir)
	}
	if !cfg.Dashboard.MileageChart {
		t.Error("dashboard.mileage_chart should be true from env")
	}
}

func TestLoad_InvalidSourceKind(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRAILBOARD_SOURCE_KIND", "excel")

	_, err := config.Load("trailboard")
	if err == nil {
		t.Fatal("expected error for unknown source kind")
	}
	if !strings.Contains(err.Error(), "source.kind") {
		t.Errorf("error %q does not mention source.kind", err)
	}
}

func validConfig() config.Config {
	return config.Config{
		Server: config.ServerConfig{Port: 8080, ReadTimeout: 10, WriteTimeout: 10, RequestTimeout: 15},
		Source: config.SourceConfig{Kind: config.SourceCSV},
		Data:   config.DataConfig{Trails: "Trails.csv", TrailPoints: "merged_trails.csv"},
		Columns: config.ColumnsConfig{
			Trails:    config.TrailColumns{ID: "id", DogPolicy: "dog", Mileage: "mi"},
			Points:    config.PointColumns{DogPolicy: "dog", Latitude: "lat", Longitude: "lon"},
			Amenities: config.AmenityColumns{Latitude: "lat", Longitude: "lon"},
		},
		Map: config.MapConfig{CenterLat: 40.02, CenterLon: -105.27, Zoom: 13},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*config.Config)
		wantErr string
	}{
		{"valid", func(*config.Config) {}, ""},
		{"bad port", func(c *config.Config) { c.Server.Port = 70000 }, "server.port"},
		{"missing trails file", func(c *config.Config) { c.Data.Trails = "" }, "data.trails"},
		{"missing column", func(c *config.Config) { c.Columns.Points.Latitude = "" }, "columns.points.latitude"},
		{"postgres needs database", func(c *config.Config) { c.Source.Kind = config.SourcePostgres }, "database.host"},
		{"bad latitude", func(c *config.Config) { c.Map.CenterLat = 123 }, "map.center_lat"},
		{"valkey without addr", func(c *config.Config) { c.Valkey.Enabled = true }, "valkey.addr"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("Validate() = %v, want error mentioning %q", err, tc.wantErr)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 0
	cfg.Data.TrailPoints = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	for _, want := range []string{"server.port", "data.trail_points"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %q", err, want)
		}
	}
}
