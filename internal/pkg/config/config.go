package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Log       LogConfig       `mapstructure:"log"`
	Source    SourceConfig    `mapstructure:"source"`
	Data      DataConfig      `mapstructure:"data"`
	Columns   ColumnsConfig   `mapstructure:"columns"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Map       MapConfig       `mapstructure:"map"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Valkey    ValkeyConfig    `mapstructure:"valkey"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	ReadTimeout    int `mapstructure:"read_timeout"`
	WriteTimeout   int `mapstructure:"write_timeout"`
	RequestTimeout int `mapstructure:"request_timeout"`
	RateLimit      int `mapstructure:"rate_limit"` // requests per minute per IP, 0 disables
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Source kinds.
const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

type SourceConfig struct {
	Kind string `mapstructure:"kind"`
}

// DataConfig names the input files. Relative paths resolve against Dir.
// Empty optional entries disable that dataset.
type DataConfig struct {
	Dir           string `mapstructure:"dir"`
	Trails        string `mapstructure:"trails"`
	TrailPoints   string `mapstructure:"trail_points"`
	Parks         string `mapstructure:"parks"`
	DogBusinesses string `mapstructure:"dog_businesses"`
	Veterinarians string `mapstructure:"veterinarians"`
	TrailShapes   string `mapstructure:"trail_shapes"`
}

// TrailColumns maps trail fields to CSV header names.
type TrailColumns struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	DogPolicy  string `mapstructure:"dog_policy"`
	Mileage    string `mapstructure:"mileage"`
	Difficulty string `mapstructure:"difficulty"`
	Bicycles   string `mapstructure:"bicycles"`
	Horses     string `mapstructure:"horses"`
	Dogs       string `mapstructure:"dogs"`
	EBikes     string `mapstructure:"ebikes"`
}

type PointColumns struct {
	ID         string `mapstructure:"id"`
	Name       string `mapstructure:"name"`
	DogPolicy  string `mapstructure:"dog_policy"`
	Difficulty string `mapstructure:"difficulty"`
	Latitude   string `mapstructure:"latitude"`
	Longitude  string `mapstructure:"longitude"`
}

type AmenityColumns struct {
	Name      string `mapstructure:"name"`
	Latitude  string `mapstructure:"latitude"`
	Longitude string `mapstructure:"longitude"`
}

type ShapeColumns struct {
	Name string `mapstructure:"name"`
}

type ColumnsConfig struct {
	Trails    TrailColumns   `mapstructure:"trails"`
	Points    PointColumns   `mapstructure:"points"`
	Amenities AmenityColumns `mapstructure:"amenities"`
	Shapes    ShapeColumns   `mapstructure:"shapes"`
}

type DashboardConfig struct {
	Title           string `mapstructure:"title"`
	PieTitle        string `mapstructure:"pie_title"`
	MileageTitle    string `mapstructure:"mileage_title"`
	MileageChart    bool   `mapstructure:"mileage_chart"`
	CirclePackTitle string `mapstructure:"circle_pack_title"`
	CirclePackSize  int    `mapstructure:"circle_pack_size"`
}

type MapConfig struct {
	Title      string  `mapstructure:"title"`
	CenterLat  float64 `mapstructure:"center_lat"`
	CenterLon  float64 `mapstructure:"center_lon"`
	Zoom       float64 `mapstructure:"zoom"`
	MarkerSize int     `mapstructure:"marker_size"`
	// AmenityRadius drops amenities farther than this many meters from the
	// map center. 0 keeps all of them.
	AmenityRadius float64 `mapstructure:"amenity_radius"`
}

type DatabaseConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

type ValkeyConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
	TTL     int    `mapstructure:"ttl"` // seconds
}

type TelemetryConfig struct {
	ServiceName string `mapstructure:"service_name"`
	TempoAddr   string `mapstructure:"tempo_addr"`
	Enabled     bool   `mapstructure:"enabled"`
}

func setDefaults(v *viper.Viper, service string) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.request_timeout", 15)
	v.SetDefault("server.rate_limit", 120)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("source.kind", SourceCSV)

	v.SetDefault("data.dir", "data")
	v.SetDefault("data.trails", "Trails.csv")
	v.SetDefault("data.trail_points", "merged_trails.csv")
	v.SetDefault("data.parks", "parks.csv")
	v.SetDefault("data.dog_businesses", "dog_friendly_businesses.csv")
	v.SetDefault("data.veterinarians", "veterinarians.csv")
	v.SetDefault("data.trail_shapes", "")

	v.SetDefault("columns.trails.id", "OSMPTrailsOSMPTRAILID")
	v.SetDefault("columns.trails.name", "OSMPTrailsOSMPTRAILNAME")
	v.SetDefault("columns.trails.dog_policy", "OSMPTrailsOSMPDOGREGDESC")
	v.SetDefault("columns.trails.mileage", "MILEAGE")
	v.SetDefault("columns.trails.difficulty", "DIFFICULTY")
	v.SetDefault("columns.trails.bicycles", "OSMPTrailsOSMPBICYCLES")
	v.SetDefault("columns.trails.horses", "OSMPTrailsOSMPHORSES")
	v.SetDefault("columns.trails.dogs", "OSMPTrailsOSMPDOGS")
	v.SetDefault("columns.trails.ebikes", "OSMPTrailsOSMPEBIKES")
	v.SetDefault("columns.points.id", "OSMPTrailsOSMPTRAILID")
	v.SetDefault("columns.points.name", "OSMPTrailsOSMPTRAILNAME")
	v.SetDefault("columns.points.dog_policy", "DOGREGDESC")
	v.SetDefault("columns.points.difficulty", "DIFFICULTY")
	v.SetDefault("columns.points.latitude", "latitude")
	v.SetDefault("columns.points.longitude", "longitude")
	v.SetDefault("columns.amenities.name", "name")
	v.SetDefault("columns.amenities.latitude", "latitude")
	v.SetDefault("columns.amenities.longitude", "longitude")
	v.SetDefault("columns.shapes.name", "TRAILNAME")

	v.SetDefault("dashboard.title", "Boulder Dog-Friendly Trails")
	v.SetDefault("dashboard.pie_title", "Trails by Dog Access Policy")
	v.SetDefault("dashboard.mileage_title", "Trail Mileage Distribution")
	v.SetDefault("dashboard.mileage_chart", false)
	v.SetDefault("dashboard.circle_pack_title", "Allowed Activities")
	v.SetDefault("dashboard.circle_pack_size", 480)

	v.SetDefault("map.title", "Boulder Trails by Dog Access")
	v.SetDefault("map.center_lat", 40.02)
	v.SetDefault("map.center_lon", -105.27)
	v.SetDefault("map.zoom", 13)
	v.SetDefault("map.marker_size", 8)
	v.SetDefault("map.amenity_radius", 0)

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "trailboard")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "trailboard")
	v.SetDefault("database.sslmode", "disable")

	v.SetDefault("valkey.enabled", false)
	v.SetDefault("valkey.addr", "localhost:6379")
	v.SetDefault("valkey.ttl", 300)

	v.SetDefault("telemetry.service_name", service)
	v.SetDefault("telemetry.tempo_addr", "tempo:4317")
	v.SetDefault("telemetry.enabled", false)
}

// Load reads configuration from file and environment variables.
func Load(service string) (*Config, error) {
	v := viper.New()
	setDefaults(v, service)

	// Config file (optional)
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	_ = v.ReadInConfig() // OK if missing

	// Environment variables: TRAILBOARD_DATA_DIR → data.dir
	v.SetEnvPrefix("TRAILBOARD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks that required configuration fields are present and sane.
func (c *Config) Validate() error {
	var errs []string

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Sprintf("server.port must be 1-65535, got %d", c.Server.Port))
	}
	if c.Server.ReadTimeout <= 0 {
		errs = append(errs, "server.read_timeout must be positive")
	}
	if c.Server.WriteTimeout <= 0 {
		errs = append(errs, "server.write_timeout must be positive")
	}
	if c.Server.RequestTimeout <= 0 {
		errs = append(errs, "server.request_timeout must be positive")
	}
	if c.Server.RateLimit < 0 {
		errs = append(errs, "server.rate_limit must not be negative")
	}

	switch c.Source.Kind {
	case SourceCSV:
		if c.Data.Trails == "" {
			errs = append(errs, "data.trails is required")
		}
		if c.Data.TrailPoints == "" {
			errs = append(errs, "data.trail_points is required")
		}
	case SourcePostgres:
		if c.Database.Host == "" {
			errs = append(errs, "database.host is required")
		}
		if c.Database.Port <= 0 || c.Database.Port > 65535 {
			errs = append(errs, fmt.Sprintf("database.port must be 1-65535, got %d", c.Database.Port))
		}
		if c.Database.User == "" {
			errs = append(errs, "database.user is required")
		}
		if c.Database.DBName == "" {
			errs = append(errs, "database.dbname is required")
		}
	default:
		errs = append(errs, fmt.Sprintf("source.kind must be %q or %q, got %q", SourceCSV, SourcePostgres, c.Source.Kind))
	}

	for _, req := range []struct{ key, col string }{
		{"columns.trails.id", c.Columns.Trails.ID},
		{"columns.trails.dog_policy", c.Columns.Trails.DogPolicy},
		{"columns.trails.mileage", c.Columns.Trails.Mileage},
		{"columns.points.dog_policy", c.Columns.Points.DogPolicy},
		{"columns.points.latitude", c.Columns.Points.Latitude},
		{"columns.points.longitude", c.Columns.Points.Longitude},
		{"columns.amenities.latitude", c.Columns.Amenities.Latitude},
		{"columns.amenities.longitude", c.Columns.Amenities.Longitude},
	} {
		if req.col == "" {
			errs = append(errs, req.key+" is required")
		}
	}

	if c.Map.CenterLat < -90 || c.Map.CenterLat > 90 {
		errs = append(errs, fmt.Sprintf("map.center_lat must be -90..90, got %g", c.Map.CenterLat))
	}
	if c.Map.CenterLon < -180 || c.Map.CenterLon > 180 {
		errs = append(errs, fmt.Sprintf("map.center_lon must be -180..180, got %g", c.Map.CenterLon))
	}
	if c.Map.Zoom < 0 || c.Map.Zoom > 22 {
		errs = append(errs, fmt.Sprintf("map.zoom must be 0-22, got %g", c.Map.Zoom))
	}
	if c.Map.AmenityRadius < 0 {
		errs = append(errs, "map.amenity_radius must not be negative")
	}

	if c.Valkey.Enabled && c.Valkey.Addr == "" {
		errs = append(errs, "valkey.addr is required when valkey.enabled is set")
	}
	if c.Telemetry.Enabled && c.Telemetry.TempoAddr == "" {
		errs = append(errs, "telemetry.tempo_addr is required when telemetry.enabled is set")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
