// Package config loads the server configuration from an optional YAML file and the
// environment.
//
// Precedence, lowest first: built-in defaults, the file named by DENTALDESK_CONFIG,
// environment overrides. The result is validated before use.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mmynk/dentaldesk/internal/invoice"
	"github.com/mmynk/dentaldesk/internal/schedule"
	"github.com/mmynk/dentaldesk/internal/timegrid"
)

// PathEnv names the environment variable holding the config file path.
const PathEnv = "DENTALDESK_CONFIG"

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Storage   StorageConfig   `yaml:"storage"`
	Auth      AuthConfig      `yaml:"auth"`
	Grid      GridConfig      `yaml:"grid"`
	Billing   BillingConfig   `yaml:"billing"`
	Schedule  ScheduleConfig  `yaml:"schedule"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Logging   LoggingConfig   `yaml:"logging"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type StorageConfig struct {
	DBPath string `yaml:"db_path"`

	// SeedOnStart loads the demo catalog into an empty database.
	SeedOnStart bool `yaml:"seed_on_start"`

	// RedisAddr switches cart sessions to Redis when set.
	RedisAddr     string        `yaml:"redis_addr"`
	RedisPassword string        `yaml:"redis_password"`
	RedisDB       int           `yaml:"redis_db"`
	CartTTL       time.Duration `yaml:"cart_ttl"`
}

type AuthConfig struct {
	JWTSecret     string        `yaml:"jwt_secret"`
	TokenDuration time.Duration `yaml:"token_duration"`
	BcryptCost    int           `yaml:"bcrypt_cost"`
}

// GridConfig mirrors timegrid.Grid plus the rectangle style.
type GridConfig struct {
	StartHour      int     `yaml:"start_hour"`
	EndHour        int     `yaml:"end_hour"`
	PixelsPerSlot  float64 `yaml:"pixels_per_slot"`
	MinutesPerSlot int     `yaml:"minutes_per_slot"`
	GapPx          float64 `yaml:"gap_px"`
	MinHeightPx    float64 `yaml:"min_height_px"`
}

type BillingConfig struct {
	// CoverageRate is the insurance share as a fraction in [0, 1].
	CoverageRate float64 `yaml:"coverage_rate"`
}

type ScheduleConfig struct {
	// Timezone is the IANA zone of the clinic; the now marker is computed in it.
	Timezone        string        `yaml:"timezone"`
	RefreshInterval time.Duration `yaml:"refresh_interval"`
}

type TelemetryConfig struct {
	Enabled     bool    `yaml:"enabled"`
	ServiceName string  `yaml:"service_name"`
	Endpoint    string  `yaml:"endpoint"`
	SampleRatio float64 `yaml:"sample_ratio"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "text" (tint) or "json"
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	g := timegrid.DefaultGrid()
	s := schedule.DefaultStyle()
	return Config{
		Server: ServerConfig{
			Port:            8080,
			AllowedOrigins:  []string{"*"},
			ShutdownTimeout: 10 * time.Second,
		},
		Storage: StorageConfig{
			DBPath:      "./data/dentaldesk.db",
			SeedOnStart: true,
			CartTTL:     12 * time.Hour,
		},
		Auth: AuthConfig{
			TokenDuration: 12 * time.Hour,
		},
		Grid: GridConfig{
			StartHour:      g.StartHour,
			EndHour:        g.EndHour,
			PixelsPerSlot:  g.PixelsPerSlot,
			MinutesPerSlot: g.MinutesPerSlot,
			GapPx:          s.GapPx,
			MinHeightPx:    s.MinHeightPx,
		},
		Billing: BillingConfig{
			CoverageRate: invoice.DefaultCoverageRate.Fraction(),
		},
		Schedule: ScheduleConfig{
			Timezone:        "Local",
			RefreshInterval: schedule.DefaultRefreshInterval,
		},
		Telemetry: TelemetryConfig{
			ServiceName: "dentaldesk",
			Endpoint:    "localhost:4317",
			SampleRatio: 1,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// FromEnv loads the file named by DENTALDESK_CONFIG (if any), applies environment
// overrides and validates the result.
func FromEnv() (Config, error) {
	return Load(os.Getenv(PathEnv))
}

// Load is FromEnv with an explicit file path. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	str("DB_PATH", &c.Storage.DBPath)
	str("JWT_SECRET", &c.Auth.JWTSecret)
	str("LOG_LEVEL", &c.Logging.Level)
	str("LOG_FORMAT", &c.Logging.Format)
	str("REDIS_ADDR", &c.Storage.RedisAddr)
	str("REDIS_PASSWORD", &c.Storage.RedisPassword)
	str("CLINIC_TIMEZONE", &c.Schedule.Timezone)
	str("OTEL_EXPORTER_OTLP_ENDPOINT", &c.Telemetry.Endpoint)
	str("OTEL_SERVICE_NAME", &c.Telemetry.ServiceName)

	if v, ok := lookup("PORT"); ok && v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: PORT must be a number (got %q)", ErrInvalidConfig, v)
		}
		c.Server.Port = p
	}
	if v, ok := lookup("OTEL_ENABLED"); ok && v != "" {
		v = strings.ToLower(strings.TrimSpace(v))
		c.Telemetry.Enabled = v != "false" && v != "0"
	}
	return nil
}

// Validate reports every problem at once.
func (c Config) Validate() error {
	var errs []error
	add := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		add("server.port must be a valid TCP port (got %d)", c.Server.Port)
	}
	if c.Storage.DBPath == "" {
		add("storage.db_path is required")
	}
	if c.Auth.JWTSecret == "" {
		add("auth.jwt_secret is required (set JWT_SECRET)")
	}
	if c.Auth.TokenDuration <= 0 {
		add("auth.token_duration must be positive")
	}
	if err := c.TimeGrid().Validate(); err != nil {
		add("grid: %v", err)
	}
	if c.Grid.MinHeightPx < 0 || c.Grid.GapPx < 0 {
		add("grid.gap_px and grid.min_height_px must not be negative")
	}
	if _, err := invoice.CoverageRateFromFraction(c.Billing.CoverageRate); err != nil {
		add("billing.coverage_rate: %v", err)
	}
	if _, err := c.Location(); err != nil {
		add("schedule.timezone: %v", err)
	}
	if c.Schedule.RefreshInterval <= 0 {
		add("schedule.refresh_interval must be positive")
	}
	if c.Telemetry.SampleRatio < 0 || c.Telemetry.SampleRatio > 1 {
		add("telemetry.sample_ratio must be within [0, 1]")
	}
	switch strings.ToLower(c.Logging.Format) {
	case "text", "json":
	default:
		add("logging.format must be text or json (got %q)", c.Logging.Format)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// TimeGrid returns the schedule grid geometry.
func (c Config) TimeGrid() timegrid.Grid {
	return timegrid.Grid{
		StartHour:      c.Grid.StartHour,
		EndHour:        c.Grid.EndHour,
		PixelsPerSlot:  c.Grid.PixelsPerSlot,
		MinutesPerSlot: c.Grid.MinutesPerSlot,
	}
}

func (c Config) Style() schedule.Style {
	return schedule.Style{GapPx: c.Grid.GapPx, MinHeightPx: c.Grid.MinHeightPx}
}

// CoverageRate converts the configured fraction. Call after Validate.
func (c Config) CoverageRate() invoice.CoverageRate {
	rate, err := invoice.CoverageRateFromFraction(c.Billing.CoverageRate)
	if err != nil {
		return invoice.DefaultCoverageRate
	}
	return rate
}

// Location resolves the clinic timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Schedule.Timezone == "" || c.Schedule.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Schedule.Timezone)
}
