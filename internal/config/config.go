// Package config reads configuration from the environment and an optional
// YAML file of analytics tunables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gopkg.in/yaml.v3"

	"weightlog/internal/app"
)

// Duration wraps time.Duration so YAML values like "48h" parse.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var raw string
	if err := value.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Analytics holds the tunables of the analytics engine, loaded from YAML.
type Analytics struct {
	// WindowDays is the trailing window fed to the trend projector.
	WindowDays int `yaml:"window_days"`
	// WeeklyBuckets and MonthlyBuckets size the report's summary lists.
	WeeklyBuckets  int `yaml:"weekly_buckets"`
	MonthlyBuckets int `yaml:"monthly_buckets"`
	// SmoothingDays is the moving-average window for chart series.
	SmoothingDays int `yaml:"smoothing_days"`
	// DefaultHeightM is the BMI fallback height in meters (0 = none).
	DefaultHeightM float64 `yaml:"default_height_m"`
	// FutureTolerance is how far ahead of now an observation date may lie.
	FutureTolerance Duration `yaml:"future_tolerance"`
	// ReminderStaleDays triggers a reminder when the log is older.
	ReminderStaleDays int `yaml:"reminder_stale_days"`
}

// AppConfig is the full application configuration.
type AppConfig struct {
	// Addr is the HTTP listen address.
	Addr string
	// DatabaseURL selects the PostgreSQL backend when non-empty;
	// otherwise the CSV filestore is used.
	DatabaseURL string
	// DataFile and GoalFile are the filestore paths.
	DataFile string
	GoalFile string
	// RemindersEnabled starts the weigh-in reminder scheduler.
	RemindersEnabled bool

	Analytics Analytics
}

// Load reads configuration from the environment with sensible defaults,
// then overlays analytics tunables from the YAML file named by
// WEIGHTLOG_CONFIG (default "weightlog.yaml", missing file allowed).
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg := &AppConfig{
		Addr:             getenvDefault("ADDR", ":8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		DataFile:         getenvDefault("DATA_FILE", "weights.csv"),
		GoalFile:         getenvDefault("GOAL_FILE", "goal.json"),
		RemindersEnabled: getenvBool("REMINDERS_ENABLED", true),
		Analytics: Analytics{
			WindowDays:        30,
			WeeklyBuckets:     8,
			MonthlyBuckets:    12,
			SmoothingDays:     7,
			FutureTolerance:   Duration(app.DefaultFutureTolerance),
			ReminderStaleDays: 7,
		},
	}

	path := getenvDefault("WEIGHTLOG_CONFIG", "weightlog.yaml")
	if err := cfg.loadAnalyticsFile(path); err != nil {
		return nil, err
	}
	if cfg.Analytics.WindowDays < 2 {
		return nil, fmt.Errorf("window_days must be >= 2, got %d", cfg.Analytics.WindowDays)
	}
	return cfg, nil
}

func (c *AppConfig) loadAnalyticsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &c.Analytics); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// ReportConfig converts the analytics tunables for the report service.
func (c *AppConfig) ReportConfig() app.ReportConfig {
	return app.ReportConfig{
		WindowDays:     c.Analytics.WindowDays,
		WeeklyBuckets:  c.Analytics.WeeklyBuckets,
		MonthlyBuckets: c.Analytics.MonthlyBuckets,
		SmoothingDays:  c.Analytics.SmoothingDays,
		DefaultHeightM: c.Analytics.DefaultHeightM,
	}
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
