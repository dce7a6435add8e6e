package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("WEIGHTLOG_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("ADDR", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "weights.csv", cfg.DataFile)
	assert.Equal(t, "goal.json", cfg.GoalFile)
	assert.True(t, cfg.RemindersEnabled)
	assert.Equal(t, 30, cfg.Analytics.WindowDays)
	assert.Equal(t, 8, cfg.Analytics.WeeklyBuckets)
	assert.Equal(t, 12, cfg.Analytics.MonthlyBuckets)
	assert.Equal(t, 7, cfg.Analytics.SmoothingDays)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("WEIGHTLOG_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("ADDR", ":9999")
	t.Setenv("DATA_FILE", "/var/lib/weightlog/data.csv")
	t.Setenv("REMINDERS_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9999", cfg.Addr)
	assert.Equal(t, "/var/lib/weightlog/data.csv", cfg.DataFile)
	assert.False(t, cfg.RemindersEnabled)
}

func TestLoad_YAMLOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weightlog.yaml")
	yaml := `window_days: 60
weekly_buckets: 4
default_height_m: 1.83
future_tolerance: 48h
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))
	t.Setenv("WEIGHTLOG_CONFIG", path)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 60, cfg.Analytics.WindowDays)
	assert.Equal(t, 4, cfg.Analytics.WeeklyBuckets)
	assert.Equal(t, 12, cfg.Analytics.MonthlyBuckets, "unset keys keep defaults")
	assert.Equal(t, 1.83, cfg.Analytics.DefaultHeightM)
	assert.Equal(t, 48*time.Hour, cfg.Analytics.FutureTolerance.Std())
}

func TestLoad_RejectsBadWindow(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weightlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window_days: 1\n"), 0o644))
	t.Setenv("WEIGHTLOG_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "weightlog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("window_days: [not a number\n"), 0o644))
	t.Setenv("WEIGHTLOG_CONFIG", path)

	_, err := Load()
	assert.Error(t, err)
}

func TestReportConfig(t *testing.T) {
	cfg := &AppConfig{Analytics: Analytics{
		WindowDays:     45,
		WeeklyBuckets:  6,
		MonthlyBuckets: 3,
		SmoothingDays:  5,
		DefaultHeightM: 1.75,
	}}

	rc := cfg.ReportConfig()
	assert.Equal(t, 45, rc.WindowDays)
	assert.Equal(t, 6, rc.WeeklyBuckets)
	assert.Equal(t, 3, rc.MonthlyBuckets)
	assert.Equal(t, 5, rc.SmoothingDays)
	assert.Equal(t, 1.75, rc.DefaultHeightM)
}
