package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// chdirTemp moves into an empty directory so no stray .env file is loaded.
func chdirTemp(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)
	for _, k := range []string{
		"HOST", "PORT", "GIN_MODE", "USV_LOG_LEVEL", "LOG_FORMAT", "USV_SERVER_URL",
		"READ_TIMEOUT", "WRITE_TIMEOUT", "SHUTDOWN_TIMEOUT", "CLIENT_TIMEOUT",
		"THERMAL_MODEL_SEED", "THERMAL_INPUT_SIZE",
	} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:8000", cfg.Addr())
	require.Equal(t, "release", cfg.GinMode)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "json", cfg.LogFormat)
	require.Equal(t, "http://127.0.0.1:8000", cfg.ServerURL)
	require.Equal(t, 10*time.Second, cfg.ReadTimeout)
	require.Equal(t, 30*time.Second, cfg.WriteTimeout)
	require.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	require.Equal(t, 10*time.Second, cfg.ClientTimeout)
	require.Equal(t, int64(1), cfg.ThermalModelSeed)
	require.Equal(t, 28, cfg.ThermalInputSize)
}

func TestLoad_Overrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("HOST", "0.0.0.0")
	t.Setenv("PORT", "9090")
	t.Setenv("THERMAL_MODEL_SEED", "77")
	t.Setenv("THERMAL_INPUT_SIZE", "32")
	t.Setenv("CLIENT_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "0.0.0.0:9090", cfg.Addr())
	require.Equal(t, int64(77), cfg.ThermalModelSeed)
	require.Equal(t, 32, cfg.ThermalInputSize)
	require.Equal(t, 2*time.Second, cfg.ClientTimeout)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"THERMAL_MODEL_SEED", "abc"},
		{"THERMAL_INPUT_SIZE", "-3"},
		{"READ_TIMEOUT", "ten seconds"},
		{"SHUTDOWN_TIMEOUT", "5"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.key)
		})
	}
}
