package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds settings for both the server and the demonstration client.
type Config struct {
	// HTTP server
	Host            string
	Port            string
	GinMode         string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration

	// Logging
	LogLevel  string
	LogFormat string

	// Thermal counting network
	ThermalModelSeed int64
	ThermalInputSize int

	// Demonstration client
	ServerURL     string
	ClientTimeout time.Duration
}

// Load reads configuration from the environment, after loading a .env file
// from the working directory if one exists. Malformed numeric or duration
// values are reported as errors rather than silently defaulted.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Host:      getEnv("HOST", "127.0.0.1"),
		Port:      getEnv("PORT", "8000"),
		GinMode:   getEnv("GIN_MODE", "release"),
		LogLevel:  getEnv("USV_LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "json"),
		ServerURL: getEnv("USV_SERVER_URL", "http://127.0.0.1:8000"),
	}

	var err error
	if cfg.ReadTimeout, err = getEnvDuration("READ_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.WriteTimeout, err = getEnvDuration("WRITE_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.ClientTimeout, err = getEnvDuration("CLIENT_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	if cfg.ThermalModelSeed, err = getEnvInt64("THERMAL_MODEL_SEED", 1); err != nil {
		return nil, err
	}
	size, err := getEnvInt64("THERMAL_INPUT_SIZE", 28)
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		return nil, fmt.Errorf("THERMAL_INPUT_SIZE must be positive, got %d", size)
	}
	cfg.ThermalInputSize = int(size)

	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt64(key string, defaultValue int64) (int64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as integer: %w", key, value, err)
	}
	return n, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("parse %s=%q as duration: %w", key, value, err)
	}
	return d, nil
}
