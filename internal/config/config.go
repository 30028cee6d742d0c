// Package config provides configuration loading for the scheduledemo
// CLI. The optimize.Schedule entry point itself never reads the
// environment — it is a pure, request-scoped function per spec §3
// "Lifecycle" — this package only serves the demo binary.
package config

import (
	"os"
	"strconv"

	"github.com/rs/zerolog/log"
)

// Config holds the CLI's environment-derived defaults.
type Config struct {
	Env            string
	LogLevel       string
	TimeoutSeconds int
	NumWorkers     int
	HolidayMode    string // "offline" or "network"
	HolidayAPIURL  string // consulted only when HolidayMode == "network"
}

// Load reads configuration from environment variables, falling back
// to the spec §6 solver defaults.
func Load() *Config {
	cfg := &Config{
		Env:            getEnv("SHIFTOPT_ENV", "development"),
		LogLevel:       getEnv("SHIFTOPT_LOG_LEVEL", "info"),
		TimeoutSeconds: getEnvInt("SHIFTOPT_TIMEOUT_SECONDS", 30),
		NumWorkers:     getEnvInt("SHIFTOPT_NUM_WORKERS", 4),
		HolidayMode:    getEnv("SHIFTOPT_HOLIDAY_MODE", "offline"),
		HolidayAPIURL:  getEnv("SHIFTOPT_HOLIDAY_API_URL", ""),
	}
	return cfg
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("invalid integer env var, using default")
		return defaultValue
	}
	return v
}
