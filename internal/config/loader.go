// Package config provides configuration management for the PickScout application.
package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. PICKSCOUT_APP_LOG_LEVEL.
const EnvPrefix = "PICKSCOUT"

// Load reads and parses the configuration from file and environment variables
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func Load(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found at %s: %w", configPath, err)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	v := newViper()
	if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

// LoadWithDefaults loads configuration with default values for optional fields
// It expands environment variable placeholders in the YAML file (${VAR_NAME})
func LoadWithDefaults(configPath string) (*Config, error) {
	if configPath == "" {
		configPath = "config/config.yaml"
	}

	v := newViper()
	setDefaults(v)

	// Read and expand the configuration file if it exists
	if data, err := os.ReadFile(configPath); err == nil {
		if err := v.ReadConfig(bytes.NewBufferString(os.ExpandEnv(string(data)))); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	// If file doesn't exist, continue with defaults and environment variables

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	return cfg, nil
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	return v
}

// setDefaults fills every optional key with the production limits.
func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "pickscout")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.log_level", "info")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.name", "pickscout")
	v.SetDefault("database.user", "pickscout")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_connections", 10)
	v.SetDefault("database.max_idle_connections", 2)

	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout_seconds", 15)
	v.SetDefault("server.write_timeout_seconds", 15)
	v.SetDefault("server.allowed_origins", []string{"*"})

	v.SetDefault("client.api_url", "http://localhost:8000")
	v.SetDefault("client.timeout_seconds", 10)
	v.SetDefault("client.max_retries", 3)
	v.SetDefault("client.rate_limit", 5.0)
	v.SetDefault("client.circuit_breaker_max", 5)
	v.SetDefault("client.circuit_breaker_cooldown_seconds", 30)
	v.SetDefault("client.cache_ttl_seconds", 180)
	v.SetDefault("client.leaderboard_limit", 20)

	v.SetDefault("leaderboard.default_limit", 20)
	v.SetDefault("leaderboard.max_limit", 50)
	v.SetDefault("leaderboard.picks_per_capper", 3)
	v.SetDefault("leaderboard.todays_picks_limit", 50)
	v.SetDefault("leaderboard.inactive_after_days", 7)
	v.SetDefault("leaderboard.recent_days_default", 7)
	v.SetDefault("leaderboard.recent_days_max", 30)

	v.SetDefault("dashboard.default_unit_size", 5.0)
	v.SetDefault("dashboard.refresh_schedule", "@every 3m")
	v.SetDefault("dashboard.default_credibility", "")

	v.SetDefault("metrics.enabled", true)
	v.SetDefault("metrics.path", "/metrics")
	v.SetDefault("health.enabled", false)
	v.SetDefault("health.port", "8081")
}
