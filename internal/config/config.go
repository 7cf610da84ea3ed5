// Package config provides configuration management for the PickScout application.
package config

import (
	"fmt"
	"net/url"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Server      ServerConfig      `mapstructure:"server" validate:"required"`
	Client      ClientConfig      `mapstructure:"client" validate:"required"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard" validate:"required"`
	Dashboard   DashboardConfig   `mapstructure:"dashboard" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics"`
	Health      HealthConfig      `mapstructure:"health"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"gte=0"`
}

// ServerConfig represents the HTTP API listener
type ServerConfig struct {
	Port                int      `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds  int      `mapstructure:"read_timeout_seconds" validate:"gt=0"`
	WriteTimeoutSeconds int      `mapstructure:"write_timeout_seconds" validate:"gt=0"`
	AllowedOrigins      []string `mapstructure:"allowed_origins" validate:"required,min=1"`
}

// ClientConfig represents the remote query client used by the dashboard commands
type ClientConfig struct {
	APIURL            string  `mapstructure:"api_url" validate:"required,url"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"gt=0"`
	MaxRetries        int     `mapstructure:"max_retries" validate:"gte=0"`
	RateLimit         float64 `mapstructure:"rate_limit" validate:"gt=0"`
	CircuitBreakerMax int     `mapstructure:"circuit_breaker_max" validate:"gte=0"`
	CacheTTLSeconds   int     `mapstructure:"cache_ttl_seconds" validate:"gte=0"`
	LeaderboardLimit  int     `mapstructure:"leaderboard_limit" validate:"gte=0,lte=50"`

	CircuitBreakerCooldownSeconds int `mapstructure:"circuit_breaker_cooldown_seconds" validate:"gte=0"`
}

// LeaderboardConfig holds the query limits the API enforces
type LeaderboardConfig struct {
	DefaultLimit      int `mapstructure:"default_limit" validate:"required,gt=0"`
	MaxLimit          int `mapstructure:"max_limit" validate:"required,gt=0"`
	PicksPerCapper    int `mapstructure:"picks_per_capper" validate:"required,gt=0"`
	TodaysPicksLimit  int `mapstructure:"todays_picks_limit" validate:"required,gt=0"`
	InactiveAfterDays int `mapstructure:"inactive_after_days" validate:"gte=0"`
	RecentDaysDefault int `mapstructure:"recent_days_default" validate:"required,gt=0"`
	RecentDaysMax     int `mapstructure:"recent_days_max" validate:"required,gt=0"`
}

// DashboardConfig holds defaults for the CLI dashboard
type DashboardConfig struct {
	DefaultUnitSize    float64 `mapstructure:"default_unit_size" validate:"required,gt=0"`
	RefreshSchedule    string  `mapstructure:"refresh_schedule" validate:"required"`
	DefaultCredibility string  `mapstructure:"default_credibility" validate:"omitempty,credibility"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true"`
}

// HealthConfig represents the standalone health server
type HealthConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    string `mapstructure:"port"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.Database.User, c.Database.Password),
		Host:     fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port),
		Path:     "/" + c.Database.Name,
		RawQuery: "sslmode=" + url.QueryEscape(c.Database.SSLMode),
	}
	return u.String()
}

// GetServerAddress returns the API listen address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
