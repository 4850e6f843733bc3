// Package config provides configuration management for the Race Night service.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App      AppConfig      `mapstructure:"app" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Game     GameConfig     `mapstructure:"game" validate:"required"`
	Records  RecordsConfig  `mapstructure:"records"`
	Metrics  MetricsConfig  `mapstructure:"metrics" validate:"required"`
	Jobs     JobsConfig     `mapstructure:"jobs"`
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
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ServerConfig represents the HTTP API server configuration
type ServerConfig struct {
	Port                   int `mapstructure:"port" validate:"required,min=1,max=65535"`
	ReadTimeoutSeconds     int `mapstructure:"read_timeout_seconds" validate:"required,gt=0"`
	WriteTimeoutSeconds    int `mapstructure:"write_timeout_seconds" validate:"required,gt=0"`
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"required,gt=0"`
}

// AuthConfig represents the admin PIN gate configuration
type AuthConfig struct {
	DefaultPIN        string  `mapstructure:"default_pin" validate:"required,len=4,numeric"`
	AttemptsPerMinute float64 `mapstructure:"attempts_per_minute" validate:"required,gt=0"`
	AttemptBurst      int     `mapstructure:"attempt_burst" validate:"required,gt=0"`
}

// GameConfig represents game setup limits and service-layer tuning
type GameConfig struct {
	MaxPlayers         int `mapstructure:"max_players" validate:"required,gt=1"`
	MaxCircuits        int `mapstructure:"max_circuits" validate:"required,gt=0"`
	RosterCacheSeconds int `mapstructure:"roster_cache_seconds" validate:"required,gt=0"`
	LeaderboardSize    int `mapstructure:"leaderboard_size" validate:"required,gt=0"`
}

// RecordsConfig represents record-announcement webhook configuration.
// The webhook is optional; an empty URL disables announcements.
type RecordsConfig struct {
	WebhookURL     string `mapstructure:"webhook_url" validate:"omitempty,url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	MaxRetries     int    `mapstructure:"max_retries" validate:"omitempty,gte=0"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// JobsConfig represents scheduled maintenance job configuration
type JobsConfig struct {
	StaleGameArchiveCron string `mapstructure:"stale_game_archive_cron"`
	StaleGameMaxAgeHours int    `mapstructure:"stale_game_max_age_hours" validate:"omitempty,gt=0"`
	RecordAuditCron      string `mapstructure:"record_audit_cron"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsStaging checks if the application is running in staging mode
func (c *Config) IsStaging() bool {
	return c.App.Environment == "staging"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
