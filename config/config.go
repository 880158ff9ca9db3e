package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Log          LogConfig          `yaml:"log"`
	Database     DatabaseConfig     `yaml:"database"`
	OperatingDay OperatingDayConfig `yaml:"operating_day"`
	Assignment   AssignmentConfig   `yaml:"assignment"`
	Reset        ResetConfig        `yaml:"reset"`
	Roster       RosterConfig       `yaml:"roster"`
	Push         PushConfig         `yaml:"push"`
	WorkerPool   WorkerPoolConfig   `yaml:"worker_pool"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int     `yaml:"port"`
	Mode            string  `yaml:"mode"`
	RateLimitPerSec float64 `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int     `yaml:"rate_limit_burst"`
}

// LogConfig selects the zap encoder and level.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	Debug                  bool   `yaml:"debug"`
}

// OperatingDayConfig fixes the timezone in which "today" is computed.
type OperatingDayConfig struct {
	Timezone string         `yaml:"timezone"`
	Location *time.Location `yaml:"-"`
}

// AssignmentConfig holds the room assignment rules.
type AssignmentConfig struct {
	MaxStaffPerRoom int `yaml:"max_staff_per_room"`
}

// ResetConfig controls the day-boundary reset timer.
type ResetConfig struct {
	Enabled bool `yaml:"enabled"`
}

// RosterConfig holds the daily roster importer configuration.
type RosterConfig struct {
	Enabled         bool          `yaml:"enabled"`
	IntervalSeconds int           `yaml:"interval_seconds"`
	Interval        time.Duration `yaml:"-"`
	HTTPProxy       string        `yaml:"http_proxy"`
	Request         RosterRequest `yaml:"request"`
}

// RosterRequest defines the HTTP request for the roster importer.
type RosterRequest struct {
	URL      string            `yaml:"url"`
	Headers  map[string]string `yaml:"headers"`
	PageSize int               `yaml:"pageSize"`
	Payload  map[string]any    `yaml:"payload"`
}

// PushConfig holds the VAPID keys for web push notifications.
type PushConfig struct {
	PublicKey  string `yaml:"vapid_public_key"`
	PrivateKey string `yaml:"vapid_private_key"`
	Subject    string `yaml:"subject"`
	TTL        int    `yaml:"ttl"`
}

// Enabled reports whether both VAPID keys are configured.
func (p PushConfig) Enabled() bool {
	return p.PublicKey != "" && p.PrivateKey != ""
}

// WorkerPoolConfig holds the configuration for the notification worker pool.
type WorkerPoolConfig struct {
	Size int `yaml:"size"`
}

// Load reads the configuration from the given path.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg Config
	decoder := yaml.NewDecoder(f)
	if err := decoder.Decode(&cfg); err != nil {
		return nil, err
	}

	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		cfg.Database.DSN = dsn
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (cfg *Config) applyDefaults() error {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.OperatingDay.Timezone == "" {
		cfg.OperatingDay.Timezone = "UTC"
	}
	loc, err := time.LoadLocation(cfg.OperatingDay.Timezone)
	if err != nil {
		return fmt.Errorf("invalid operating_day.timezone %q: %w", cfg.OperatingDay.Timezone, err)
	}
	cfg.OperatingDay.Location = loc

	if cfg.Assignment.MaxStaffPerRoom <= 0 {
		cfg.Assignment.MaxStaffPerRoom = 3
	}

	if cfg.Roster.IntervalSeconds <= 0 {
		cfg.Roster.IntervalSeconds = 300
	}
	cfg.Roster.Interval = time.Duration(cfg.Roster.IntervalSeconds) * time.Second
	if cfg.Roster.Request.PageSize <= 0 {
		cfg.Roster.Request.PageSize = 100
	}

	if cfg.Push.TTL <= 0 {
		cfg.Push.TTL = 3600
	}

	if cfg.WorkerPool.Size <= 0 {
		cfg.WorkerPool.Size = 1
	}
	return nil
}
