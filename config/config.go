package config

import (
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config represents the overall application configuration.
type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Database   DatabaseConfig   `yaml:"database"`
	Session    SessionConfig    `yaml:"session"`
	Booking    BookingConfig    `yaml:"booking"`
	WorkerPool WorkerPoolConfig `yaml:"worker_pool"`
}

// WorkerPoolConfig holds the configuration for the preference writer pool.
type WorkerPoolConfig struct {
	Size      int `yaml:"size"`
	QueueSize int `yaml:"queue_size"`
}

// ServerConfig holds the server-related configuration.
type ServerConfig struct {
	Port            int           `yaml:"port"`
	RateLimitPerSec float64       `yaml:"rate_limit_per_sec"`
	RateLimitBurst  int           `yaml:"rate_limit_burst"`
	CacheTTLSeconds int           `yaml:"cache_ttl_seconds"`
	CacheTTL        time.Duration `yaml:"-"`
	AllowedOrigins  []string      `yaml:"allowed_origins"`
}

// DatabaseConfig holds the database connection configuration.
type DatabaseConfig struct {
	Driver                 string `yaml:"driver"` // "sqlite" or "postgres"
	DSN                    string `yaml:"dsn"`
	MaxOpenConns           int    `yaml:"max_open_conns"`
	MaxIdleConns           int    `yaml:"max_idle_conns"`
	ConnMaxLifetimeMinutes int    `yaml:"conn_max_lifetime_minutes"`
	PersistPreferences     bool   `yaml:"persist_preferences"`
}

// SessionConfig controls visitor sessions and their initial app state.
type SessionConfig struct {
	CookieName         string        `yaml:"cookie_name"`
	IdleTimeoutMinutes int           `yaml:"idle_timeout_minutes"`
	IdleTimeout        time.Duration `yaml:"-"`
	DefaultLanguage    string        `yaml:"default_language"`
	DefaultDarkMode    bool          `yaml:"default_dark_mode"`
}

// BookingConfig holds the room booking widget settings.
type BookingConfig struct {
	SuccessBannerSeconds int            `yaml:"success_banner_seconds"`
	SuccessBanner        time.Duration  `yaml:"-"`
	Timezone             string         `yaml:"timezone"`
	Location             *time.Location `yaml:"-"`
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

	cfg.applyDefaults()
	return &cfg, nil
}

func (cfg *Config) applyDefaults() {
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.RateLimitPerSec <= 0 {
		cfg.Server.RateLimitPerSec = 10
	}
	if cfg.Server.RateLimitBurst <= 0 {
		cfg.Server.RateLimitBurst = 5
	}
	if cfg.Server.CacheTTLSeconds <= 0 {
		cfg.Server.CacheTTLSeconds = 300
	}
	cfg.Server.CacheTTL = time.Duration(cfg.Server.CacheTTLSeconds) * time.Second

	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "sqlite"
	}
	if cfg.Database.DSN == "" && cfg.Database.Driver == "sqlite" {
		cfg.Database.DSN = "file:aus.db?_foreign_keys=on"
	}

	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "aus_session"
	}
	if cfg.Session.IdleTimeoutMinutes <= 0 {
		cfg.Session.IdleTimeoutMinutes = 120
	}
	cfg.Session.IdleTimeout = time.Duration(cfg.Session.IdleTimeoutMinutes) * time.Minute
	if cfg.Session.DefaultLanguage == "" {
		cfg.Session.DefaultLanguage = "en"
	}

	if cfg.Booking.SuccessBannerSeconds <= 0 {
		cfg.Booking.SuccessBannerSeconds = 3
	}
	cfg.Booking.SuccessBanner = time.Duration(cfg.Booking.SuccessBannerSeconds) * time.Second
	if cfg.Booking.Timezone == "" {
		cfg.Booking.Timezone = "America/Montreal"
	}
	loc, err := time.LoadLocation(cfg.Booking.Timezone)
	if err != nil {
		log.Printf("booking.timezone %q could not be loaded (%v); falling back to UTC", cfg.Booking.Timezone, err)
		loc = time.UTC
	}
	cfg.Booking.Location = loc

	if cfg.WorkerPool.Size <= 0 {
		log.Printf("worker_pool.size is not set or invalid; defaulting to 1")
		cfg.WorkerPool.Size = 1
	}
	if cfg.WorkerPool.QueueSize <= 0 {
		cfg.WorkerPool.QueueSize = 64
	}
}
