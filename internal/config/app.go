// Package config loads the YAML application configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	pkgconfig "duo-blog/pkg/config"
)

// AppConfig holds settings that are tuned per deployment but are not
// secrets. Secrets such as JWT_SECRET and DATABASE_URL stay in the environment.
type AppConfig struct {
	Auth  AuthConfig  `yaml:"auth"`
	Stats StatsConfig `yaml:"stats"`
}

type AuthConfig struct {
	JWTExpiryHours    int             `yaml:"jwt_expiry_hours"`
	MinPasswordLength int             `yaml:"min_password_length"`
	BcryptCost        int             `yaml:"bcrypt_cost"`
	RateLimit         RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig throttles the login and sign-up endpoints per client IP.
type RateLimitConfig struct {
	RequestsPerMinute int           `yaml:"requests_per_minute"`
	Burst             int           `yaml:"burst"`
	CleanupInterval   time.Duration `yaml:"cleanup_interval"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
}

// StatsConfig schedules the job that refreshes the entity count gauges.
type StatsConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Schedule string        `yaml:"schedule"`
	Timeout  time.Duration `yaml:"timeout"`
}

func (c AuthConfig) JWTExpiry() time.Duration {
	return time.Duration(c.JWTExpiryHours) * time.Hour
}

// Default returns the configuration used when no file is given.
func Default() *AppConfig {
	return &AppConfig{
		Auth: AuthConfig{
			JWTExpiryHours:    24,
			MinPasswordLength: 8,
			BcryptCost:        10,
			RateLimit: RateLimitConfig{
				RequestsPerMinute: 10,
				Burst:             5,
				CleanupInterval:   time.Minute,
				IdleTimeout:       10 * time.Minute,
			},
		},
		Stats: StatsConfig{
			Enabled:  true,
			Schedule: "*/5 * * * *",
			Timeout:  30 * time.Second,
		},
	}
}

// Load reads path over the defaults, so a file only needs the keys it changes.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// LoadFromEnv loads CONFIG_PATH when set and falls back to Default.
// STATS_SCHEDULE overrides the file's cron schedule.
func LoadFromEnv() (*AppConfig, error) {
	cfg := Default()
	if path := pkgconfig.GetEnvString("CONFIG_PATH", ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	cfg.Stats.Schedule = pkgconfig.GetEnvString("STATS_SCHEDULE", cfg.Stats.Schedule)
	cfg.Stats.Enabled = pkgconfig.GetEnvBool("STATS_ENABLED", cfg.Stats.Enabled)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c *AppConfig) Validate() error {
	var errs []error

	if err := pkgconfig.ValidateIntRange(c.Auth.JWTExpiryHours, 1, 24*30); err != nil {
		errs = append(errs, fmt.Errorf("auth.jwt_expiry_hours: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Auth.MinPasswordLength, 8, 72); err != nil {
		errs = append(errs, fmt.Errorf("auth.min_password_length: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Auth.BcryptCost, 4, 31); err != nil {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Auth.RateLimit.RequestsPerMinute, 1, 10000); err != nil {
		errs = append(errs, fmt.Errorf("auth.rate_limit.requests_per_minute: %w", err))
	}
	if err := pkgconfig.ValidateIntRange(c.Auth.RateLimit.Burst, 1, 1000); err != nil {
		errs = append(errs, fmt.Errorf("auth.rate_limit.burst: %w", err))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Auth.RateLimit.CleanupInterval); err != nil {
		errs = append(errs, fmt.Errorf("auth.rate_limit.cleanup_interval: %w", err))
	}
	if err := pkgconfig.ValidatePositiveDuration(c.Auth.RateLimit.IdleTimeout); err != nil {
		errs = append(errs, fmt.Errorf("auth.rate_limit.idle_timeout: %w", err))
	}

	if c.Stats.Enabled {
		if err := pkgconfig.ValidateCronSchedule(c.Stats.Schedule); err != nil {
			errs = append(errs, fmt.Errorf("stats.schedule: %w", err))
		}
		if err := pkgconfig.ValidatePositiveDuration(c.Stats.Timeout); err != nil {
			errs = append(errs, fmt.Errorf("stats.timeout: %w", err))
		}
	}

	return errors.Join(errs...)
}
