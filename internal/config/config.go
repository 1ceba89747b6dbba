// Package config defines the top-level configuration for the data
// monetization platform and provides validation helpers.
package config

import (
	"fmt"
	"strings"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by DATABOND_* environment variables.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Redis     RedisConfig     `toml:"redis"`
	S3        S3Config        `toml:"s3"`
	Bonds     BondsConfig     `toml:"bonds"`
	Valuation ValuationConfig `toml:"valuation"`
	Notify    NotifyConfig    `toml:"notify"`
	Mode      string          `toml:"mode"`
	LogLevel  string          `toml:"log_level"`
}

// ServerConfig holds the HTTP/WebSocket API server settings.
type ServerConfig struct {
	Enabled     bool     `toml:"enabled"`
	Port        int      `toml:"port"`
	CORSOrigins []string `toml:"cors_origins"`
}

// RedisConfig holds Redis connection parameters for the event bus.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Addr       string `toml:"addr"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	PoolSize   int    `toml:"pool_size"`
	MaxRetries int    `toml:"max_retries"`
	TLSEnabled bool   `toml:"tls_enabled"`
}

// S3Config holds object storage settings for report archival. Archival is
// enabled by setting a bucket name.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
	ReportPrefix   string `toml:"report_prefix"`
}

// BondsConfig holds defaults applied to bond issuance requests that omit
// the fields.
type BondsConfig struct {
	DefaultInterestRate float64 `toml:"default_interest_rate"`
	DefaultMaturityDays int     `toml:"default_maturity_days"`
}

// ValuationConfig holds asset valuation parameters.
type ValuationConfig struct {
	HighValueThreshold float64 `toml:"high_value_threshold"`
}

// NotifyConfig holds notification channel credentials and event filters.
type NotifyConfig struct {
	TelegramToken     string   `toml:"telegram_token"`
	TelegramChatID    string   `toml:"telegram_chat_id"`
	DiscordWebhookURL string   `toml:"discord_webhook_url"`
	Events            []string `toml:"events"`
}

// Defaults returns the built-in configuration used when a field is absent
// from the TOML file.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Enabled:     true,
			Port:        8080,
			CORSOrigins: nil,
		},
		Redis: RedisConfig{
			Enabled:    false,
			Addr:       "localhost:6379",
			DB:         0,
			PoolSize:   10,
			MaxRetries: 3,
		},
		S3: S3Config{
			Region:       "us-east-1",
			ReportPrefix: "reports",
		},
		Bonds: BondsConfig{
			DefaultInterestRate: 0.05,
			DefaultMaturityDays: 90,
		},
		Valuation: ValuationConfig{
			HighValueThreshold: 1000,
		},
		Mode:     "serve",
		LogLevel: "info",
	}
}

// validModes are the supported run modes.
var validModes = map[string]bool{
	"serve":  true,
	"seed":   true,
	"report": true,
	"full":   true,
}

// Validate checks the configuration for internal consistency and returns an
// error describing every problem found, or nil when the config is usable.
func (c *Config) Validate() error {
	var errs []string

	if !validModes[c.Mode] {
		errs = append(errs, fmt.Sprintf("unknown mode %q (valid: serve, seed, report, full)", c.Mode))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	if c.Server.Enabled {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			errs = append(errs, fmt.Sprintf("server: port must be 1-65535, got %d", c.Server.Port))
		}
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when redis is enabled")
		}
		if c.Redis.PoolSize < 1 {
			errs = append(errs, "redis: pool_size must be >= 1")
		}
	}

	if c.S3.Bucket != "" {
		if c.S3.Region == "" {
			errs = append(errs, "s3: region must not be empty when bucket is set")
		}
		if c.S3.AccessKey == "" || c.S3.SecretKey == "" {
			errs = append(errs, "s3: access_key and secret_key must both be set when bucket is set")
		}
	}

	if c.Bonds.DefaultInterestRate < 0 {
		errs = append(errs, "bonds: default_interest_rate must not be negative")
	}
	if c.Bonds.DefaultMaturityDays < 1 {
		errs = append(errs, "bonds: default_maturity_days must be >= 1")
	}

	if c.Valuation.HighValueThreshold < 0 {
		errs = append(errs, "valuation: high_value_threshold must not be negative")
	}

	if (c.Notify.TelegramToken == "") != (c.Notify.TelegramChatID == "") {
		errs = append(errs, "notify: telegram_token and telegram_chat_id must be set together")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
