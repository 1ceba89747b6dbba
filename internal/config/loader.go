package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies DATABOND_* environment variable overrides, and
// returns the final Config. The returned Config has NOT been validated; the
// caller should invoke Config.Validate() after Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known DATABOND_* environment variables and
// overwrites the corresponding Config fields when a variable is set (i.e. not
// empty). This lets operators inject secrets at deploy time without touching
// the TOML file.
func applyEnvOverrides(cfg *Config) {
	// ── Server ──
	setBool(&cfg.Server.Enabled, "DATABOND_SERVER_ENABLED")
	setInt(&cfg.Server.Port, "DATABOND_SERVER_PORT")
	setStringSlice(&cfg.Server.CORSOrigins, "DATABOND_SERVER_CORS_ORIGINS")

	// ── Redis ──
	setBool(&cfg.Redis.Enabled, "DATABOND_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "DATABOND_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "DATABOND_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "DATABOND_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "DATABOND_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "DATABOND_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "DATABOND_REDIS_TLS_ENABLED")

	// ── S3 ──
	setStr(&cfg.S3.Endpoint, "DATABOND_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "DATABOND_S3_REGION")
	setStr(&cfg.S3.Bucket, "DATABOND_S3_BUCKET")
	setStr(&cfg.S3.AccessKey, "DATABOND_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "DATABOND_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "DATABOND_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "DATABOND_S3_FORCE_PATH_STYLE")
	setStr(&cfg.S3.ReportPrefix, "DATABOND_S3_REPORT_PREFIX")

	// ── Bonds ──
	setFloat64(&cfg.Bonds.DefaultInterestRate, "DATABOND_BONDS_DEFAULT_INTEREST_RATE")
	setInt(&cfg.Bonds.DefaultMaturityDays, "DATABOND_BONDS_DEFAULT_MATURITY_DAYS")

	// ── Valuation ──
	setFloat64(&cfg.Valuation.HighValueThreshold, "DATABOND_VALUATION_HIGH_VALUE_THRESHOLD")

	// ── Notify ──
	setStr(&cfg.Notify.TelegramToken, "DATABOND_NOTIFY_TELEGRAM_TOKEN")
	setStr(&cfg.Notify.TelegramChatID, "DATABOND_NOTIFY_TELEGRAM_CHAT_ID")
	setStr(&cfg.Notify.DiscordWebhookURL, "DATABOND_NOTIFY_DISCORD_WEBHOOK_URL")
	setStringSlice(&cfg.Notify.Events, "DATABOND_NOTIFY_EVENTS")

	// ── Top-level ──
	setStr(&cfg.Mode, "DATABOND_MODE")
	setStr(&cfg.LogLevel, "DATABOND_LOG_LEVEL")
}

// ---------------------------------------------------------------------------
// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.
// ---------------------------------------------------------------------------

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setFloat64(dst *float64, key string) {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			*dst = f
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setStringSlice(dst *[]string, key string) {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		cleaned := make([]string, 0, len(parts))
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if p != "" {
				cleaned = append(cleaned, p)
			}
		}
		if len(cleaned) > 0 {
			*dst = cleaned
		}
	}
}
