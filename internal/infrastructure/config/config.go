package config

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`
	HTTPAddr string `mapstructure:"HTTP_ADDR"`

	// Cal.com backend. Event type and host are process-wide, never per call.
	CalBaseURL       string        `mapstructure:"CAL_BASE_URL"`
	CalAPIKey        string        `mapstructure:"CAL_API_KEY"`
	CalEventSlug     string        `mapstructure:"CAL_EVENT_SLUG"`
	CalUsername      string        `mapstructure:"CAL_USERNAME"`
	CalAPIVersion    string        `mapstructure:"CAL_API_VERSION"`
	CalTimeout       time.Duration `mapstructure:"CAL_TIMEOUT"`
	CalRatePerMinute int           `mapstructure:"CAL_RATE_PER_MINUTE"`

	// slots
	SlotSource      string `mapstructure:"SLOT_SOURCE"` // static | postgres
	SlotGrid        string `mapstructure:"SLOT_GRID"`   // comma-separated HH:MM
	DefaultTimeZone string `mapstructure:"DEFAULT_TIMEZONE"`
	DatabaseURL     string `mapstructure:"DATABASE_URL"`

	// event type cache
	RedisAddr          string        `mapstructure:"REDIS_ADDR"`
	RedisPassword      string        `mapstructure:"REDIS_PASSWORD"`
	RedisDB            int           `mapstructure:"REDIS_DB"`
	EventTypesCacheTTL time.Duration `mapstructure:"EVENT_TYPES_CACHE_TTL"`

	SessionHashKeyB64  string `mapstructure:"SESSION_HASH_KEY"`
	SessionBlockKeyB64 string `mapstructure:"SESSION_BLOCK_KEY"`

	SessionHashKey  []byte `mapstructure:"-"`
	SessionBlockKey []byte `mapstructure:"-"`
}

var defaults = map[string]any{
	"ENV":                   "development",
	"LOG_LEVEL":             "info",
	"HTTP_ADDR":             ":8080",
	"CAL_BASE_URL":          "https://api.cal.com",
	"CAL_API_KEY":           "",
	"CAL_EVENT_SLUG":        "",
	"CAL_USERNAME":          "",
	"CAL_API_VERSION":       "2024-08-13",
	"CAL_TIMEOUT":           "10s",
	"CAL_RATE_PER_MINUTE":   120,
	"SLOT_SOURCE":           "static",
	"SLOT_GRID":             "10:00,11:00,12:00,15:00,16:00,17:00",
	"DEFAULT_TIMEZONE":      "Asia/Kolkata",
	"DATABASE_URL":          "",
	"REDIS_ADDR":            "",
	"REDIS_PASSWORD":        "",
	"REDIS_DB":              0,
	"EVENT_TYPES_CACHE_TTL": "5m",
	"SESSION_HASH_KEY":      "",
	"SESSION_BLOCK_KEY":     "",
}

// FromEnv loads .env.local and .env (if present, without overriding the real environment)
// and reads the configuration from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")
	return load(viper.New())
}

func load(v *viper.Viper) (Config, error) {
	for k, d := range defaults {
		v.SetDefault(k, d)
	}
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("config: %w", err)
	}
	cfg.CalBaseURL = strings.TrimRight(strings.TrimSpace(cfg.CalBaseURL), "/")
	cfg.SlotSource = strings.ToLower(strings.TrimSpace(cfg.SlotSource))

	if cfg.CalTimeout <= 0 {
		return cfg, fmt.Errorf("CAL_TIMEOUT must be > 0")
	}
	if cfg.CalRatePerMinute < 1 {
		return cfg, fmt.Errorf("CAL_RATE_PER_MINUTE must be >= 1")
	}
	switch cfg.SlotSource {
	case "static":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return cfg, fmt.Errorf("DATABASE_URL is required when SLOT_SOURCE=postgres")
		}
	default:
		return cfg, fmt.Errorf("SLOT_SOURCE must be static or postgres (got %q)", cfg.SlotSource)
	}

	var err error
	if cfg.SessionHashKey, err = optionalB64("SESSION_HASH_KEY", cfg.SessionHashKeyB64); err != nil {
		return cfg, err
	}
	if cfg.SessionBlockKey, err = optionalB64("SESSION_BLOCK_KEY", cfg.SessionBlockKeyB64); err != nil {
		return cfg, err
	}
	if n := len(cfg.SessionBlockKey); n != 0 && n != 16 && n != 24 && n != 32 {
		return cfg, fmt.Errorf("SESSION_BLOCK_KEY must decode to 16, 24 or 32 bytes (got %d)", n)
	}
	return cfg, nil
}

// RequireCal checks the settings every call to the booking backend needs.
func (c Config) RequireCal() error {
	var missing []string
	if c.CalAPIKey == "" {
		missing = append(missing, "CAL_API_KEY")
	}
	if c.CalEventSlug == "" {
		missing = append(missing, "CAL_EVENT_SLUG")
	}
	if c.CalUsername == "" {
		missing = append(missing, "CAL_USERNAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%s required", strings.Join(missing, ", "))
	}
	return nil
}

func (c Config) IsProduction() bool { return c.Env == "production" }

// SlotTimes splits SLOT_GRID.
func (c Config) SlotTimes() []string {
	parts := strings.Split(c.SlotGrid, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func optionalB64(k, v string) ([]byte, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil, nil
	}
	if b, err := base64.StdEncoding.DecodeString(v); err == nil {
		return b, nil
	}
	b, err := base64.RawStdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid base64: %w", k, err)
	}
	return b, nil
}
