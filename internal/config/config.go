package config

import (
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	HTTPPort            string
	RateAPIURL          string
	RateTimeout         time.Duration
	RateCacheTTL        time.Duration
	RateRefreshInterval time.Duration
	FallbackRate        decimal.Decimal
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		HTTPPort:            envOrDefault("HTTP_PORT", "8080"),
		RateAPIURL:          envOrDefault("RATE_API_URL", "https://open.er-api.com/v6/latest/USD"),
		RateTimeout:         envOrDefaultDuration("RATE_TIMEOUT", 10*time.Second),
		RateCacheTTL:        envOrDefaultDuration("RATE_CACHE_TTL", 30*time.Second),
		RateRefreshInterval: envOrDefaultDuration("RATE_REFRESH_INTERVAL", 1*time.Hour),
		FallbackRate:        envOrDefaultDecimal("FALLBACK_RATE", decimal.NewFromInt(15000)),
	}
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envOrDefaultDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}

func envOrDefaultDecimal(key string, defaultVal decimal.Decimal) decimal.Decimal {
	if v := os.Getenv(key); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil || !d.IsPositive() {
			slog.Warn("invalid decimal env var, using default", "key", key, "value", v, "default", defaultVal)
			return defaultVal
		}
		return d
	}
	return defaultVal
}
