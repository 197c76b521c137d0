package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values.
type Config struct {
	HTTP    HTTPConfig
	Redis   RedisConfig
	Forms   FormsConfig
	Deposit DepositConfig
	Logging LoggingConfig
}

// HTTPConfig governs HTTP server behaviour.
type HTTPConfig struct {
	Addr            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
	RateLimit       int
	RateWindow      time.Duration
}

// RedisConfig describes connectivity to redis. An empty Addr selects the
// in-memory stores.
type RedisConfig struct {
	Addr string
}

// FormsConfig controls session lifecycle and premium gating.
type FormsConfig struct {
	SessionTTL    time.Duration
	SweepInterval time.Duration
	// PremiumForms lists form kinds that require an active entitlement.
	PremiumForms []string
}

// DepositConfig controls the deposit calculator.
type DepositConfig struct {
	TaxRatePct  float64
	CatalogPath string
}

// LoggingConfig selects the zap logger profile.
type LoggingConfig struct {
	Development bool
}

const (
	defaultAddr            = ":8080"
	defaultReadTimeout     = 15 * time.Second
	defaultWriteTimeout    = 15 * time.Second
	defaultIdleTimeout     = 60 * time.Second
	defaultShutdownTimeout = 10 * time.Second
	defaultRateLimit       = 5
	defaultRateWindow      = time.Minute
	defaultSessionTTL      = 30 * time.Minute
	defaultSweepInterval   = 5 * time.Minute
	defaultTaxRatePct      = 12.0
)

// Load reads configuration from environment variables, applying defaults.
func Load() (Config, error) {
	cfg := Config{
		HTTP: HTTPConfig{
			Addr:            valueOrDefault("SERVER_ADDR", defaultAddr),
			ReadTimeout:     defaultReadTimeout,
			WriteTimeout:    defaultWriteTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
			RateLimit:       parseIntWithDefault("RATE_LIMIT", defaultRateLimit),
			RateWindow:      defaultRateWindow,
		},
		Redis: RedisConfig{
			Addr: os.Getenv("REDIS_ADDR"),
		},
		Forms: FormsConfig{
			SessionTTL:    defaultSessionTTL,
			SweepInterval: defaultSweepInterval,
			PremiumForms:  splitCSV(os.Getenv("PREMIUM_FORMS")),
		},
		Deposit: DepositConfig{
			TaxRatePct:  parseFloatWithDefault("DEPOSIT_TAX_RATE", defaultTaxRatePct),
			CatalogPath: os.Getenv("BANK_CATALOG_PATH"),
		},
		Logging: LoggingConfig{
			Development: parseBoolWithDefault("LOG_DEVELOPMENT", false),
		},
	}

	for key, dst := range map[string]*time.Duration{
		"SERVER_READ_TIMEOUT":     &cfg.HTTP.ReadTimeout,
		"SERVER_WRITE_TIMEOUT":    &cfg.HTTP.WriteTimeout,
		"SERVER_IDLE_TIMEOUT":     &cfg.HTTP.IdleTimeout,
		"SERVER_SHUTDOWN_TIMEOUT": &cfg.HTTP.ShutdownTimeout,
		"RATE_WINDOW":             &cfg.HTTP.RateWindow,
		"SESSION_TTL":             &cfg.Forms.SessionTTL,
		"SESSION_SWEEP_INTERVAL":  &cfg.Forms.SweepInterval,
	} {
		if v := os.Getenv(key); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, fmt.Errorf("invalid %s: %w", key, err)
			}
			*dst = d
		}
	}

	if cfg.Deposit.TaxRatePct < 0 || cfg.Deposit.TaxRatePct > 100 {
		return Config{}, fmt.Errorf("DEPOSIT_TAX_RATE %v is out of range", cfg.Deposit.TaxRatePct)
	}

	return cfg, nil
}

func valueOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func parseIntWithDefault(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.Atoi(v); err == nil {
			return val
		}
	}
	return fallback
}

func parseFloatWithDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			return val
		}
	}
	return fallback
}

func parseBoolWithDefault(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if val, err := strconv.ParseBool(v); err == nil {
			return val
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
