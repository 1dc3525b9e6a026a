package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/centavo-app/centavo-backend/internal/domain"
	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Currency pair the engine materializes in every summary
	PrimaryCurrency   domain.Currency
	SecondaryCurrency domain.Currency

	// Exchange rate providers (primary, then fallback)
	RatePrimaryURL  string
	RateFallbackURL string

	// Alert worker
	AlertSweepInterval time.Duration

	// Telegram sink (optional; empty token disables it)
	TelegramBotToken string
	TelegramChatID   int64
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:       getEnv("DATABASE_URL", ""),
		Port:              getEnv("PORT", "8080"),
		CORSOrigins:       strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000"), ","),
		Env:               getEnv("ENV", "development"),
		PrimaryCurrency:   domain.Currency(getEnv("PRIMARY_CURRENCY", "ARS")),
		SecondaryCurrency: domain.Currency(getEnv("SECONDARY_CURRENCY", "USD")),
		RatePrimaryURL:    getEnv("RATE_PRIMARY_URL", "https://dolarapi.com/v1/dolares/oficial"),
		RateFallbackURL:   getEnv("RATE_FALLBACK_URL", "https://open.er-api.com/v6/latest/USD"),
		TelegramBotToken:  getEnv("TELEGRAM_BOT_TOKEN", ""),
	}

	interval := getEnv("ALERT_SWEEP_INTERVAL", "15m")
	d, err := time.ParseDuration(interval)
	if err != nil {
		return nil, fmt.Errorf("invalid ALERT_SWEEP_INTERVAL: %w", err)
	}
	cfg.AlertSweepInterval = d

	if chatID := getEnv("TELEGRAM_CHAT_ID", ""); chatID != "" {
		id, err := strconv.ParseInt(chatID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid TELEGRAM_CHAT_ID: %w", err)
		}
		cfg.TelegramChatID = id
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// CurrencyPair returns the configured primary/secondary pair
func (c *Config) CurrencyPair() domain.CurrencyPair {
	return domain.CurrencyPair{Primary: c.PrimaryCurrency, Secondary: c.SecondaryCurrency}
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.PrimaryCurrency == c.SecondaryCurrency {
		return fmt.Errorf("PRIMARY_CURRENCY and SECONDARY_CURRENCY must differ")
	}
	if c.TelegramBotToken != "" && c.TelegramChatID == 0 {
		return fmt.Errorf("TELEGRAM_CHAT_ID is required when TELEGRAM_BOT_TOKEN is set")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
