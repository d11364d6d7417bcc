package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	// Database. Sqlite is the default; setting DB_HOST switches to Postgres.
	DBPath     string `env:"DB_PATH" envDefault:"./notifier.db"`
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"notifier"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	// WhatsApp Cloud API credentials.
	WhatsAppToken   string `env:"WHATSAPP_CLOUD_TOKEN"`
	PhoneNumberID   string `env:"WHATSAPP_CLOUD_PHONE_ID"`
	GraphAPIVersion string `env:"WHATSAPP_CLOUD_API_VERSION" envDefault:"v22.0"`

	// Pricing (server-side copy so audit rows record it).
	Currency        string  `env:"CURRENCY" envDefault:"INR"`
	DefaultCategory string  `env:"DEFAULT_PRICING_CATEGORY" envDefault:"utility"`
	PriceService    float64 `env:"PRICE_INR_SERVICE" envDefault:"0"`
	PriceUtility    float64 `env:"PRICE_INR_UTILITY" envDefault:"0"`
	PriceMarketing  float64 `env:"PRICE_INR_MARKETING" envDefault:"0"`
	// StrictPricing makes an unknown pricing category an error instead of
	// a zero-cost estimate.
	StrictPricing bool `env:"STRICT_PRICING" envDefault:"false"`

	SendTimeout time.Duration `env:"SEND_TIMEOUT" envDefault:"20s"`
	SendWorkers int           `env:"SEND_WORKERS" envDefault:"8"`

	CSVPath string `env:"CSV_PATH" envDefault:"data/customers.csv"`
}

func Load() (*Config, error) {
	// Missing .env is fine; the environment may be set directly.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	return cfg, nil
}

// UsePostgres reports whether Postgres connection settings were provided.
func (c *Config) UsePostgres() bool {
	return c.DBHost != ""
}

func (c *Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode)
}
