package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port          string `envconfig:"PORT" default:"8080"`
	SnapshotPath  string `envconfig:"SNAPSHOT_PATH" default:"data/storefront-v4.json"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD" default:"mari123"`

	// Remote sync. Supabase credentials take precedence; a plain DSN enables
	// the direct Postgres mirror instead. Neither configured means
	// local-only operation.
	SupabaseURL     string `envconfig:"SUPABASE_URL"`
	SupabaseAnonKey string `envconfig:"SUPABASE_ANON_KEY"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	MigrationsPath  string `envconfig:"MIGRATIONS_PATH" default:"migrations"`

	// Payment. Without an API URL the simulated provider is used.
	PaymentAPIURL         string        `envconfig:"PAYMENT_API_URL"`
	SimulatedPaymentDelay time.Duration `envconfig:"SIMULATED_PAYMENT_DELAY" default:"2s"`

	// EmailJS. Without credentials the log-only sender is used.
	EmailJSServiceID       string `envconfig:"EMAILJS_SERVICE_ID"`
	EmailJSTemplateID      string `envconfig:"EMAILJS_TEMPLATE_ID"`
	EmailJSAdminTemplateID string `envconfig:"EMAILJS_ADMIN_TEMPLATE_ID"`
	EmailJSPublicKey       string `envconfig:"EMAILJS_PUBLIC_KEY"`
	AdminEmail             string `envconfig:"ADMIN_EMAIL" default:"admin@marishandmade.co.uk"`
}

// Load reads .env when present, then the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment config: %w", err)
	}
	return &cfg, nil
}

// SupabaseConfigured is the remote-sync capability check: both credential
// strings must be present.
func (c *Config) SupabaseConfigured() bool {
	return c.SupabaseURL != "" && c.SupabaseAnonKey != ""
}

// EmailJSConfigured reports whether the EmailJS sender can be used.
func (c *Config) EmailJSConfigured() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSPublicKey != ""
}
