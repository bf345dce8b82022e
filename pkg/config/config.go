package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MigrationsPath string

	// Supabase/hosted Postgres convenience:
	// - DATABASE_URL: runtime connection (often PgBouncer/pooler)
	// - DIRECT_URL: direct connection for migrations
	DatabaseURL string
	DirectURL   string

	// PublicBaseURL is the externally reachable URL for this backend (required for webhook registration).
	// Example: https://your-ngrok-subdomain.ngrok-free.app
	PublicBaseURL string

	DB DBConfig

	Shopify ShopifyConfig

	// StrictWebhookVerification controls what happens when SHOPIFY_WEBHOOK_SECRET
	// is not set. The historical behavior is fail-open: deliveries are accepted
	// unverified with a logged warning, which keeps local dev friction-free.
	// Set STRICT_WEBHOOK_VERIFICATION=true to reject instead.
	StrictWebhookVerification bool

	// DashboardAllowedOrigins is a comma-separated allowlist of origins allowed to call
	// the merchant dashboard endpoints. Example:
	//   https://dashboard.yourapp.com,http://localhost:5173
	DashboardAllowedOrigins []string
}

type DBConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
}

type ShopifyConfig struct {
	APIKey      string
	APISecret   string
	Scopes      string
	RedirectURL string

	WebhookSecret string

	APIVersion string
}

func Load() Config {
	// Convenience for local dev: load variables from .env if present.
	// In production, rely on real environment variables.
	_ = godotenv.Load()

	// Cloud Run sets PORT. Prefer it when HTTP_ADDR isn't explicitly set.
	httpAddr := os.Getenv("HTTP_ADDR")
	if httpAddr == "" {
		if port := os.Getenv("PORT"); port != "" {
			httpAddr = ":" + port
		} else {
			httpAddr = ":8081"
		}
	}

	return Config{
		AppEnv:         env("APP_ENV", "dev"),
		HTTPAddr:       httpAddr,
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		DirectURL:      os.Getenv("DIRECT_URL"),
		PublicBaseURL:  os.Getenv("PUBLIC_BASE_URL"),
		DB: DBConfig{
			Host:     env("DB_HOST", "localhost"),
			Port:     env("DB_PORT", "5432"),
			Name:     env("DB_NAME", "b3acon"),
			User:     env("DB_USER", "b3acon"),
			Password: env("DB_PASSWORD", "b3acon"),
			SSLMode:  env("DB_SSLMODE", "disable"),
		},
		Shopify: ShopifyConfig{
			APIKey:        os.Getenv("SHOPIFY_API_KEY"),
			APISecret:     os.Getenv("SHOPIFY_API_SECRET"),
			Scopes:        os.Getenv("SHOPIFY_SCOPES"),
			RedirectURL:   os.Getenv("SHOPIFY_REDIRECT_URL"),
			WebhookSecret: os.Getenv("SHOPIFY_WEBHOOK_SECRET"),
			APIVersion:    env("SHOPIFY_API_VERSION", "2025-10"),
		},

		StrictWebhookVerification: envBool("STRICT_WEBHOOK_VERIFICATION", false),

		DashboardAllowedOrigins: envList("DASHBOARD_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:4173"),
	}
}

func env(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func envBool(key string, fallback bool) bool {
	v := strings.TrimSpace(strings.ToLower(os.Getenv(key)))
	if v == "" {
		return fallback
	}
	return v == "1" || v == "true" || v == "yes"
}

func envList(key, fallbackCSV string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = fallbackCSV
	}
	var out []string
	for _, s := range strings.Split(v, ",") {
		s = strings.TrimSpace(s)
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
