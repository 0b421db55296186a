// Package config handles application configuration.
//
// Go Pattern: Configuration via environment variables with sensible defaults.
// In Go, we typically use structs to hold configuration, and a function to
// load values from environment variables. This is different from Ruby's
// Rails.application.config or JavaScript's dotenv — Go keeps it explicit
// and in one place, passed by reference into the components that need it.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration.
// Go Pattern: We use exported (capitalized) fields so other packages can read them.
type Config struct {
	// Server settings
	Port    string
	GinMode string // "debug", "release", or "test"

	// Public base URL used to build Stripe redirect targets
	AppURL string

	// OpenAI settings (credit-report analysis)
	OpenAIAPIKey string
	OpenAIModel  string

	// Stripe settings
	StripeSecretKey string
	// When true, /success checks the checkout session's payment status
	// before granting access. When false the original soft-paywall behavior
	// applies: the success callback redirects unconditionally.
	StripeVerifyPayments bool

	// Session cookie signing key
	SessionSecret string

	// Storage locations
	UploadDir string // Uploaded credit reports
	CacheDir  string // Per-analysis-ID artifact directories

	// External tools
	WkhtmltopdfPath string // Path to the wkhtmltopdf binary for PDF export

	// Retention policy for uploads and cached artifacts.
	// Zero disables reaping entirely (entries are kept forever).
	RetentionTTL  time.Duration
	SweepInterval time.Duration

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from environment variables with sensible defaults.
//
// Go Pattern: Functions that can fail return (value, error). This is Go's
// alternative to exceptions — the caller MUST handle the error.
func Load() (*Config, error) {
	// Best-effort .env loading for local development. Missing file is fine —
	// production supplies real environment variables.
	_ = godotenv.Load()

	cfg := &Config{
		// Server defaults
		Port:    getEnv("PORT", "5000"),
		GinMode: getEnv("GIN_MODE", "debug"),

		// Public URL — used verbatim in Stripe success/cancel redirects
		AppURL: getEnv("APP_URL", "http://127.0.0.1:5000"),

		// OpenAI
		OpenAIAPIKey: getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:  getEnv("OPENAI_MODEL", "gpt-4o-2024-08-06"),

		// Stripe
		StripeSecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
		StripeVerifyPayments: getEnvBool("STRIPE_VERIFY_PAYMENTS", false),

		// Session signing
		SessionSecret: getEnv("SESSION_SECRET", "dev-session-secret-change-in-production"),

		// Storage
		UploadDir: getEnv("UPLOAD_DIR", "uploads"),
		CacheDir:  getEnv("CACHE_DIR", "user_data"),

		// wkhtmltopdf — try common locations
		WkhtmltopdfPath: getEnv("WKHTMLTOPDF_PATH", findWkhtmltopdf()),

		// Retention defaults: reap after a day, sweep hourly
		RetentionTTL:  getEnvDuration("RETENTION_TTL", 24*time.Hour),
		SweepInterval: getEnvDuration("SWEEP_INTERVAL", time.Hour),

		// CORS — in production, set this to your frontend URL
		AllowedOrigins: []string{
			getEnv("CORS_ORIGIN", "http://localhost:5173"),
		},
	}

	// Security: session secret MUST be set in production mode.
	// In release mode, we refuse to start with the default secret.
	if cfg.GinMode == "release" && cfg.SessionSecret == "dev-session-secret-change-in-production" {
		return nil, fmt.Errorf("SESSION_SECRET must be set in production; refusing to start with default secret")
	}

	return cfg, nil
}

// getEnv reads an environment variable with a fallback default.
// Go Pattern: Small helper functions are idiomatic. Go favors simple,
// composable functions over complex frameworks.
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// getEnvBool reads a boolean environment variable with a fallback.
func getEnvBool(key string, fallback bool) bool {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	val, err := strconv.ParseBool(str)
	if err != nil {
		return fallback
	}
	return val
}

// getEnvDuration reads a duration environment variable (e.g. "24h", "30m").
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	str := getEnv(key, "")
	if str == "" {
		return fallback
	}
	val, err := time.ParseDuration(str)
	if err != nil {
		return fallback
	}
	return val
}

// findWkhtmltopdf checks common locations for the wkhtmltopdf binary.
func findWkhtmltopdf() string {
	paths := []string{
		"/usr/local/bin/wkhtmltopdf",
		"/usr/bin/wkhtmltopdf",
		"/opt/homebrew/bin/wkhtmltopdf",
		"/home/linuxbrew/.linuxbrew/bin/wkhtmltopdf",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
