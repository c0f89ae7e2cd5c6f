package config

import (
	"fmt"
	"os"
	"strings"
)

type StripeConfig struct {
	SecretKey     string
	WebhookSecret string
}

type EmailConfig struct {
	APIKey        string
	FromAddress   string
	FromName      string
	OperatorEmail string
}

type Config struct {
	Stripe       StripeConfig
	Email        EmailConfig
	DebugToken   string
	Port         string
	AllowOrigins string
}

// Load resolves the full configuration from the environment once, at startup.
// Missing required secrets are an error here so the process can exit instead
// of failing on the first request that needs them.
func Load() (*Config, error) {
	cfg := &Config{}

	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.Stripe.WebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")

	cfg.Email.APIKey = os.Getenv("RESEND_API_KEY")
	cfg.Email.FromAddress = os.Getenv("EMAIL_FROM_ADDRESS")
	cfg.Email.FromName = os.Getenv("EMAIL_FROM_NAME")
	cfg.Email.OperatorEmail = os.Getenv("OPERATOR_EMAIL")

	cfg.DebugToken = os.Getenv("DEBUG_TOKEN")
	cfg.AllowOrigins = os.Getenv("ALLOW_ORIGINS")

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	required := []struct {
		name  string
		value string
	}{
		{"STRIPE_SECRET_KEY", cfg.Stripe.SecretKey},
		{"STRIPE_WEBHOOK_SECRET", cfg.Stripe.WebhookSecret},
		{"RESEND_API_KEY", cfg.Email.APIKey},
		{"EMAIL_FROM_ADDRESS", cfg.Email.FromAddress},
		{"OPERATOR_EMAIL", cfg.Email.OperatorEmail},
	}
	var missing []string
	for _, env := range required {
		if env.value == "" {
			missing = append(missing, env.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// LiveMode reports whether the configured Stripe key is a live-mode key.
// Test keys select the test price IDs from the catalog.
func (c *Config) LiveMode() bool {
	return strings.HasPrefix(c.Stripe.SecretKey, "sk_live")
}
