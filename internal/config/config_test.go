package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setRequiredEnv(t *testing.T) {
	t.Setenv("STRIPE_SECRET_KEY", "sk_test_123")
	t.Setenv("STRIPE_WEBHOOK_SECRET", "whsec_123")
	t.Setenv("RESEND_API_KEY", "re_123")
	t.Setenv("EMAIL_FROM_ADDRESS", "notifications@example.com")
	t.Setenv("OPERATOR_EMAIL", "owner@example.com")
}

func TestLoad_Complete(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "9090")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "sk_test_123", cfg.Stripe.SecretKey)
	assert.Equal(t, "9090", cfg.Port)
	assert.False(t, cfg.LiveMode())
}

func TestLoad_DefaultPort(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("PORT", "")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
}

func TestLoad_MissingSecretsFailFast(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STRIPE_SECRET_KEY", "")
	t.Setenv("RESEND_API_KEY", "")

	_, err := Load()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "STRIPE_SECRET_KEY")
	assert.Contains(t, err.Error(), "RESEND_API_KEY")
}

func TestLiveMode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("STRIPE_SECRET_KEY", "sk_live_999")

	cfg, err := Load()

	assert.NoError(t, err)
	assert.True(t, cfg.LiveMode())
}
