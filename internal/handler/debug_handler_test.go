package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/buildwithco/site-backend/internal/config"
)

func newDebugApp(cfg *config.Config) *fiber.App {
	app := fiber.New()
	app.Get("/api/debug-env", NewDebugHandler(cfg).GetEnvStatus)
	return app
}

func getDebugEnv(app *fiber.App, authorization string) (int, map[string]interface{}) {
	req := httptest.NewRequest("GET", "/api/debug-env", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	if err != nil {
		return 0, nil
	}
	defer resp.Body.Close()

	var body map[string]interface{}
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body
}

func TestDebugEnv_DisabledWithoutToken(t *testing.T) {
	app := newDebugApp(&config.Config{})

	status, _ := getDebugEnv(app, "")
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestDebugEnv_RejectsBadToken(t *testing.T) {
	cfg := &config.Config{DebugToken: "s3cret"}
	app := newDebugApp(cfg)

	status, _ := getDebugEnv(app, "Bearer wrong")
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = getDebugEnv(app, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestDebugEnv_ReportsPresenceFlagsOnly(t *testing.T) {
	cfg := &config.Config{DebugToken: "s3cret"}
	cfg.Stripe.SecretKey = "sk_test_abcdef123456"
	cfg.Stripe.WebhookSecret = "whsec_123"
	app := newDebugApp(cfg)

	status, body := getDebugEnv(app, "Bearer s3cret")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, body["hasStripeKey"])
	assert.Equal(t, "sk_test_", body["stripeKeyPrefix"])
	assert.Equal(t, true, body["hasWebhookSecret"])
	assert.Equal(t, false, body["hasResendKey"])
}

func TestDebugEnv_NoKeyConfigured(t *testing.T) {
	app := newDebugApp(&config.Config{DebugToken: "s3cret"})

	status, body := getDebugEnv(app, "Bearer s3cret")

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, body["hasStripeKey"])
	assert.Equal(t, "NOT SET", body["stripeKeyPrefix"])
}
