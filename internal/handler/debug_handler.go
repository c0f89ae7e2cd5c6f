package handler

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/buildwithco/site-backend/internal/config"
	"github.com/buildwithco/site-backend/internal/models"
)

// DebugHandler serves GET /api/debug-env: presence flags and a short key
// prefix for the expected secrets, never full values. The route is only
// served when DEBUG_TOKEN is configured and the caller presents it.
type DebugHandler struct {
	cfg *config.Config
}

func NewDebugHandler(cfg *config.Config) *DebugHandler {
	return &DebugHandler{cfg: cfg}
}

func (h *DebugHandler) GetEnvStatus(c *fiber.Ctx) error {
	if h.cfg.DebugToken == "" {
		return c.SendStatus(fiber.StatusNotFound)
	}

	token := strings.TrimPrefix(c.Get("Authorization"), "Bearer ")
	if subtle.ConstantTimeCompare([]byte(token), []byte(h.cfg.DebugToken)) != 1 {
		return c.Status(fiber.StatusUnauthorized).JSON(models.NewErrorResponse("Unauthorized"))
	}

	keyPrefix := "NOT SET"
	if h.cfg.Stripe.SecretKey != "" {
		keyPrefix = h.cfg.Stripe.SecretKey
		if len(keyPrefix) > 8 {
			keyPrefix = keyPrefix[:8]
		}
	}

	return c.JSON(fiber.Map{
		"hasStripeKey":     h.cfg.Stripe.SecretKey != "",
		"stripeKeyPrefix":  keyPrefix,
		"hasWebhookSecret": h.cfg.Stripe.WebhookSecret != "",
		"hasResendKey":     h.cfg.Email.APIKey != "",
	})
}
