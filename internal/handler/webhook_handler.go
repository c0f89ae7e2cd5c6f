package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stripe/stripe-go/v74/webhook"
	"go.uber.org/zap"

	"github.com/buildwithco/site-backend/internal/service"
)

// WebhookHandler is the sole authenticated inbound surface: nothing in the
// event is trusted before the signature over the raw body verifies.
type WebhookHandler struct {
	notifyService *service.NotifyService
	webhookSecret string
	logger        *zap.Logger
}

func NewWebhookHandler(notifyService *service.NotifyService, webhookSecret string, logger *zap.Logger) *WebhookHandler {
	return &WebhookHandler{
		notifyService: notifyService,
		webhookSecret: webhookSecret,
		logger:        logger,
	}
}

// HandleStripeWebhook handles POST /api/payments/webhook. Once the signature
// verifies it always answers 200: Stripe redelivers on anything else, and a
// retry would duplicate notification emails without fixing the underlying
// failure.
func (h *WebhookHandler) HandleStripeWebhook(c *fiber.Ctx) error {
	payload := c.Body()
	signature := c.Get("Stripe-Signature")

	if signature == "" {
		return c.Status(fiber.StatusBadRequest).SendString("No signature")
	}

	// The raw body bytes are required here: re-serializing a parsed object
	// would break signature verification.
	event, err := webhook.ConstructEventWithOptions(payload, signature, h.webhookSecret,
		webhook.ConstructEventOptions{
			IgnoreAPIVersionMismatch: true,
		})
	if err != nil {
		h.logger.Warn("webhook signature verification failed", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).SendString("Invalid signature")
	}

	h.notifyService.HandleEvent(&event)

	return c.JSON(fiber.Map{"received": true})
}
