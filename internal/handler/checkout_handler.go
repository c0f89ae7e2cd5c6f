package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/buildwithco/site-backend/internal/models"
	"github.com/buildwithco/site-backend/internal/service"
	"github.com/buildwithco/site-backend/pkg/utils"
)

type CheckoutHandler struct {
	checkoutService     *service.CheckoutService
	subscriptionService *service.SubscriptionService
	validator           *utils.Validator
	logger              *zap.Logger
}

func NewCheckoutHandler(checkoutService *service.CheckoutService, subscriptionService *service.SubscriptionService, validator *utils.Validator, logger *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService:     checkoutService,
		subscriptionService: subscriptionService,
		validator:           validator,
		logger:              logger,
	}
}

// CreateCheckout handles POST /api/checkout for the one-time tiers.
func (h *CheckoutHandler) CreateCheckout(c *fiber.Ctx) error {
	var req models.CreateCheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse("Invalid tier selected"))
	}

	session, err := h.checkoutService.CreateTierCheckout(c.BaseURL(), req)
	if err != nil {
		return h.checkoutError(c, err)
	}

	return c.JSON(session)
}

// CreateSubscription handles POST /api/subscribe for the recurring plans.
func (h *CheckoutHandler) CreateSubscription(c *fiber.Ctx) error {
	var req models.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse("Invalid request body"))
	}
	if err := h.validator.Struct(req); err != nil {
		// Validator messages name the offending field.
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse(err.Error()))
	}

	session, err := h.subscriptionService.CreateSubscriptionCheckout(c.BaseURL(), req)
	if err != nil {
		return h.checkoutError(c, err)
	}

	return c.JSON(session)
}

// checkoutError maps client input errors to 400 and everything else to 500,
// passing the processor's message through.
func (h *CheckoutHandler) checkoutError(c *fiber.Ctx, err error) error {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		return c.Status(fiber.StatusBadRequest).JSON(models.NewErrorResponse(verr.Message))
	}

	h.logger.Error("checkout request failed", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(models.NewErrorResponse(err.Error()))
}
