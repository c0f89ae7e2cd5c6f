package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/buildwithco/site-backend/internal/catalog"
)

// PricingHandler serves the browser-safe catalog projection (no Stripe IDs)
// for the pricing pages.
type PricingHandler struct {
	catalog *catalog.Catalog
}

func NewPricingHandler(cat *catalog.Catalog) *PricingHandler {
	return &PricingHandler{catalog: cat}
}

func (h *PricingHandler) GetClientPricing(c *fiber.Ctx) error {
	return c.JSON(h.catalog.ClientView())
}
