package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/buildwithco/site-backend/internal/catalog"
	"github.com/buildwithco/site-backend/internal/models"
	"github.com/buildwithco/site-backend/pkg/payment"
)

const maxAddonQuantity = 20

// SubscriptionService builds subscription-mode checkout sessions for the
// Custom App base plans and their add-ons.
type SubscriptionService struct {
	stripe  payment.SessionCreator
	catalog *catalog.Catalog
	live    bool
	logger  *zap.Logger
}

func NewSubscriptionService(stripe payment.SessionCreator, cat *catalog.Catalog, live bool, logger *zap.Logger) *SubscriptionService {
	return &SubscriptionService{
		stripe:  stripe,
		catalog: cat,
		live:    live,
		logger:  logger,
	}
}

// CreateSubscriptionCheckout validates the plan and every add-on selection
// before any remote call, so a request with one bad add-on is rejected
// wholesale. Line items go base plan first, then the unlimited-edits
// extension when requested, then add-ons in request order.
func (s *SubscriptionService) CreateSubscriptionCheckout(origin string, req models.CreateSubscriptionRequest) (*models.CheckoutSession, error) {
	basePlan, ok := s.catalog.BasePlan(req.Plan)
	if !ok {
		return nil, &ValidationError{Message: `Invalid plan selected. Choose "hosting" or "unlimited-edits".`}
	}

	lineItems := []*stripe.CheckoutSessionLineItemParams{
		{
			Price:    stripe.String(basePlan.PriceID(s.live)),
			Quantity: stripe.Int64(1),
		},
	}

	var addonNames []string

	if req.IncludeUnlimitedEdits && basePlan.Key != "unlimited-edits" {
		edits, _ := s.catalog.BasePlan("unlimited-edits")
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(edits.PriceID(s.live)),
			Quantity: stripe.Int64(1),
		})
		addonNames = append(addonNames, edits.Name)
	}

	for _, selection := range req.SelectedAddons {
		addon, ok := s.catalog.Addon(selection.ID)
		if !ok {
			return nil, &ValidationError{Message: fmt.Sprintf("Invalid add-on: %s", selection.ID)}
		}

		quantity := clampQuantity(addon, selection.Quantity)
		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			Price:    stripe.String(addon.PriceID(s.live)),
			Quantity: stripe.Int64(quantity),
		})

		name := addon.Name
		if quantity > 1 {
			name = fmt.Sprintf("%s (x%d)", addon.Name, quantity)
		}
		addonNames = append(addonNames, name)
	}

	addons := "none"
	if len(addonNames) > 0 {
		addons = strings.Join(addonNames, ", ")
	}

	// Stripe surfaces subscription metadata independently of the originating
	// session in later queries, so both carry the same fields.
	metadata := map[string]string{
		"plan":        basePlan.Key,
		"plan_name":   basePlan.Name,
		"addons":      addons,
		"addon_count": strconv.Itoa(len(addonNames)),
	}

	successURL := origin + "/checkout/subscription-success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := origin + "/custom-software?cancelled=true"

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		Mode:                     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		LineItems:                lineItems,
		SuccessURL:               stripe.String(successURL),
		CancelURL:                stripe.String(cancelURL),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		AllowPromotionCodes:      stripe.Bool(true),
		SubscriptionData: &stripe.CheckoutSessionSubscriptionDataParams{
			Metadata: metadata,
		},
	}
	for key, value := range metadata {
		params.AddMetadata(key, value)
	}

	if req.CustomerEmail != "" {
		params.CustomerEmail = stripe.String(req.CustomerEmail)
	}

	sess, err := s.stripe.CreateSession(params)
	if err != nil {
		s.logger.Error("subscription session creation failed",
			zap.String("plan", basePlan.Key), zap.Error(err))
		return nil, err
	}

	s.logger.Info("subscription session created",
		zap.String("plan", basePlan.Key),
		zap.Int("addons", len(addonNames)),
		zap.String("session_id", sess.ID))

	return &models.CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}

// clampQuantity keeps quantity-capable add-ons within [1, maxAddonQuantity]
// and forces everything else to exactly 1.
func clampQuantity(addon catalog.Item, requested int64) int64 {
	if !addon.SupportsQuantity {
		return 1
	}
	if requested < 1 {
		return 1
	}
	if requested > maxAddonQuantity {
		return maxAddonQuantity
	}
	return requested
}
