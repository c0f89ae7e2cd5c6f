package service

import (
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/buildwithco/site-backend/internal/catalog"
	"github.com/buildwithco/site-backend/internal/models"
	"github.com/buildwithco/site-backend/pkg/payment"
)

// CheckoutService builds one-time purchase sessions for the AI Employee tiers.
type CheckoutService struct {
	stripe  payment.SessionCreator
	catalog *catalog.Catalog
	live    bool
	logger  *zap.Logger
}

func NewCheckoutService(stripe payment.SessionCreator, cat *catalog.Catalog, live bool, logger *zap.Logger) *CheckoutService {
	return &CheckoutService{
		stripe:  stripe,
		catalog: cat,
		live:    live,
		logger:  logger,
	}
}

// CreateTierCheckout validates the tier selection and creates a payment-mode
// checkout session. The niche is free-text metadata kept on the session for
// reconciliation; it defaults to "general".
func (s *CheckoutService) CreateTierCheckout(origin string, req models.CreateCheckoutRequest) (*models.CheckoutSession, error) {
	tier, ok := s.catalog.Tier(req.Tier)
	if !ok {
		return nil, &ValidationError{Message: "Invalid tier selected"}
	}

	niche := req.Niche
	if niche == "" {
		niche = "general"
	}

	// {CHECKOUT_SESSION_ID} is substituted by Stripe on redirect.
	successURL := origin + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"
	cancelURL := origin + "/checkout/cancel"

	params := &stripe.CheckoutSessionParams{
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(tier.PriceID(s.live)),
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:               stripe.String(successURL),
		CancelURL:                stripe.String(cancelURL),
		CustomerCreation:         stripe.String(string(stripe.CheckoutSessionCustomerCreationAlways)),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionRequired)),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice([]string{"US", "CA"}),
		},
		AllowPromotionCodes: stripe.Bool(true),
	}
	params.AddMetadata("tier", tier.Key)
	params.AddMetadata("niche", niche)
	params.AddMetadata("product_name", tier.Name)

	sess, err := s.stripe.CreateSession(params)
	if err != nil {
		s.logger.Error("checkout session creation failed",
			zap.String("tier", tier.Key), zap.Error(err))
		return nil, err
	}

	s.logger.Info("checkout session created",
		zap.String("tier", tier.Key), zap.String("session_id", sess.ID))

	return &models.CheckoutSession{SessionID: sess.ID, URL: sess.URL}, nil
}
