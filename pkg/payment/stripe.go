package payment

import (
	"github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/checkout/session"
	"github.com/stripe/stripe-go/v74/subscription"
)

// SessionCreator creates a checkout session at the payment processor.
type SessionCreator interface {
	CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

// SubscriptionRetriever fetches a subscription with its line items.
type SubscriptionRetriever interface {
	GetSubscription(id string) (*stripe.Subscription, error)
}

// StripeService is the real Stripe-backed implementation.
type StripeService struct {
	secretKey string
}

func NewStripeService(secretKey string) *StripeService {
	stripe.Key = secretKey
	return &StripeService{
		secretKey: secretKey,
	}
}

func (s *StripeService) CreateSession(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	return session.New(params)
}

func (s *StripeService) GetSubscription(id string) (*stripe.Subscription, error) {
	return subscription.Get(id, nil)
}
