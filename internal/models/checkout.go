package models

// CreateCheckoutRequest is the body of POST /api/checkout. Niche is free-text
// metadata carried onto the session for later reconciliation.
type CreateCheckoutRequest struct {
	Tier  string `json:"tier" validate:"required"`
	Niche string `json:"niche"`
}

// AddonSelection is one requested add-on. Quantity is only honored for
// add-ons that support it and is clamped server-side.
type AddonSelection struct {
	ID       string `json:"id" validate:"required"`
	Quantity int64  `json:"quantity"`
}

// CreateSubscriptionRequest is the body of POST /api/subscribe.
type CreateSubscriptionRequest struct {
	Plan                  string           `json:"plan" validate:"required"`
	IncludeUnlimitedEdits bool             `json:"includeUnlimitedEdits"`
	SelectedAddons        []AddonSelection `json:"selectedAddons" validate:"dive"`
	CustomerEmail         string           `json:"customerEmail" validate:"omitempty,email"`
}

// CheckoutSession is the reference to a session created at Stripe. The
// browser is redirected to URL; nothing else about the session is kept here.
type CheckoutSession struct {
	SessionID string `json:"sessionId"`
	URL       string `json:"url"`
}
