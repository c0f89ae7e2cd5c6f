package service

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/buildwithco/site-backend/internal/catalog"
	"github.com/buildwithco/site-backend/pkg/email"
	"github.com/buildwithco/site-backend/pkg/payment"
)

const eventCheckoutCompleted = "checkout.session.completed"

// NotifyService turns verified webhook events into operator and customer
// notification emails. It keeps no state: redelivered events are processed
// again (duplicate emails are accepted, see DESIGN.md).
type NotifyService struct {
	stripe  payment.SubscriptionRetriever
	mailer  email.Mailer
	catalog *catalog.Catalog
	logger  *zap.Logger
}

func NewNotifyService(stripe payment.SubscriptionRetriever, mailer email.Mailer, cat *catalog.Catalog, logger *zap.Logger) *NotifyService {
	return &NotifyService{
		stripe:  stripe,
		mailer:  mailer,
		catalog: cat,
		logger:  logger,
	}
}

// HandleEvent dispatches a verified Stripe event. Only completed checkout
// sessions trigger side effects; every other type is acknowledged and
// ignored to satisfy the at-least-once delivery contract. Email failures are
// logged and never propagated: a webhook retry would re-send notifications
// without fixing the email provider.
func (s *NotifyService) HandleEvent(event *stripe.Event) {
	if event.Type != eventCheckoutCompleted {
		return
	}

	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		s.logger.Error("could not decode checkout session from event",
			zap.String("event_id", event.ID), zap.Error(err))
		return
	}

	if session.Mode == stripe.CheckoutSessionModeSubscription {
		s.notifySubscription(&session)
	} else {
		s.notifyPurchase(&session)
	}
}

func (s *NotifyService) notifyPurchase(session *stripe.CheckoutSession) {
	customerName, customerEmail := customerIdentity(session)

	tier := session.Metadata["tier"]
	productName := session.Metadata["product_name"]

	tierItem, known := s.catalog.Tier(tier)
	if !known {
		tierItem, _ = s.catalog.Tier("starter")
	}
	if productName == "" {
		productName = tierItem.Name
	}

	amount := ""
	if session.AmountSubtotal > 0 {
		amount = catalog.FormatPrice(session.AmountSubtotal)
	} else if session.AmountTotal > 0 {
		amount = catalog.FormatPrice(session.AmountTotal)
	}

	paymentIntentID := ""
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	data := email.PurchaseEmail{
		CustomerName:       customerName,
		CustomerEmail:      customerEmail,
		FirstName:          firstName(customerName),
		ProductName:        productName,
		Amount:             amount,
		OrderRef:           orderRef(session.ID),
		ShippingAddress:    shippingAddress(session),
		PaymentIntentID:    paymentIntentID,
		PackageDescription: tierItem.Description,
	}

	if err := s.mailer.SendPurchaseNotification(data); err != nil {
		s.logger.Warn("operator purchase email not delivered",
			zap.String("order_ref", data.OrderRef), zap.Error(err))
	}

	if customerEmail != "" {
		if err := s.mailer.SendPurchaseConfirmation(data); err != nil {
			s.logger.Warn("customer purchase email not delivered",
				zap.String("order_ref", data.OrderRef), zap.Error(err))
		}
	}
}

func (s *NotifyService) notifySubscription(session *stripe.CheckoutSession) {
	customerName, customerEmail := customerIdentity(session)

	planName := session.Metadata["plan_name"]
	if planName == "" {
		planName = "Custom Software"
	}
	addons := session.Metadata["addons"]
	if addons == "" {
		addons = "none"
	}
	addonCount := session.Metadata["addon_count"]
	if addonCount == "" {
		addonCount = "0"
	}

	subscriptionID := ""
	if session.Subscription != nil {
		subscriptionID = session.Subscription.ID
	}

	data := email.SubscriptionEmail{
		CustomerName:   customerName,
		CustomerEmail:  customerEmail,
		FirstName:      firstName(customerName),
		PlanName:       planName,
		MonthlyTotal:   s.monthlyTotal(session, subscriptionID),
		Addons:         addons,
		AddonCount:     addonCount,
		OrderRef:       orderRef(session.ID),
		SubscriptionID: subscriptionID,
	}

	if err := s.mailer.SendSubscriptionNotification(data); err != nil {
		s.logger.Warn("operator subscription email not delivered",
			zap.String("order_ref", data.OrderRef), zap.Error(err))
	}

	if customerEmail != "" {
		if err := s.mailer.SendSubscriptionConfirmation(data); err != nil {
			s.logger.Warn("customer subscription email not delivered",
				zap.String("order_ref", data.OrderRef), zap.Error(err))
		}
	}
}

// monthlyTotal sums unit price x quantity across the subscription's items.
// When the lookup fails it falls back to the session's recorded total.
func (s *NotifyService) monthlyTotal(session *stripe.CheckoutSession, subscriptionID string) string {
	if subscriptionID == "" {
		return ""
	}

	sub, err := s.stripe.GetSubscription(subscriptionID)
	if err != nil || sub.Items == nil {
		s.logger.Warn("could not resolve subscription items for monthly total",
			zap.String("subscription_id", subscriptionID), zap.Error(err))
		if session.AmountTotal > 0 {
			return catalog.FormatMonthly(session.AmountTotal)
		}
		return ""
	}

	var totalCents int64
	for _, item := range sub.Items.Data {
		quantity := item.Quantity
		if quantity == 0 {
			quantity = 1
		}
		if item.Price != nil {
			totalCents += item.Price.UnitAmount * quantity
		}
	}
	return catalog.FormatMonthly(totalCents)
}

func customerIdentity(session *stripe.CheckoutSession) (name, email string) {
	name = "No name provided"
	if session.CustomerDetails != nil {
		if session.CustomerDetails.Name != "" {
			name = session.CustomerDetails.Name
		}
		email = session.CustomerDetails.Email
	}
	return name, email
}

func firstName(fullName string) string {
	fields := strings.Fields(fullName)
	if len(fields) == 0 {
		return fullName
	}
	return fields[0]
}

// orderRef is the trailing 8 characters of the session id, uppercased,
// used as a short human-readable reference in emails.
func orderRef(sessionID string) string {
	if len(sessionID) > 8 {
		sessionID = sessionID[len(sessionID)-8:]
	}
	return strings.ToUpper(sessionID)
}

func shippingAddress(session *stripe.CheckoutSession) string {
	shipping := session.ShippingDetails
	if shipping == nil || shipping.Address == nil {
		return ""
	}
	addr := shipping.Address
	return fmt.Sprintf("%s, %s, %s, %s %s",
		shipping.Name, addr.Line1, addr.City, addr.State, addr.PostalCode)
}
