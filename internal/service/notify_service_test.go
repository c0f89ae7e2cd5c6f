package service

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v74"
	"go.uber.org/zap"

	"github.com/buildwithco/site-backend/internal/catalog"
	"github.com/buildwithco/site-backend/pkg/email"
)

// MockMailer is a mock implementation of email.Mailer.
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendPurchaseNotification(p email.PurchaseEmail) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockMailer) SendPurchaseConfirmation(p email.PurchaseEmail) error {
	args := m.Called(p)
	return args.Error(0)
}

func (m *MockMailer) SendSubscriptionNotification(s email.SubscriptionEmail) error {
	args := m.Called(s)
	return args.Error(0)
}

func (m *MockMailer) SendSubscriptionConfirmation(s email.SubscriptionEmail) error {
	args := m.Called(s)
	return args.Error(0)
}

// MockRetriever is a mock implementation of payment.SubscriptionRetriever.
type MockRetriever struct {
	mock.Mock
}

func (m *MockRetriever) GetSubscription(id string) (*stripe.Subscription, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.Subscription), args.Error(1)
}

func completedEvent(t *testing.T, sessionJSON string) *stripe.Event {
	t.Helper()
	return &stripe.Event{
		ID:   "evt_test_1",
		Type: "checkout.session.completed",
		Data: &stripe.EventData{Raw: json.RawMessage(sessionJSON)},
	}
}

func TestHandleEvent_IgnoresOtherEventTypes(t *testing.T) {
	mailer := new(MockMailer)
	retriever := new(MockRetriever)
	svc := NewNotifyService(retriever, mailer, catalog.Default(), zap.NewNop())

	svc.HandleEvent(&stripe.Event{
		ID:   "evt_test_2",
		Type: "checkout.session.expired",
		Data: &stripe.EventData{Raw: json.RawMessage(`{"id":"cs_1","mode":"payment"}`)},
	})

	mailer.AssertNotCalled(t, "SendPurchaseNotification", mock.Anything)
	mailer.AssertNotCalled(t, "SendPurchaseConfirmation", mock.Anything)
	mailer.AssertNotCalled(t, "SendSubscriptionNotification", mock.Anything)
	mailer.AssertNotCalled(t, "SendSubscriptionConfirmation", mock.Anything)
}

func TestHandleEvent_OneTimePurchaseWithCustomerEmail(t *testing.T) {
	mailer := new(MockMailer)
	retriever := new(MockRetriever)
	svc := NewNotifyService(retriever, mailer, catalog.Default(), zap.NewNop())

	mailer.On("SendPurchaseNotification", mock.MatchedBy(func(p email.PurchaseEmail) bool {
		return p.CustomerName == "Jane Doe" &&
			p.CustomerEmail == "jane@example.com" &&
			p.FirstName == "Jane" &&
			p.ProductName == "AI Employee Starter" &&
			p.Amount == "$2,997" &&
			p.OrderRef == "A1B2C3D4" &&
			p.ShippingAddress == "Jane Doe, 1 Main St, Austin, TX 78701" &&
			p.PaymentIntentID == "pi_123"
	})).Return(nil)
	mailer.On("SendPurchaseConfirmation", mock.MatchedBy(func(p email.PurchaseEmail) bool {
		return p.PackageDescription != "" && p.OrderRef == "A1B2C3D4"
	})).Return(nil)

	svc.HandleEvent(completedEvent(t, `{
		"id": "cs_test_a1b2c3d4",
		"mode": "payment",
		"amount_subtotal": 299700,
		"metadata": {"tier": "starter", "niche": "general", "product_name": "AI Employee Starter"},
		"customer_details": {"email": "jane@example.com", "name": "Jane Doe"},
		"payment_intent": "pi_123",
		"shipping_details": {
			"name": "Jane Doe",
			"address": {"line1": "1 Main St", "city": "Austin", "state": "TX", "postal_code": "78701"}
		}
	}`))

	mailer.AssertExpectations(t)
	mailer.AssertNumberOfCalls(t, "SendPurchaseNotification", 1)
	mailer.AssertNumberOfCalls(t, "SendPurchaseConfirmation", 1)
}

func TestHandleEvent_OneTimePurchaseWithoutCustomerEmail(t *testing.T) {
	mailer := new(MockMailer)
	retriever := new(MockRetriever)
	svc := NewNotifyService(retriever, mailer, catalog.Default(), zap.NewNop())

	mailer.On("SendPurchaseNotification", mock.Anything).Return(nil)

	svc.HandleEvent(completedEvent(t, `{
		"id": "cs_test_x9y8z7w6",
		"mode": "payment",
		"amount_total": 449700,
		"metadata": {"tier": "pro"}
	}`))

	mailer.AssertNumberOfCalls(t, "SendPurchaseNotification", 1)
	mailer.AssertNotCalled(t, "SendPurchaseConfirmation", mock.Anything)
}

func TestHandleEvent_OneTimeEmailFailureIsSwallowed(t *testing.T) {
	mailer := new(MockMailer)
	retriever := new(MockRetriever)
	svc := NewNotifyService(retriever, mailer, catalog.Default(), zap.NewNop())

	mailer.On("SendPurchaseNotification", mock.Anything).Return(errors.New("provider down"))
	mailer.On("SendPurchaseConfirmation", mock.Anything).Return(errors.New("provider down"))

	// Must not panic or propagate; the webhook handler still answers 200.
	svc.HandleEvent(completedEvent(t, `{
		"id": "cs_test_failmail",
		"mode": "payment",
		"metadata": {"tier": "starter"},
		"customer_details": {"email": "jane@example.com", "name": "Jane Doe"}
	}`))

	mailer.AssertExpectations(t)
}

func TestHandleEvent_SubscriptionMonthlyTotalFromItems(t *testing.T) {
	mailer := new(MockMailer)
	retriever := new(MockRetriever)
	svc := NewNotifyService(retriever, mailer, catalog.Default(), zap.NewNop())

	retriever.On("GetSubscription", "sub_123").Return(&stripe.Subscription{
		ID: "sub_123",
		Items: &stripe.SubscriptionItemList{
			Data: []*stripe.SubscriptionItem{
				{Price: &stripe.Price{UnitAmount: 5000}, Quantity: 1},
				{Price: &stripe.Price{UnitAmount: 2500}, Quantity: 3},
			},
		},
	}, nil)

	mailer.On("SendSubscriptionNotification", mock.MatchedBy(func(s email.SubscriptionEmail) bool {
		return s.PlanName == "Custom App - Hosting/Management" &&
			s.MonthlyTotal == "$125/mo" &&
			s.Addons == "External API Integration (x3)" &&
			s.AddonCount == "1" &&
			s.SubscriptionID == "sub_123"
	})).Return(nil)
	mailer.On("SendSubscriptionConfirmation", mock.Anything).Return(nil)

	svc.HandleEvent(completedEvent(t, `{
		"id": "cs_test_sub00001",
		"mode": "subscription",
		"subscription": "sub_123",
		"amount_total": 12500,
		"metadata": {
			"plan": "hosting",
			"plan_name": "Custom App - Hosting/Management",
			"addons": "External API Integration (x3)",
			"addon_count": "1"
		},
		"customer_details": {"email": "bob@example.com", "name": "Bob Smith"}
	}`))

	mailer.AssertExpectations(t)
	retriever.AssertExpectations(t)
}

func TestHandleEvent_SubscriptionTotalFallsBackToSessionTotal(t *testing.T) {
	mailer := new(MockMailer)
	retriever := new(MockRetriever)
	svc := NewNotifyService(retriever, mailer, catalog.Default(), zap.NewNop())

	retriever.On("GetSubscription", "sub_456").Return(nil, errors.New("not found"))

	mailer.On("SendSubscriptionNotification", mock.MatchedBy(func(s email.SubscriptionEmail) bool {
		return s.MonthlyTotal == "$50/mo"
	})).Return(nil)

	svc.HandleEvent(completedEvent(t, `{
		"id": "cs_test_sub00002",
		"mode": "subscription",
		"subscription": "sub_456",
		"amount_total": 5000,
		"metadata": {"plan": "hosting", "plan_name": "Custom App - Hosting/Management"}
	}`))

	mailer.AssertExpectations(t)
	mailer.AssertNotCalled(t, "SendSubscriptionConfirmation", mock.Anything)
}
