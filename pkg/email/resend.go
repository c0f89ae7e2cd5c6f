package email

import (
	"bytes"
	"html/template"
	"path/filepath"

	"github.com/resendlabs/resend-go"
	"go.uber.org/zap"
)

// PurchaseEmail carries everything the one-time purchase notifications need.
// Amount and ShippingAddress may be empty; templates render conditionally.
type PurchaseEmail struct {
	CustomerName       string
	CustomerEmail      string
	FirstName          string
	ProductName        string
	Amount             string
	OrderRef           string
	ShippingAddress    string
	PaymentIntentID    string
	PackageDescription string
}

// SubscriptionEmail carries everything the subscription notifications need.
type SubscriptionEmail struct {
	CustomerName   string
	CustomerEmail  string
	FirstName      string
	PlanName       string
	MonthlyTotal   string
	Addons         string
	AddonCount     string
	OrderRef       string
	SubscriptionID string
}

// Mailer sends the four notification emails triggered by completed checkouts.
// Notification goes to the operator, confirmation to the customer.
type Mailer interface {
	SendPurchaseNotification(p PurchaseEmail) error
	SendPurchaseConfirmation(p PurchaseEmail) error
	SendSubscriptionNotification(s SubscriptionEmail) error
	SendSubscriptionConfirmation(s SubscriptionEmail) error
}

type EmailService struct {
	client        *resend.Client
	from          string
	fromName      string
	operatorEmail string
	templatesDir  string
	logger        *zap.Logger
}

func NewEmailService(apiKey, from, fromName, operatorEmail string, logger *zap.Logger) *EmailService {
	return &EmailService{
		client:        resend.NewClient(apiKey),
		from:          from,
		fromName:      fromName,
		operatorEmail: operatorEmail,
		templatesDir:  "pkg/email/templates",
		logger:        logger,
	}
}

func (s *EmailService) SendPurchaseNotification(p PurchaseEmail) error {
	html, err := s.parseTemplate("purchase-notification.html", p)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{s.operatorEmail},
		ReplyTo: p.CustomerEmail,
		Subject: "🎉 New Purchase: " + p.ProductName,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send purchase notification",
			zap.String("order_ref", p.OrderRef), zap.Error(err))
		return err
	}

	s.logger.Info("purchase notification sent",
		zap.String("order_ref", p.OrderRef), zap.String("email_id", resp.Id))
	return nil
}

func (s *EmailService) SendPurchaseConfirmation(p PurchaseEmail) error {
	html, err := s.parseTemplate("purchase-confirmation.html", p)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{p.CustomerEmail},
		ReplyTo: s.operatorEmail,
		Subject: "🚀 Your order is on the way!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send purchase confirmation",
			zap.String("order_ref", p.OrderRef), zap.Error(err))
		return err
	}

	s.logger.Info("purchase confirmation sent",
		zap.String("order_ref", p.OrderRef), zap.String("email_id", resp.Id))
	return nil
}

func (s *EmailService) SendSubscriptionNotification(sub SubscriptionEmail) error {
	html, err := s.parseTemplate("subscription-notification.html", sub)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{s.operatorEmail},
		ReplyTo: sub.CustomerEmail,
		Subject: "🔄 New Subscription: " + sub.PlanName,
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send subscription notification",
			zap.String("order_ref", sub.OrderRef), zap.Error(err))
		return err
	}

	s.logger.Info("subscription notification sent",
		zap.String("order_ref", sub.OrderRef), zap.String("email_id", resp.Id))
	return nil
}

func (s *EmailService) SendSubscriptionConfirmation(sub SubscriptionEmail) error {
	html, err := s.parseTemplate("subscription-confirmation.html", sub)
	if err != nil {
		return err
	}

	params := &resend.SendEmailRequest{
		From:    s.fromName + " <" + s.from + ">",
		To:      []string{sub.CustomerEmail},
		ReplyTo: s.operatorEmail,
		Subject: "✅ Your subscription is active!",
		Html:    html,
	}

	resp, err := s.client.Emails.Send(params)
	if err != nil {
		s.logger.Error("failed to send subscription confirmation",
			zap.String("order_ref", sub.OrderRef), zap.Error(err))
		return err
	}

	s.logger.Info("subscription confirmation sent",
		zap.String("order_ref", sub.OrderRef), zap.String("email_id", resp.Id))
	return nil
}

func (s *EmailService) parseTemplate(templateName string, data interface{}) (string, error) {
	templatePath := filepath.Join(s.templatesDir, templateName)

	tmpl, err := template.ParseFiles(templatePath)
	if err != nil {
		return "", err
	}

	var body bytes.Buffer
	if err := tmpl.Execute(&body, data); err != nil {
		return "", err
	}

	return body.String(), nil
}
