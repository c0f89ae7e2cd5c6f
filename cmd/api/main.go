package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/buildwithco/site-backend/internal/catalog"
	"github.com/buildwithco/site-backend/internal/config"
	"github.com/buildwithco/site-backend/internal/handler"
	"github.com/buildwithco/site-backend/internal/service"
	"github.com/buildwithco/site-backend/pkg/email"
	"github.com/buildwithco/site-backend/pkg/payment"
	"github.com/buildwithco/site-backend/pkg/utils"
)

func main() {
	// Load .env when present; production reads the real environment.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, using process environment")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("configuration error: ", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("failed to initialize logger: ", err)
	}
	defer logger.Sync()

	// Pricing catalog (immutable, shared read-only between handlers)
	pricingCatalog := catalog.Default()

	// Stripe service
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey)

	// Email service
	emailService := email.NewEmailService(
		cfg.Email.APIKey,
		cfg.Email.FromAddress,
		cfg.Email.FromName,
		cfg.Email.OperatorEmail,
		logger,
	)

	// Services
	checkoutService := service.NewCheckoutService(stripeService, pricingCatalog, cfg.LiveMode(), logger)
	subscriptionService := service.NewSubscriptionService(stripeService, pricingCatalog, cfg.LiveMode(), logger)
	notifyService := service.NewNotifyService(stripeService, emailService, pricingCatalog, logger)

	validator := utils.NewValidator()

	// Handlers
	checkoutHandler := handler.NewCheckoutHandler(checkoutService, subscriptionService, validator, logger)
	webhookHandler := handler.NewWebhookHandler(notifyService, cfg.Stripe.WebhookSecret, logger)
	pricingHandler := handler.NewPricingHandler(pricingCatalog)
	debugHandler := handler.NewDebugHandler(cfg)

	// Router
	app := fiber.New()

	allowOrigins := cfg.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Stripe-Signature",
		AllowMethods: "GET, POST",
	}))
	app.Use(fiberlogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	api.Get("/pricing", pricingHandler.GetClientPricing)
	api.Post("/checkout", checkoutHandler.CreateCheckout)
	api.Post("/subscribe", checkoutHandler.CreateSubscription)

	// Stripe webhook (authenticated by signature, not by session)
	api.Post("/payments/webhook", webhookHandler.HandleStripeWebhook)

	api.Get("/debug-env", debugHandler.GetEnvStatus)

	logger.Info("starting server", zap.String("port", cfg.Port), zap.Bool("live_mode", cfg.LiveMode()))
	log.Fatal(app.Listen(":" + cfg.Port))
}
