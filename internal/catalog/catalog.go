// Package catalog holds the static pricing data for the site: the one-time
// AI Employee tiers, the recurring Custom App base plans, and the recurring
// add-ons. Prices live in Stripe; this catalog only maps stable string keys
// to price IDs and display metadata.
//
// To change a price for new customers: create a new Price in the Stripe
// dashboard on the same Product, update the IDs and amount here, deploy.
// Existing subscribers keep referencing their old Price automatically.
package catalog

// Item is one purchasable entry. Amount is in minor currency units (cents).
// One-time tiers carry both a live and a test price ID; the active one is
// picked by the key mode at session-creation time.
type Item struct {
	Key              string
	ProductID        string
	LivePriceID      string
	TestPriceID      string
	Name             string
	Amount           int64
	Label            string
	Description      string
	SupportsQuantity bool
}

// PriceID returns the price reference for the given key mode. Recurring
// items only have one price, stored on the live side.
func (i Item) PriceID(live bool) string {
	if !live && i.TestPriceID != "" {
		return i.TestPriceID
	}
	return i.LivePriceID
}

// Catalog is an immutable set of priced items, built once at startup and
// shared read-only between handlers.
type Catalog struct {
	tiers     map[string]Item
	basePlans map[string]Item
	addons    map[string]Item
}

// Default returns the deploy-time catalog.
func Default() *Catalog {
	return &Catalog{
		tiers: map[string]Item{
			"starter": {
				Key:         "starter",
				LivePriceID: "price_1SwPuNBUNvYd8nY7YasGaThB",
				TestPriceID: "price_1SvwiJBUNvYd8nY7UdWUHfZa",
				Name:        "AI Employee Starter",
				Amount:      299700,
				Label:       "Starter",
				Description: "Done-for-you AI employee setup with Mac Mini M4, 4 tool integrations, 3-day warm-up period, brand voice training, security configuration, and 14 days email support.",
			},
			"pro": {
				Key:         "pro",
				LivePriceID: "price_1SwPuOBUNvYd8nY7woIg0cmQ",
				TestPriceID: "price_1SvwiOBUNvYd8nY7bFFUyiX4",
				Name:        "AI Employee Pro",
				Amount:      449700,
				Label:       "Pro",
				Description: "Everything in Starter, plus: 6 tool integrations, 1-week warm-up period, custom automations, 30 days email support, and priority setup.",
			},
			"agency": {
				Key:         "agency",
				LivePriceID: "price_1SwPuOBUNvYd8nY70CQPxwlE",
				TestPriceID: "price_1SvwiPBUNvYd8nY7IKvBIXPD",
				Name:        "AI Employee Agency",
				Amount:      699700,
				Label:       "Agency",
				Description: "White-glove AI employee setup with Mac Mini M4, 10 tool integrations, 2-week warm-up period, Priority Slack channel, 60 days support, and quarterly tune-up call.",
			},
		},
		basePlans: map[string]Item{
			"hosting": {
				Key:         "hosting",
				ProductID:   "prod_TvmdpdOqPNTm8f",
				LivePriceID: "price_1Sxv3uBUNvYd8nY7SUUyUsj9",
				Name:        "Custom App - Hosting/Management",
				Amount:      5000,
				Label:       "Core App Hosting",
				Description: "Everything you need to keep your system running and supported.",
			},
			"unlimited-edits": {
				Key:         "unlimited-edits",
				ProductID:   "prod_TvmYQSYH8lnO2f",
				LivePriceID: "price_1SxuzTBUNvYd8nY780UwbIXu",
				Name:        "Custom App - Unlimited Edits",
				Amount:      30000,
				Label:       "Unlimited Edits",
				Description: "Ongoing feature requests, tweaks, and improvements — no scoping, no quoting.",
			},
		},
		addons: map[string]Item{
			"client-portal": {
				Key:         "client-portal",
				ProductID:   "prod_TyccJwxFG3QMqT",
				LivePriceID: "price_1T0fNIBUNvYd8nY7fK03wsFS",
				Name:        "Client Portal",
				Amount:      2500,
				Label:       "Client Portal",
				Description: "Secure login, dashboard, and client-specific views.",
			},
			"ai-automation": {
				Key:         "ai-automation",
				ProductID:   "prod_Tycd6rl7Hqffr9",
				LivePriceID: "price_1T0fNkBUNvYd8nY7vAv2r5lV",
				Name:        "AI Automation",
				Amount:      2500,
				Label:       "AI Automation",
				Description: "AI-powered workflows, webhooks, and task automation.",
			},
			"video-generation": {
				Key:         "video-generation",
				ProductID:   "prod_Tycd2JKoH8YnJE",
				LivePriceID: "price_1T0fOFBUNvYd8nY74f3K0ahO",
				Name:        "Video Generation",
				Amount:      5000,
				Label:       "Video Generation",
				Description: "AI video creation. Usage fees may apply.",
			},
			"image-generation": {
				Key:         "image-generation",
				ProductID:   "prod_TycexX1Nj0dcwc",
				LivePriceID: "price_1T0fP1BUNvYd8nY79yfitxOU",
				Name:        "Image Generation",
				Amount:      2500,
				Label:       "Image Generation",
				Description: "AI image creation. Usage fees may apply.",
			},
			"voice-agent": {
				Key:         "voice-agent",
				ProductID:   "prod_TycemVuFHUmjTz",
				LivePriceID: "price_1T0fPIBUNvYd8nY7L1JwR0HG",
				Name:        "Voice Agent",
				Amount:      5000,
				Label:       "Voice Agent",
				Description: "AI voice assistant. Usage fees may apply.",
			},
			"api-integration": {
				Key:              "api-integration",
				ProductID:        "prod_TycfrERGbbuL6Q",
				LivePriceID:      "price_1T0fQ1BUNvYd8nY7T6NgcYVJ",
				Name:             "External API Integration",
				Amount:           2500,
				Label:            "API Integration",
				Description:      "Connect to external tools (QuickBooks, Stripe, Calendly, etc.).",
				SupportsQuantity: true,
			},
		},
	}
}

// Tier looks up a one-time purchase tier by key.
func (c *Catalog) Tier(key string) (Item, bool) {
	item, ok := c.tiers[key]
	return item, ok
}

// BasePlan looks up a recurring base plan by key.
func (c *Catalog) BasePlan(key string) (Item, bool) {
	item, ok := c.basePlans[key]
	return item, ok
}

// Addon looks up a recurring add-on by key.
func (c *Catalog) Addon(key string) (Item, bool) {
	item, ok := c.addons[key]
	return item, ok
}

// ClientItem is the browser-safe projection of an Item: display data only,
// no Stripe IDs.
type ClientItem struct {
	Amount           int64  `json:"amount"`
	Label            string `json:"label"`
	SupportsQuantity bool   `json:"supportsQuantity,omitempty"`
}

// ClientView strips Stripe references from the catalog so it can be
// serialized into pages for client-side JS.
type ClientView struct {
	Tiers     map[string]ClientItem `json:"tiers"`
	BasePlans map[string]ClientItem `json:"basePlans"`
	Addons    map[string]ClientItem `json:"addons"`
}

func (c *Catalog) ClientView() ClientView {
	view := ClientView{
		Tiers:     make(map[string]ClientItem, len(c.tiers)),
		BasePlans: make(map[string]ClientItem, len(c.basePlans)),
		Addons:    make(map[string]ClientItem, len(c.addons)),
	}
	for key, item := range c.tiers {
		view.Tiers[key] = ClientItem{Amount: item.Amount, Label: item.Label}
	}
	for key, item := range c.basePlans {
		view.BasePlans[key] = ClientItem{Amount: item.Amount, Label: item.Label}
	}
	for key, item := range c.addons {
		view.Addons[key] = ClientItem{
			Amount:           item.Amount,
			Label:            item.Label,
			SupportsQuantity: item.SupportsQuantity,
		}
	}
	return view
}
