package catalog

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var usd = message.NewPrinter(language.English)

// FormatPrice renders cents as a grouped whole-dollar string, e.g. 299700 → "$2,997".
func FormatPrice(cents int64) string {
	return usd.Sprintf("$%d", cents/100)
}

// FormatMonthly renders cents with a monthly suffix, e.g. 5000 → "$50/mo".
func FormatMonthly(cents int64) string {
	return FormatPrice(cents) + "/mo"
}

// FormatAddonPrice renders an add-on price for display, e.g. "+$25/mo each"
// for quantity-capable add-ons.
func FormatAddonPrice(addon Item) string {
	base := "+" + FormatPrice(addon.Amount) + "/mo"
	if addon.SupportsQuantity {
		return base + " each"
	}
	return base
}
