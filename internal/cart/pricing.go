package cart

import (
	"github.com/angelmondragon/storefront-core/pkg/enums"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// PricingRules holds the shipping policy applied to every cart.
type PricingRules struct {
	FlatShipping          decimal.Decimal
	FreeShippingThreshold decimal.Decimal
}

// DefaultPricingRules charges 99 below a 2000 subtotal.
func DefaultPricingRules() PricingRules {
	return PricingRules{
		FlatShipping:          decimal.NewFromInt(99),
		FreeShippingThreshold: decimal.NewFromInt(2000),
	}
}

// Totals is derived from the line items and active promo on every read.
type Totals struct {
	Subtotal         decimal.Decimal `json:"subtotal"`
	OriginalSubtotal decimal.Decimal `json:"original_subtotal"`
	Savings          decimal.Decimal `json:"savings"`
	PromoDiscount    decimal.Decimal `json:"promo_discount"`
	Shipping         decimal.Decimal `json:"shipping"`
	Total            decimal.Decimal `json:"total"`
	ItemCount        int             `json:"item_count"`
	Promo            *PromoCode      `json:"promo"`
}

func computeTotals(items []LineItem, promo *PromoCode, rules PricingRules) Totals {
	subtotal := decimal.Zero
	original := decimal.Zero
	count := 0
	for _, item := range items {
		subtotal = subtotal.Add(item.LineTotal())
		original = original.Add(item.OriginalLineTotal())
		count += item.Quantity
	}

	savings := original.Sub(subtotal)
	if savings.IsNegative() {
		savings = decimal.Zero
	}

	discount := promoDiscount(subtotal, promo)

	shipping := decimal.Zero
	if subtotal.LessThan(rules.FreeShippingThreshold) {
		shipping = rules.FlatShipping
	}

	afterDiscount := subtotal.Sub(discount)
	if afterDiscount.IsNegative() {
		afterDiscount = decimal.Zero
	}

	var active *PromoCode
	if promo != nil {
		copied := *promo
		active = &copied
	}

	return Totals{
		Subtotal:         subtotal,
		OriginalSubtotal: original,
		Savings:          savings,
		PromoDiscount:    discount,
		Shipping:         shipping,
		Total:            afterDiscount.Add(shipping),
		ItemCount:        count,
		Promo:            active,
	}
}

// promoDiscount re-checks the minimum against the current subtotal. A promo that is
// no longer eligible stays in the slot but yields zero.
func promoDiscount(subtotal decimal.Decimal, promo *PromoCode) decimal.Decimal {
	if promo == nil || !promo.Eligible(subtotal) {
		return decimal.Zero
	}

	var discount decimal.Decimal
	switch promo.Type {
	case enums.PromoTypePercentage:
		discount = subtotal.Mul(promo.DiscountValue).Div(hundred).Round(2)
	case enums.PromoTypeFixed:
		discount = promo.DiscountValue
	default:
		return decimal.Zero
	}

	if discount.GreaterThan(subtotal) {
		return subtotal
	}
	return discount
}
