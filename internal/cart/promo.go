package cart

import (
	"fmt"
	"sort"
	"strings"

	"github.com/angelmondragon/storefront-core/pkg/enums"
	"github.com/shopspring/decimal"
)

// PromoCode is a cart-level discount rule.
type PromoCode struct {
	Code            string          `json:"code"`
	Type            enums.PromoType `json:"type"`
	DiscountValue   decimal.Decimal `json:"discount_value"`
	MinimumSubtotal decimal.Decimal `json:"minimum_subtotal"`
}

// Validate reports whether the promo is well formed.
func (p PromoCode) Validate() error {
	if NormalizeCode(p.Code) == "" {
		return fmt.Errorf("promo code is required")
	}
	if !p.Type.IsValid() {
		return fmt.Errorf("promo %s: invalid type %q", p.Code, p.Type)
	}
	if !p.DiscountValue.IsPositive() {
		return fmt.Errorf("promo %s: discount value must be positive", p.Code)
	}
	if p.MinimumSubtotal.IsNegative() {
		return fmt.Errorf("promo %s: minimum subtotal cannot be negative", p.Code)
	}
	return nil
}

// Eligible reports whether subtotal reaches the promo minimum.
func (p PromoCode) Eligible(subtotal decimal.Decimal) bool {
	return subtotal.GreaterThanOrEqual(p.MinimumSubtotal)
}

// NormalizeCode trims and upper-cases a user supplied code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// PromoTable is an immutable, case-insensitive promo lookup.
type PromoTable struct {
	byCode map[string]PromoCode
}

// NewPromoTable validates codes and rejects duplicates.
func NewPromoTable(codes []PromoCode) (*PromoTable, error) {
	table := &PromoTable{byCode: make(map[string]PromoCode, len(codes))}
	for _, promo := range codes {
		if err := promo.Validate(); err != nil {
			return nil, err
		}
		promo.Code = NormalizeCode(promo.Code)
		if _, exists := table.byCode[promo.Code]; exists {
			return nil, fmt.Errorf("duplicate promo code %s", promo.Code)
		}
		table.byCode[promo.Code] = promo
	}
	return table, nil
}

// DefaultPromoTable is used when no promo repository is configured.
func DefaultPromoTable() *PromoTable {
	table, err := NewPromoTable([]PromoCode{
		{Code: "SAVE10", Type: enums.PromoTypePercentage, DiscountValue: decimal.NewFromInt(10), MinimumSubtotal: decimal.NewFromInt(1000)},
		{Code: "WELCOME100", Type: enums.PromoTypeFixed, DiscountValue: decimal.NewFromInt(100), MinimumSubtotal: decimal.NewFromInt(800)},
		{Code: "FLAT50", Type: enums.PromoTypeFixed, DiscountValue: decimal.NewFromInt(50), MinimumSubtotal: decimal.Zero},
	})
	if err != nil {
		panic(err)
	}
	return table
}

// Lookup finds a promo by code, ignoring case and surrounding whitespace.
func (t *PromoTable) Lookup(code string) (PromoCode, bool) {
	if t == nil {
		return PromoCode{}, false
	}
	promo, ok := t.byCode[NormalizeCode(code)]
	return promo, ok
}

// Codes returns every promo sorted by code.
func (t *PromoTable) Codes() []PromoCode {
	if t == nil {
		return nil
	}
	out := make([]PromoCode, 0, len(t.byCode))
	for _, promo := range t.byCode {
		out = append(out, promo)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out
}

// Len returns the number of promos in the table.
func (t *PromoTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.byCode)
}
