package enums

// PromoResult is the outcome of applying a promo code to a cart.
type PromoResult string

const (
	PromoApplied       PromoResult = "applied"
	PromoNotFound      PromoResult = "not_found"
	PromoMinimumNotMet PromoResult = "minimum_not_met"
)

// String implements fmt.Stringer.
func (p PromoResult) String() string {
	return string(p)
}

// OK reports whether the promo was applied.
func (p PromoResult) OK() bool {
	return p == PromoApplied
}
