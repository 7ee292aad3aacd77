package cart

import (
	"sync"

	"github.com/angelmondragon/storefront-core/pkg/enums"
)

// PromoResult reports the outcome of ApplyPromoCode. Promo is nil when the code
// is unknown.
type PromoResult struct {
	Result enums.PromoResult
	Promo  *PromoCode
}

// Engine owns the line items and active promo of a single cart. It is safe for
// concurrent use.
type Engine struct {
	mu     sync.Mutex
	rules  PricingRules
	promos *PromoTable
	items  []LineItem
	promo  *PromoCode
}

// NewEngine returns an empty cart. A nil promo table uses DefaultPromoTable.
func NewEngine(rules PricingRules, promos *PromoTable) *Engine {
	if promos == nil {
		promos = DefaultPromoTable()
	}
	return &Engine{rules: rules, promos: promos}
}

// AddItem merges into an existing line with the same key or appends a new one.
// Quantities below 1 count as 1 and the result never exceeds MaxQuantity.
func (e *Engine) AddItem(product Product, color, size string, quantity int) error {
	if err := product.validate(); err != nil {
		return err
	}
	if quantity < 1 {
		quantity = 1
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	key := LineKey{ProductID: product.ID, Color: color, Size: size}
	if idx := e.indexOf(key); idx >= 0 {
		item := &e.items[idx]
		item.Quantity = clampQuantity(item.Quantity+quantity, item.MaxQuantity)
		return nil
	}
	e.items = append(e.items, newLineItem(product, color, size, quantity))
	return nil
}

// UpdateQuantity sets the quantity for key, clamped to MaxQuantity. It is a no-op
// returning false when quantity is below 1 or key is not in the cart.
func (e *Engine) UpdateQuantity(key LineKey, quantity int) bool {
	if quantity < 1 {
		return false
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(key)
	if idx < 0 {
		return false
	}
	e.items[idx].Quantity = clampQuantity(quantity, e.items[idx].MaxQuantity)
	return true
}

// RemoveItem deletes the line for key. Returns false when absent.
func (e *Engine) RemoveItem(key LineKey) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.indexOf(key)
	if idx < 0 {
		return false
	}
	e.removeAt(idx)
	return true
}

// ApplyPromoCode replaces the active promo when the code exists and the current
// subtotal meets its minimum. On failure the active promo is left as it was.
func (e *Engine) ApplyPromoCode(code string) PromoResult {
	e.mu.Lock()
	defer e.mu.Unlock()

	promo, ok := e.promos.Lookup(code)
	if !ok {
		return PromoResult{Result: enums.PromoNotFound}
	}
	subtotal := computeTotals(e.items, nil, e.rules).Subtotal
	if !promo.Eligible(subtotal) {
		return PromoResult{Result: enums.PromoMinimumNotMet, Promo: &promo}
	}
	e.promo = &promo
	applied := promo
	return PromoResult{Result: enums.PromoApplied, Promo: &applied}
}

// RemovePromoCode clears the active promo.
func (e *Engine) RemovePromoCode() {
	e.mu.Lock()
	e.promo = nil
	e.mu.Unlock()
}

// Clear empties the cart and drops the active promo.
func (e *Engine) Clear() {
	e.mu.Lock()
	e.items = nil
	e.promo = nil
	e.mu.Unlock()
}

// Items returns a copy of the lines in insertion order.
func (e *Engine) Items() []LineItem {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.itemsLocked()
}

// Promo returns the active promo or nil.
func (e *Engine) Promo() *PromoCode {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.promo == nil {
		return nil
	}
	promo := *e.promo
	return &promo
}

// Totals derives the pricing summary from the current state.
func (e *Engine) Totals() Totals {
	e.mu.Lock()
	defer e.mu.Unlock()
	return computeTotals(e.items, e.promo, e.rules)
}

// Snapshot captures items and the active promo code for persistence.
func (e *Engine) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	snap := Snapshot{Version: SnapshotVersion, Items: e.itemsLocked()}
	if e.promo != nil {
		snap.PromoCode = e.promo.Code
	}
	return snap
}

func (e *Engine) itemsLocked() []LineItem {
	out := make([]LineItem, len(e.items))
	copy(out, e.items)
	return out
}

func (e *Engine) indexOf(key LineKey) int {
	for i := range e.items {
		if e.items[i].Key() == key {
			return i
		}
	}
	return -1
}

func (e *Engine) removeAt(idx int) {
	e.items = append(e.items[:idx], e.items[idx+1:]...)
	if len(e.items) == 0 {
		e.items = nil
	}
}
