package cart

import (
	"encoding/json"
	"fmt"
)

// SnapshotVersion is the current persisted cart layout.
const SnapshotVersion = 1

// Snapshot is the persisted form of a cart. Totals are never stored.
type Snapshot struct {
	Version   int        `json:"version"`
	Items     []LineItem `json:"items"`
	PromoCode string     `json:"promo_code,omitempty"`
}

// MarshalSnapshot encodes a snapshot as JSON.
func MarshalSnapshot(s Snapshot) ([]byte, error) {
	if s.Version == 0 {
		s.Version = SnapshotVersion
	}
	return json.Marshal(s)
}

// UnmarshalSnapshot decodes a snapshot and rejects unknown versions.
func UnmarshalSnapshot(data []byte) (Snapshot, error) {
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot{}, fmt.Errorf("decode cart snapshot: %w", err)
	}
	if s.Version != SnapshotVersion {
		return Snapshot{}, fmt.Errorf("unsupported cart snapshot version %d", s.Version)
	}
	return s, nil
}

// RestoreEngine rebuilds an engine from a snapshot. Lines without a product ID or
// with a non-positive quantity or max are dropped, quantities are clamped, and a
// promo code missing from promos is discarded.
func RestoreEngine(s Snapshot, rules PricingRules, promos *PromoTable) *Engine {
	e := NewEngine(rules, promos)
	seen := make(map[LineKey]struct{}, len(s.Items))
	for _, item := range s.Items {
		if item.ProductID == "" || item.Quantity < 1 || item.MaxQuantity < 1 || item.UnitPrice.IsNegative() {
			continue
		}
		if _, dup := seen[item.Key()]; dup {
			continue
		}
		seen[item.Key()] = struct{}{}
		item.Quantity = clampQuantity(item.Quantity, item.MaxQuantity)
		e.items = append(e.items, item)
	}
	if s.PromoCode != "" {
		if promo, ok := e.promos.Lookup(s.PromoCode); ok {
			e.promo = &promo
		}
	}
	return e
}
