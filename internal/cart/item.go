package cart

import (
	"strings"

	pkgerrors "github.com/angelmondragon/storefront-core/pkg/errors"
	"github.com/shopspring/decimal"
)

// Product is the catalog view of an item offered for sale.
type Product struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Price         decimal.Decimal  `json:"price"`
	OriginalPrice *decimal.Decimal `json:"original_price,omitempty"`
	Image         string           `json:"image"`
	MaxQuantity   int              `json:"max_quantity"`
}

func (p Product) validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if p.Price.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product price cannot be negative")
	}
	if p.OriginalPrice != nil && p.OriginalPrice.IsNegative() {
		return pkgerrors.New(pkgerrors.CodeValidation, "product original price cannot be negative")
	}
	if p.MaxQuantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "product max quantity must be at least 1")
	}
	return nil
}

// LineKey identifies a line item. The same product may appear once per color/size.
type LineKey struct {
	ProductID string `json:"product_id"`
	Color     string `json:"color"`
	Size      string `json:"size"`
}

// LineItem is one row in the cart.
type LineItem struct {
	ProductID         string           `json:"product_id"`
	Color             string           `json:"color"`
	Size              string           `json:"size"`
	Name              string           `json:"name"`
	UnitPrice         decimal.Decimal  `json:"unit_price"`
	OriginalUnitPrice *decimal.Decimal `json:"original_unit_price,omitempty"`
	Quantity          int              `json:"quantity"`
	MaxQuantity       int              `json:"max_quantity"`
	ImageRef          string           `json:"image_ref"`
}

// Key returns the composite identity of the item.
func (li LineItem) Key() LineKey {
	return LineKey{ProductID: li.ProductID, Color: li.Color, Size: li.Size}
}

// LineTotal is UnitPrice times Quantity.
func (li LineItem) LineTotal() decimal.Decimal {
	return li.UnitPrice.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// OriginalLineTotal uses the reference price when present.
func (li LineItem) OriginalLineTotal() decimal.Decimal {
	price := li.UnitPrice
	if li.OriginalUnitPrice != nil {
		price = *li.OriginalUnitPrice
	}
	return price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

func newLineItem(product Product, color, size string, quantity int) LineItem {
	var original *decimal.Decimal
	if product.OriginalPrice != nil {
		value := *product.OriginalPrice
		original = &value
	}
	return LineItem{
		ProductID:         product.ID,
		Color:             color,
		Size:              size,
		Name:              product.Name,
		UnitPrice:         product.Price,
		OriginalUnitPrice: original,
		Quantity:          clampQuantity(quantity, product.MaxQuantity),
		MaxQuantity:       product.MaxQuantity,
		ImageRef:          product.Image,
	}
}

func clampQuantity(quantity, max int) int {
	if quantity > max {
		return max
	}
	return quantity
}
