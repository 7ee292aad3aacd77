package models

import (
	"time"

	"github.com/angelmondragon/storefront-core/pkg/enums"
	"github.com/shopspring/decimal"
)

// PromoCode stores a cart-level discount rule keyed by its upper-cased code.
type PromoCode struct {
	Code            string          `gorm:"column:code;primaryKey"`
	Type            enums.PromoType `gorm:"column:type;not null"`
	DiscountValue   decimal.Decimal `gorm:"column:discount_value;type:numeric(12,2);not null"`
	MinimumSubtotal decimal.Decimal `gorm:"column:minimum_subtotal;type:numeric(12,2);not null"`
	Active          bool            `gorm:"column:active;not null;default:true"`
	CreatedAt       time.Time       `gorm:"column:created_at;autoCreateTime"`
}

func (PromoCode) TableName() string { return "promo_codes" }
