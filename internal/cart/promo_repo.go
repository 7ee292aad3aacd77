package cart

import (
	"context"

	"github.com/angelmondragon/storefront-core/pkg/db/models"
	"gorm.io/gorm"
)

// PromoRepository reads and writes promo codes stored in the promo_codes table.
type PromoRepository struct {
	db *gorm.DB
}

// NewPromoRepository constructs a promo repository bound to the provided DB.
func NewPromoRepository(db *gorm.DB) *PromoRepository {
	return &PromoRepository{db: db}
}

// WithTx binds the repository to a transaction.
func (r *PromoRepository) WithTx(tx *gorm.DB) *PromoRepository {
	if tx == nil {
		return r
	}
	return &PromoRepository{db: tx}
}

// ListActive returns every active promo ordered by code.
func (r *PromoRepository) ListActive(ctx context.Context) ([]models.PromoCode, error) {
	var rows []models.PromoCode
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("code ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Create inserts a promo row.
func (r *PromoRepository) Create(ctx context.Context, row *models.PromoCode) (*models.PromoCode, error) {
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return nil, err
	}
	return row, nil
}

// LoadPromoTable builds an immutable table from the active rows.
func (r *PromoRepository) LoadPromoTable(ctx context.Context) (*PromoTable, error) {
	rows, err := r.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	codes := make([]PromoCode, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, promoFromModel(row))
	}
	return NewPromoTable(codes)
}

func promoFromModel(row models.PromoCode) PromoCode {
	return PromoCode{
		Code:            row.Code,
		Type:            row.Type,
		DiscountValue:   row.DiscountValue,
		MinimumSubtotal: row.MinimumSubtotal,
	}
}

func promoToModel(promo PromoCode) models.PromoCode {
	return models.PromoCode{
		Code:            NormalizeCode(promo.Code),
		Type:            promo.Type,
		DiscountValue:   promo.DiscountValue,
		MinimumSubtotal: promo.MinimumSubtotal,
		Active:          true,
	}
}
