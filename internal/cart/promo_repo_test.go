package cart

import (
	"context"
	"testing"

	"github.com/angelmondragon/storefront-core/pkg/config"
	"github.com/angelmondragon/storefront-core/pkg/db/models"
	"github.com/angelmondragon/storefront-core/pkg/enums"
	"github.com/angelmondragon/storefront-core/pkg/migrate"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newPromoTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	_, err = migrate.Run(context.Background(), sqlDB, config.DBDriverSQLite, "up")
	require.NoError(t, err)
	return conn
}

func TestPromoRepositoryLoadsSeededTable(t *testing.T) {
	repo := NewPromoRepository(newPromoTestDB(t))

	table, err := repo.LoadPromoTable(context.Background())
	require.NoError(t, err)
	require.Equal(t, 3, table.Len())

	promo, ok := table.Lookup("welcome100")
	require.True(t, ok)
	assert.Equal(t, enums.PromoTypeFixed, promo.Type)
	assert.True(t, promo.DiscountValue.Equal(decimal.NewFromInt(100)))
	assert.True(t, promo.MinimumSubtotal.Equal(decimal.NewFromInt(800)))
}

func TestPromoRepositorySkipsInactive(t *testing.T) {
	conn := newPromoTestDB(t)
	repo := NewPromoRepository(conn)
	ctx := context.Background()

	require.NoError(t, conn.Model(&models.PromoCode{}).Where("code = ?", "FLAT50").Update("active", false).Error)

	rows, err := repo.ListActive(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "SAVE10", rows[0].Code)
	assert.Equal(t, "WELCOME100", rows[1].Code)
}

func TestPromoRepositoryCreate(t *testing.T) {
	repo := NewPromoRepository(newPromoTestDB(t))
	ctx := context.Background()

	row := promoToModel(PromoCode{Code: " spring20 ", Type: enums.PromoTypePercentage, DiscountValue: decimal.NewFromInt(20), MinimumSubtotal: decimal.NewFromInt(300)})
	_, err := repo.Create(ctx, &row)
	require.NoError(t, err)
	assert.Equal(t, "SPRING20", row.Code)

	table, err := repo.LoadPromoTable(ctx)
	require.NoError(t, err)
	assert.Equal(t, 4, table.Len())

	dup := promoToModel(PromoCode{Code: "SAVE10", Type: enums.PromoTypeFixed, DiscountValue: decimal.NewFromInt(1)})
	_, err = repo.Create(ctx, &dup)
	require.Error(t, err)
}
