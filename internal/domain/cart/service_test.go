package cart

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/product"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&product.Product{}))
	return db
}

// The product lookup happens before any Redis access, so a nil client is
// fine for the resolution failure paths.
func TestAddToCartUnknownSKUReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, &config.Config{})

	_, err := svc.AddToCart("sess-1", &AddToCartRequest{SKU: "GHOST-1", Size: "9.5", Quantity: 1})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestAddToCartInactiveProductReturnsNotFound(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, nil, &config.Config{})

	require.NoError(t, db.Create(&product.Product{
		SKU: "RETIRED-1", Name: "Air Max 95", RetailPrice: 18000, IsActive: false,
	}).Error)

	_, err := svc.AddToCart("sess-1", &AddToCartRequest{SKU: "RETIRED-1", Size: "10", Quantity: 1})
	require.ErrorIs(t, err, ErrProductNotFound)
}

func TestUpdateQuantityRequestBindsZeroDelta(t *testing.T) {
	var req UpdateQuantityRequest
	body := []byte(`{"item_id":"AA1_9.5","delta":0}`)

	require.NoError(t, binding.JSON.BindBody(body, &req))
	require.Equal(t, "AA1_9.5", req.ItemID)
	require.Zero(t, req.Delta)
}
