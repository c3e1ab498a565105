package wishlist

import (
	"testing"

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

	require.NoError(t, db.AutoMigrate(&product.Product{}, &product.SizeStock{}, &Item{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, sku string) product.Product {
	t.Helper()
	p := product.Product{
		SKU:         sku,
		Name:        "Air Max 90",
		Brand:       "Nike",
		RetailPrice: 12000,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestToggleAddsThenRemoves(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db, "AA1")

	result, err := svc.Toggle(1, p.ID)
	require.NoError(t, err)
	require.Equal(t, ResultAdded, result)

	onList, err := svc.Contains(1, p.ID)
	require.NoError(t, err)
	require.True(t, onList)

	result, err = svc.Toggle(1, p.ID)
	require.NoError(t, err)
	require.Equal(t, ResultRemoved, result)

	onList, err = svc.Contains(1, p.ID)
	require.NoError(t, err)
	require.False(t, onList)
}

func TestToggleIsPerUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db, "AA1")

	_, err := svc.Toggle(1, p.ID)
	require.NoError(t, err)

	onList, err := svc.Contains(2, p.ID)
	require.NoError(t, err)
	require.False(t, onList)
}

func TestAddIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db, "AA1")

	require.NoError(t, svc.Add(1, p.ID))
	require.NoError(t, svc.Add(1, p.ID))

	items, err := svc.GetWishlist(1)
	require.NoError(t, err)
	require.Len(t, items, 1)
}

func TestRemoveMissingItemFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})

	err := svc.Remove(1, 42)
	require.Error(t, err)
}

func TestGetWishlistLoadsProducts(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p1 := seedProduct(t, db, "AA1")
	p2 := seedProduct(t, db, "BB2")

	require.NoError(t, svc.Add(7, p1.ID))
	require.NoError(t, svc.Add(7, p2.ID))

	items, err := svc.GetWishlist(7)
	require.NoError(t, err)
	require.Len(t, items, 2)
	for _, item := range items {
		require.NotEmpty(t, item.Product.SKU)
	}
}
