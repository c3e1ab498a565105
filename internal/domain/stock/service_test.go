package stock

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

	require.NoError(t, db.AutoMigrate(&product.Product{}, &product.SizeStock{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB) product.Product {
	t.Helper()
	p := product.Product{
		SKU:         "DD1391-100",
		Name:        "Dunk Low Panda",
		Brand:       "Nike",
		RetailPrice: 12000,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&p).Error)
	return p
}

func TestSetLevelsCreatesAndUpdates(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db)

	require.NoError(t, svc.SetLevels(p.ID, map[string]int{"9.5": 5, "10": 3}))

	levels, err := svc.GetLevels(p.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"9_5": 5, "10": 3}, levels)

	// Sizes not present in the request stay untouched.
	require.NoError(t, svc.SetLevels(p.ID, map[string]int{"10": 8}))

	levels, err = svc.GetLevels(p.ID)
	require.NoError(t, err)
	require.Equal(t, map[string]int{"9_5": 5, "10": 8}, levels)
}

func TestDecrementSanitizesSize(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db)

	require.NoError(t, svc.SetLevels(p.ID, map[string]int{"9.5": 5}))
	require.NoError(t, svc.Decrement(p.ID, "9.5", 2))

	qty, err := svc.Available(p.ID, "9.5")
	require.NoError(t, err)
	require.Equal(t, 3, qty)
}

func TestDecrementHasNoFloor(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db)

	require.NoError(t, svc.SetLevels(p.ID, map[string]int{"10": 1}))
	require.NoError(t, svc.Decrement(p.ID, "10", 3))

	qty, err := svc.Available(p.ID, "10")
	require.NoError(t, err)
	require.Equal(t, -2, qty)
}

func TestDecrementMissingRowFails(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db)

	err := svc.Decrement(p.ID, "13", 1)
	require.Error(t, err)
	require.Contains(t, err.Error(), "no stock row")
}

func TestIncrementRestoresStock(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db)

	require.NoError(t, svc.SetLevels(p.ID, map[string]int{"11": 2}))
	require.NoError(t, svc.Decrement(p.ID, "11", 2))
	require.NoError(t, svc.Increment(p.ID, "11", 2))

	qty, err := svc.Available(p.ID, "11")
	require.NoError(t, err)
	require.Equal(t, 2, qty)
}

func TestAvailableMissingSizeIsZero(t *testing.T) {
	db := setupTestDB(t)
	svc := NewService(db, &config.Config{})
	p := seedProduct(t, db)

	qty, err := svc.Available(p.ID, "8")
	require.NoError(t, err)
	require.Equal(t, 0, qty)
}
