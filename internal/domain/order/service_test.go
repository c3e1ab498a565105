package order

import (
	"sync"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/cart"
	"github.com/your-org/sneakershop-backend/internal/domain/product"
	"github.com/your-org/sneakershop-backend/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type statusUpdate struct {
	email  string
	status Status
}

type fakeNotifier struct {
	mu            sync.Mutex
	confirmations []string
	statusUpdates []statusUpdate
}

func (f *fakeNotifier) SendOrderConfirmation(o *Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.confirmations = append(f.confirmations, o.CustomerEmail)
	return nil
}

func (f *fakeNotifier) SendOrderStatusUpdate(o *Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusUpdates = append(f.statusUpdates, statusUpdate{email: o.CustomerEmail, status: o.Status})
	return nil
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// Serialize access so the concurrent stock decrements share one conn.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&product.Product{}, &product.SizeStock{}, &Order{}, &Item{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB, n Notifier) *Service {
	t.Helper()
	cfg := &config.Config{Store: config.StoreConfig{DefaultCurrency: "USD"}}
	return NewService(db, cfg, stock.NewService(db, cfg), n)
}

func seedProduct(t *testing.T, db *gorm.DB, sku string, stockBySize map[string]int) product.Product {
	t.Helper()
	p := product.Product{
		SKU:         sku,
		Name:        "Dunk Low",
		Brand:       "Nike",
		RetailPrice: 10000,
		IsActive:    true,
	}
	require.NoError(t, db.Create(&p).Error)
	for size, qty := range stockBySize {
		require.NoError(t, db.Create(&product.SizeStock{
			ProductID: p.ID,
			SizeKey:   product.SanitizeSizeKey(size),
			Quantity:  qty,
		}).Error)
	}
	return p
}

func cartWith(p product.Product, size string, qty int) cart.Cart {
	c := cart.Cart{SessionID: "sess-1"}
	return c.Add(cart.LineItem{
		ItemID:    cart.MakeItemID(p.SKU, size),
		ProductID: p.ID,
		SKU:       p.SKU,
		Name:      p.Name,
		Brand:     p.Brand,
		Size:      size,
		UnitPrice: p.RetailPrice,
	}, qty)
}

func placeReq() *PlaceOrderRequest {
	return &PlaceOrderRequest{
		CustomerName:  "Jordan Lee",
		CustomerEmail: "Jordan@Example.com",
		AddressLine1:  "1 Main St",
		City:          "Portland",
		PostalCode:    "97201",
		Country:       "us",
	}
}

func TestPlaceOrderEmptyCartFails(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, &fakeNotifier{})

	_, err := svc.PlaceOrder(cart.Cart{SessionID: "sess-1"}, placeReq(), nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty cart")
}

func TestPlaceOrderDecrementsStock(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, &fakeNotifier{})
	p := seedProduct(t, db, "AA1", map[string]int{"9.5": 3})

	placed, err := svc.PlaceOrder(cartWith(p, "9.5", 2), placeReq(), nil)
	require.NoError(t, err)
	require.NotZero(t, placed.ID)
	require.NotEmpty(t, placed.OrderNumber)
	require.Equal(t, StatusProcessing, placed.Status)

	var ss product.SizeStock
	require.NoError(t, db.Where("product_id = ? AND size_key = ?", p.ID, "9_5").First(&ss).Error)
	require.Equal(t, 1, ss.Quantity)
}

func TestPlaceOrderSnapshotsCartItems(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, &fakeNotifier{})
	p := seedProduct(t, db, "AA1", map[string]int{"10": 5})

	placed, err := svc.PlaceOrder(cartWith(p, "10", 2), placeReq(), nil)
	require.NoError(t, err)

	// Raise the product's price; the historical order must not move.
	require.NoError(t, db.Model(&product.Product{}).
		Where("id = ?", p.ID).Update("retail_price", 99999).Error)

	fetched, err := svc.GetOrder(placed.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	require.Equal(t, int64(10000), fetched.Items[0].UnitPrice)
	require.Equal(t, int64(20000), fetched.Items[0].TotalPrice)
	require.Equal(t, int64(20000), fetched.TotalPrice)
	require.Equal(t, "jordan@example.com", fetched.CustomerEmail)
}

func TestPlaceOrderSendsOneConfirmation(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := newTestService(t, db, notifier)
	p := seedProduct(t, db, "AA1", map[string]int{"10": 5})

	_, err := svc.PlaceOrder(cartWith(p, "10", 1), placeReq(), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"jordan@example.com"}, notifier.confirmations)
}

func TestPlaceOrderSurvivesFailedDecrement(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, &fakeNotifier{})
	// No stock row for this size: the decrement fails, the order stands.
	p := seedProduct(t, db, "AA1", nil)

	placed, err := svc.PlaceOrder(cartWith(p, "11", 1), placeReq(), nil)
	require.NoError(t, err)

	fetched, err := svc.GetOrder(placed.ID)
	require.NoError(t, err)
	require.Equal(t, StatusProcessing, fetched.Status)
}

func TestUpdateStatusShippedSendsExactlyOneEmail(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := newTestService(t, db, notifier)
	p := seedProduct(t, db, "AA1", map[string]int{"10": 5})

	placed, err := svc.PlaceOrder(cartWith(p, "10", 1), placeReq(), nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(placed.ID, StatusShipped)
	require.NoError(t, err)
	require.Equal(t, StatusShipped, updated.Status)

	// Exactly one notification, addressed to the order's customer.
	require.Equal(t, []statusUpdate{{email: "jordan@example.com", status: StatusShipped}}, notifier.statusUpdates)
}

func TestUpdateStatusUnknownValuePersistsWithoutEmail(t *testing.T) {
	db := setupTestDB(t)
	notifier := &fakeNotifier{}
	svc := newTestService(t, db, notifier)
	p := seedProduct(t, db, "AA1", map[string]int{"10": 5})

	placed, err := svc.PlaceOrder(cartWith(p, "10", 1), placeReq(), nil)
	require.NoError(t, err)

	updated, err := svc.UpdateStatus(placed.ID, Status("On Hold"))
	require.NoError(t, err)
	require.Equal(t, Status("On Hold"), updated.Status)
	require.Empty(t, notifier.statusUpdates)
}

func TestUpdateStatusMissingOrderFails(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, &fakeNotifier{})

	_, err := svc.UpdateStatus(404, StatusShipped)
	require.Error(t, err)
}

func TestGetUserOrdersScopedToUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db, &fakeNotifier{})
	p := seedProduct(t, db, "AA1", map[string]int{"10": 9})

	uid := uint(7)
	_, err := svc.PlaceOrder(cartWith(p, "10", 1), placeReq(), &uid)
	require.NoError(t, err)
	_, err = svc.PlaceOrder(cartWith(p, "10", 1), placeReq(), nil) // guest
	require.NoError(t, err)

	orders, err := svc.GetUserOrders(uid)
	require.NoError(t, err)
	require.Len(t, orders, 1)
}
