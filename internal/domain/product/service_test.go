package product

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(&Product{}, &SizeStock{}, &Review{}))
	return db
}

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return NewService(db, &config.Config{}), db
}

func createReq(sku, name string) *CreateProductRequest {
	return &CreateProductRequest{
		SKU:         sku,
		Name:        name,
		Brand:       "Nike",
		Gender:      "men",
		RetailPrice: 12000,
		Stock:       map[string]int{"9.5": 5, "10": 3},
	}
}

func TestCreateProductWithStockRows(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(createReq("DD1391-100", "Dunk Low Panda"))
	require.NoError(t, err)
	require.True(t, p.IsActive)
	require.Nil(t, p.ImportedAt)

	got, err := svc.GetProductBySKU("DD1391-100")
	require.NoError(t, err)
	require.Equal(t, map[string]int{"9_5": 5, "10": 3}, got.StockMap())
}

func TestCreateProductRejectsDuplicateSKU(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(createReq("DD1391-100", "Dunk Low Panda"))
	require.NoError(t, err)

	_, err = svc.CreateProduct(createReq("DD1391-100", "Dunk Low Panda Restock"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "already exists")
}

func TestSKUExistsIsCaseSensitive(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(createReq("dd1391-100", "Dunk Low Panda"))
	require.NoError(t, err)

	exists, err := svc.SKUExists("dd1391-100")
	require.NoError(t, err)
	require.True(t, exists)

	exists, err = svc.SKUExists("DD1391-100")
	require.NoError(t, err)
	require.False(t, exists)
}

func TestGetProductsFiltersAndPaginates(t *testing.T) {
	svc, _ := newTestService(t)

	for _, sku := range []string{"N-1", "N-2", "N-3"} {
		_, err := svc.CreateProduct(createReq(sku, "Air Force 1"))
		require.NoError(t, err)
	}
	adidas := createReq("A-1", "Samba OG")
	adidas.Brand = "Adidas"
	_, err := svc.CreateProduct(adidas)
	require.NoError(t, err)

	resp, err := svc.GetProducts(&ProductListRequest{Page: 1, Limit: 2, Brand: "Nike"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 2)
	require.Equal(t, int64(3), resp.Pagination.Total)
	require.Equal(t, 2, resp.Pagination.TotalPages)
	require.True(t, resp.Pagination.HasNext)
	require.False(t, resp.Pagination.HasPrev)
}

func TestGetProductsSearchMatchesNameBrandSKU(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateProduct(createReq("CT8527-100", "Jordan 4 Military Black"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(createReq("DZ5485-612", "Jordan 1 Lost and Found"))
	require.NoError(t, err)

	resp, err := svc.GetProducts(&ProductListRequest{Page: 1, Limit: 20, Search: "Military"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
	require.Equal(t, "CT8527-100", resp.Products[0].SKU)

	resp, err = svc.GetProducts(&ProductListRequest{Page: 1, Limit: 20, Search: "DZ5485"})
	require.NoError(t, err)
	require.Len(t, resp.Products, 1)
}

func TestGetProductsHidesInactive(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(createReq("X-1", "Yeezy Boost 350"))
	require.NoError(t, err)

	inactive := false
	_, err = svc.UpdateProduct(p.ID, &UpdateProductRequest{IsActive: &inactive})
	require.NoError(t, err)

	resp, err := svc.GetProducts(&ProductListRequest{Page: 1, Limit: 20})
	require.NoError(t, err)
	require.Empty(t, resp.Products)
}

func TestUpdateProductPartial(t *testing.T) {
	svc, _ := newTestService(t)

	p, err := svc.CreateProduct(createReq("X-1", "Old Name"))
	require.NoError(t, err)

	name := "New Name"
	price := int64(15000)
	updated, err := svc.UpdateProduct(p.ID, &UpdateProductRequest{Name: &name, RetailPrice: &price})
	require.NoError(t, err)
	require.Equal(t, "New Name", updated.Name)
	require.Equal(t, int64(15000), updated.RetailPrice)
	require.Equal(t, "Nike", updated.Brand)
}

func TestDeleteProductSoftDeletes(t *testing.T) {
	svc, db := newTestService(t)

	p, err := svc.CreateProduct(createReq("X-1", "Air Max 95"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(p.ID))

	_, err = svc.GetProduct(p.ID)
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Unscoped().Model(&Product{}).Where("id = ?", p.ID).Count(&count).Error)
	require.Equal(t, int64(1), count)

	require.Error(t, svc.DeleteProduct(p.ID))
}

func TestListBrands(t *testing.T) {
	svc, _ := newTestService(t)

	for i, brand := range []string{"Nike", "Adidas", "Nike", "New Balance"} {
		req := createReq(string(rune('A'+i))+"-1", "Shoe")
		req.Brand = brand
		_, err := svc.CreateProduct(req)
		require.NoError(t, err)
	}

	brands, err := svc.ListBrands()
	require.NoError(t, err)
	require.Equal(t, []string{"Adidas", "New Balance", "Nike"}, brands)
}

func TestSizeKeyRoundTrip(t *testing.T) {
	require.Equal(t, "9_5", SanitizeSizeKey("9.5"))
	require.Equal(t, "9_5", SanitizeSizeKey("  9.5 "))
	require.Equal(t, "10", SanitizeSizeKey("10"))
	require.Equal(t, "9.5", DisplaySize("9_5"))
}
