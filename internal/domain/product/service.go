// internal/domain/product/service.go
package product

import (
	"fmt"

	"github.com/your-org/sneakershop-backend/internal/config"
	"gorm.io/gorm"
)

// Service handles product business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new product service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ProductListRequest represents product list query parameters
type ProductListRequest struct {
	Page      int    `form:"page,default=1"`
	Limit     int    `form:"limit,default=20"`
	Brand     string `form:"brand"`
	Gender    string `form:"gender"`
	Search    string `form:"search"`
	SortBy    string `form:"sort_by,default=created_at"`
	SortOrder string `form:"sort_order,default=desc"`
}

// ProductListResponse represents a paginated product list
type ProductListResponse struct {
	Products   []Product  `json:"products"`
	Pagination Pagination `json:"pagination"`
}

// Pagination represents pagination information
type Pagination struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// CreateProductRequest represents admin product creation data
type CreateProductRequest struct {
	SKU          string         `json:"sku" binding:"required"`
	Name         string         `json:"name" binding:"required"`
	Brand        string         `json:"brand"`
	Gender       string         `json:"gender"`
	Colorway     string         `json:"colorway"`
	RetailPrice  int64          `json:"retail_price" binding:"required,min=0"`
	ImageURL     string         `json:"image_url"`
	ThumbnailURL string         `json:"thumbnail_url"`
	Stock        map[string]int `json:"stock"` // display size -> quantity
}

// UpdateProductRequest represents admin product update data
type UpdateProductRequest struct {
	Name         *string `json:"name"`
	Brand        *string `json:"brand"`
	Gender       *string `json:"gender"`
	Colorway     *string `json:"colorway"`
	RetailPrice  *int64  `json:"retail_price"`
	ImageURL     *string `json:"image_url"`
	ThumbnailURL *string `json:"thumbnail_url"`
	IsActive     *bool   `json:"is_active"`
}

// GetProducts retrieves products with filtering and pagination
func (s *Service) GetProducts(req *ProductListRequest) (*ProductListResponse, error) {
	var products []Product
	var total int64

	query := s.db.Model(&Product{}).Where("is_active = ?", true).Preload("Stock")

	if req.Brand != "" {
		query = query.Where("brand = ?", req.Brand)
	}
	if req.Gender != "" {
		query = query.Where("gender = ?", req.Gender)
	}
	if req.Search != "" {
		like := "%" + req.Search + "%"
		query = query.Where("name LIKE ? OR brand LIKE ? OR sku LIKE ?", like, like, like)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order(s.buildOrderClause(req.SortBy, req.SortOrder))

	offset := (req.Page - 1) * req.Limit
	if err := query.Offset(offset).Limit(req.Limit).Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve products: %w", err)
	}

	totalPages := int((total + int64(req.Limit) - 1) / int64(req.Limit))
	return &ProductListResponse{
		Products: products,
		Pagination: Pagination{
			Page:       req.Page,
			Limit:      req.Limit,
			Total:      total,
			TotalPages: totalPages,
			HasNext:    req.Page < totalPages,
			HasPrev:    req.Page > 1,
		},
	}, nil
}

// GetProductBySKU retrieves a single product by SKU
func (s *Service) GetProductBySKU(sku string) (*Product, error) {
	var prod Product
	result := s.db.Preload("Stock").Preload("Reviews", func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC")
	}).Where("sku = ?", sku).First(&prod)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}

	return &prod, nil
}

// GetProduct retrieves a single product by ID
func (s *Service) GetProduct(id uint) (*Product, error) {
	var prod Product
	result := s.db.Preload("Stock").Where("id = ?", id).First(&prod)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", result.Error)
	}
	return &prod, nil
}

// SKUExists reports whether a product with the given SKU exists locally.
// Matching is exact and case-sensitive.
func (s *Service) SKUExists(sku string) (bool, error) {
	var count int64
	if err := s.db.Model(&Product{}).Where("sku = ?", sku).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check sku: %w", err)
	}
	return count > 0, nil
}

// CreateProduct creates a new product with its per-size stock rows
func (s *Service) CreateProduct(req *CreateProductRequest) (*Product, error) {
	exists, err := s.SKUExists(req.SKU)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("product with sku %s already exists", req.SKU)
	}

	prod := Product{
		SKU:          req.SKU,
		Name:         req.Name,
		Brand:        req.Brand,
		Gender:       req.Gender,
		Colorway:     req.Colorway,
		RetailPrice:  req.RetailPrice,
		ImageURL:     req.ImageURL,
		ThumbnailURL: req.ThumbnailURL,
		IsActive:     true,
	}

	for size, qty := range req.Stock {
		prod.Stock = append(prod.Stock, SizeStock{
			SizeKey:  SanitizeSizeKey(size),
			Quantity: qty,
		})
	}

	if err := s.db.Create(&prod).Error; err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return &prod, nil
}

// UpdateProduct updates product fields selectively
func (s *Service) UpdateProduct(id uint, req *UpdateProductRequest) (*Product, error) {
	prod, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Brand != nil {
		updates["brand"] = *req.Brand
	}
	if req.Gender != nil {
		updates["gender"] = *req.Gender
	}
	if req.Colorway != nil {
		updates["colorway"] = *req.Colorway
	}
	if req.RetailPrice != nil {
		updates["retail_price"] = *req.RetailPrice
	}
	if req.ImageURL != nil {
		updates["image_url"] = *req.ImageURL
	}
	if req.ThumbnailURL != nil {
		updates["thumbnail_url"] = *req.ThumbnailURL
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}

	if len(updates) == 0 {
		return prod, nil
	}

	if err := s.db.Model(prod).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return s.GetProduct(id)
}

// DeleteProduct soft-deletes a product
func (s *Service) DeleteProduct(id uint) error {
	result := s.db.Delete(&Product{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("product not found")
	}
	return nil
}

// ListBrands returns the distinct brands in the catalog
func (s *Service) ListBrands() ([]string, error) {
	var brands []string
	err := s.db.Model(&Product{}).
		Where("is_active = ?", true).
		Distinct("brand").
		Order("brand asc").
		Pluck("brand", &brands).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list brands: %w", err)
	}
	return brands, nil
}

func (s *Service) buildOrderClause(sortBy, sortOrder string) string {
	validSortFields := map[string]bool{
		"created_at":   true,
		"imported_at":  true,
		"retail_price": true,
		"name":         true,
		"brand":        true,
	}

	if !validSortFields[sortBy] {
		sortBy = "created_at"
	}

	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = "desc"
	}

	return fmt.Sprintf("%s %s", sortBy, sortOrder)
}
