// internal/domain/stock/service.go
package stock

import (
	"fmt"

	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/product"
	"gorm.io/gorm"
)

// Service handles the per-product, per-size stock ledger
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new stock service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// UpdateStockRequest represents an admin stock adjustment
type UpdateStockRequest struct {
	Stock map[string]int `json:"stock" binding:"required"` // display size -> quantity
}

// GetLevels returns the stock counters for a product keyed by sanitized size key
func (s *Service) GetLevels(productID uint) (map[string]int, error) {
	var rows []product.SizeStock
	if err := s.db.Where("product_id = ?", productID).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve stock: %w", err)
	}

	levels := make(map[string]int, len(rows))
	for _, row := range rows {
		levels[row.SizeKey] = row.Quantity
	}
	return levels, nil
}

// SetLevels replaces the absolute stock quantity for each given size.
// Sizes not present in the request are left untouched; new sizes are created.
func (s *Service) SetLevels(productID uint, stock map[string]int) error {
	for size, qty := range stock {
		sizeKey := product.SanitizeSizeKey(size)

		var row product.SizeStock
		err := s.db.Where("product_id = ? AND size_key = ?", productID, sizeKey).First(&row).Error
		if err == gorm.ErrRecordNotFound {
			row = product.SizeStock{
				ProductID: productID,
				SizeKey:   sizeKey,
				Quantity:  qty,
			}
			if err := s.db.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create stock row: %w", err)
			}
			continue
		} else if err != nil {
			return fmt.Errorf("failed to retrieve stock row: %w", err)
		}

		if err := s.db.Model(&row).Update("quantity", qty).Error; err != nil {
			return fmt.Errorf("failed to update stock row: %w", err)
		}
	}
	return nil
}

// Decrement subtracts qty from the counter for the given product and size.
// The size is sanitized before lookup ("9.5" targets the "9_5" row). The
// update is a single relative UPDATE; there is no floor check, so a counter
// can go negative under concurrent orders.
func (s *Service) Decrement(productID uint, size string, qty int) error {
	sizeKey := product.SanitizeSizeKey(size)

	result := s.db.Model(&product.SizeStock{}).
		Where("product_id = ? AND size_key = ?", productID, sizeKey).
		UpdateColumn("quantity", gorm.Expr("quantity - ?", qty))

	if result.Error != nil {
		return fmt.Errorf("failed to decrement stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no stock row for product %d size %s", productID, sizeKey)
	}
	return nil
}

// Increment adds qty back to the counter, used when an order is cancelled
func (s *Service) Increment(productID uint, size string, qty int) error {
	sizeKey := product.SanitizeSizeKey(size)

	result := s.db.Model(&product.SizeStock{}).
		Where("product_id = ? AND size_key = ?", productID, sizeKey).
		UpdateColumn("quantity", gorm.Expr("quantity + ?", qty))

	if result.Error != nil {
		return fmt.Errorf("failed to increment stock: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no stock row for product %d size %s", productID, sizeKey)
	}
	return nil
}

// Available returns the current quantity for a product size, 0 if absent
func (s *Service) Available(productID uint, size string) (int, error) {
	sizeKey := product.SanitizeSizeKey(size)

	var row product.SizeStock
	err := s.db.Where("product_id = ? AND size_key = ?", productID, sizeKey).First(&row).Error
	if err == gorm.ErrRecordNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to retrieve stock row: %w", err)
	}
	return row.Quantity, nil
}
