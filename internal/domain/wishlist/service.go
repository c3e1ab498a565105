// internal/domain/wishlist/service.go
package wishlist

import (
	"errors"
	"fmt"

	"github.com/your-org/sneakershop-backend/internal/config"
	"gorm.io/gorm"
)

// Toggle results
const (
	ResultAdded   = "added"
	ResultRemoved = "removed"
)

// Service handles wishlist business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new wishlist service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// ToggleRequest represents a wishlist toggle request
type ToggleRequest struct {
	ProductID uint `json:"product_id" binding:"required"`
}

// Toggle flips a product's membership in the user's wishlist and reports
// which way it went. Read-then-write, not atomic: two racing toggles for
// the same product can both observe "absent" and insert, leaving the
// product on the list. The unique index keeps duplicates out of the table.
func (s *Service) Toggle(userID, productID uint) (string, error) {
	var existing Item
	err := s.db.Where("user_id = ? AND product_id = ?", userID, productID).First(&existing).Error

	if err == nil {
		if err := s.db.Delete(&existing).Error; err != nil {
			return "", fmt.Errorf("failed to remove wishlist item: %w", err)
		}
		return ResultRemoved, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", fmt.Errorf("failed to check wishlist: %w", err)
	}

	item := Item{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return "", fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return ResultAdded, nil
}

// Add puts a product on the user's wishlist. Adding a product that is
// already present is a no-op, so moves from the cart can be retried safely.
func (s *Service) Add(userID, productID uint) error {
	var count int64
	if err := s.db.Model(&Item{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check wishlist: %w", err)
	}
	if count > 0 {
		return nil
	}

	item := Item{
		UserID:    userID,
		ProductID: productID,
	}
	if err := s.db.Create(&item).Error; err != nil {
		return fmt.Errorf("failed to add wishlist item: %w", err)
	}

	return nil
}

// Remove takes a product off the user's wishlist
func (s *Service) Remove(userID, productID uint) error {
	result := s.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&Item{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove wishlist item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("wishlist item not found")
	}
	return nil
}

// GetWishlist retrieves the user's wishlist with product details, newest first
func (s *Service) GetWishlist(userID uint) ([]Item, error) {
	var items []Item
	if err := s.db.Where("user_id = ?", userID).
		Preload("Product").
		Preload("Product.Stock").
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve wishlist: %w", err)
	}
	return items, nil
}

// Contains reports whether a product is on the user's wishlist
func (s *Service) Contains(userID, productID uint) (bool, error) {
	var count int64
	if err := s.db.Model(&Item{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check wishlist: %w", err)
	}
	return count > 0, nil
}
