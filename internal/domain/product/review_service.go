// internal/domain/product/review_service.go
package product

import (
	"fmt"

	"github.com/your-org/sneakershop-backend/internal/config"
	"gorm.io/gorm"
)

// ReviewService handles product review logic
type ReviewService struct {
	db     *gorm.DB
	config *config.Config
}

// NewReviewService creates a new review service
func NewReviewService(db *gorm.DB, cfg *config.Config) *ReviewService {
	return &ReviewService{
		db:     db,
		config: cfg,
	}
}

// CreateReviewRequest represents review submission data
type CreateReviewRequest struct {
	Name    string `json:"name" binding:"required"`
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"required"`
}

// ReviewSummary aggregates review stats for a product
type ReviewSummary struct {
	Count         int64   `json:"count"`
	AverageRating float64 `json:"average_rating"`
}

// AddReview adds a review to the product identified by SKU
func (s *ReviewService) AddReview(sku string, userID *uint, req *CreateReviewRequest) (*Review, error) {
	var prod Product
	if err := s.db.Where("sku = ?", sku).First(&prod).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	review := Review{
		ProductID: prod.ID,
		UserID:    userID,
		Name:      req.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := s.db.Create(&review).Error; err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return &review, nil
}

// GetReviews retrieves all reviews for a product SKU, newest first
func (s *ReviewService) GetReviews(sku string) ([]Review, error) {
	var prod Product
	if err := s.db.Where("sku = ?", sku).First(&prod).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("product not found")
		}
		return nil, fmt.Errorf("failed to retrieve product: %w", err)
	}

	var reviews []Review
	if err := s.db.Where("product_id = ?", prod.ID).Order("created_at DESC").Find(&reviews).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve reviews: %w", err)
	}
	return reviews, nil
}

// GetReviewSummary returns count and average rating for a product
func (s *ReviewService) GetReviewSummary(productID uint) (*ReviewSummary, error) {
	var summary ReviewSummary
	row := s.db.Model(&Review{}).
		Where("product_id = ?", productID).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as average_rating").
		Row()
	if err := row.Scan(&summary.Count, &summary.AverageRating); err != nil {
		return nil, fmt.Errorf("failed to aggregate reviews: %w", err)
	}
	return &summary, nil
}
