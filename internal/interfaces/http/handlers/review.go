// internal/interfaces/http/handlers/review.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/product"
	"github.com/your-org/sneakershop-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// ReviewHandler handles product review endpoints
type ReviewHandler struct {
	reviewService  *product.ReviewService
	productService *product.Service
	config         *config.Config
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(db *gorm.DB, cfg *config.Config) *ReviewHandler {
	return &ReviewHandler{
		reviewService:  product.NewReviewService(db, cfg),
		productService: product.NewService(db, cfg),
		config:         cfg,
	}
}

// AddReview handles POST /products/:sku/review. Guests can review; a
// signed-in reviewer gets their user ID attached.
func (h *ReviewHandler) AddReview(c *gin.Context) {
	var req product.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	var userID *uint
	if uid, ok := middleware.GetUserIDFromContext(c); ok {
		userID = &uid
	}

	review, err := h.reviewService.AddReview(c.Param("sku"), userID, &req)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Review added successfully",
		"data":    review,
	})
}

// ListReviews handles GET /products/:sku/reviews
func (h *ReviewHandler) ListReviews(c *gin.Context) {
	sku := c.Param("sku")

	reviews, err := h.reviewService.GetReviews(sku)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	p, err := h.productService.GetProductBySKU(sku)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Product not found",
		})
		return
	}

	summary, err := h.reviewService.GetReviewSummary(p.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to compute review summary",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reviews retrieved successfully",
		"data": gin.H{
			"reviews": reviews,
			"summary": summary,
		},
	})
}
