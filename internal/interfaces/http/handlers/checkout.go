// internal/interfaces/http/handlers/checkout.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/cart"
	"github.com/your-org/sneakershop-backend/internal/domain/order"
	"github.com/your-org/sneakershop-backend/internal/domain/stock"
	"github.com/your-org/sneakershop-backend/internal/interfaces/http/middleware"
	"github.com/your-org/sneakershop-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// CheckoutHandler handles the cart-to-order conversion
type CheckoutHandler struct {
	cartService  *cart.Service
	orderService *order.Service
	config       *config.Config
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *CheckoutHandler {
	notifier := email.NewNotifier(email.NewEmailService(cfg))
	return &CheckoutHandler{
		cartService:  cart.NewService(db, redisClient, cfg),
		orderService: order.NewService(db, cfg, stock.NewService(db, cfg), notifier),
		config:       cfg,
	}
}

// PlaceOrder handles POST /checkout. The session cart becomes
// a persisted order; the cart is cleared only after the order stands.
func (h *CheckoutHandler) PlaceOrder(c *gin.Context) {
	sessionID := middleware.GetSessionIDFromContext(c)

	var req order.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	sessionCart, err := h.cartService.GetCart(sessionID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to load cart",
		})
		return
	}

	var userID *uint
	if uid, ok := middleware.GetUserIDFromContext(c); ok {
		userID = &uid
	}

	placed, err := h.orderService.PlaceOrder(*sessionCart, &req, userID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": err.Error(),
		})
		return
	}

	if err := h.cartService.ClearCart(sessionID); err != nil {
		logrus.WithError(err).WithField("session_id", sessionID).
			Warn("Failed to clear cart after order placement")
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"data": gin.H{
			"order_id":     placed.ID,
			"order_number": placed.OrderNumber,
			"total_price":  placed.TotalPrice,
			"status":       placed.Status,
		},
	})
}

// GetConfirmation handles GET /checkout/confirmation/:orderNumber
func (h *CheckoutHandler) GetConfirmation(c *gin.Context) {
	placed, err := h.orderService.GetOrderByNumber(c.Param("orderNumber"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order confirmed",
		"data":    placed,
	})
}
