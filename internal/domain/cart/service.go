// internal/domain/cart/service.go
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/product"
	"gorm.io/gorm"
)

const cartTTL = 24 * time.Hour

// ErrProductNotFound is returned when the requested SKU does not resolve to
// an active product.
var ErrProductNotFound = errors.New("product not found")

// WishlistAdder adds a product to a user's wishlist. Implemented by the
// wishlist service; declared here so MoveToWishlist stays decoupled.
type WishlistAdder interface {
	Add(userID, productID uint) error
}

// Service handles cart business logic. The cart itself lives in Redis,
// keyed by session; the database is only consulted to resolve products.
type Service struct {
	db          *gorm.DB
	redisClient *redis.Client
	config      *config.Config
}

// NewService creates a new cart service
func NewService(db *gorm.DB, redisClient *redis.Client, cfg *config.Config) *Service {
	return &Service{
		db:          db,
		redisClient: redisClient,
		config:      cfg,
	}
}

// AddToCartRequest represents add to cart request
type AddToCartRequest struct {
	SKU      string `json:"sku" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity"`
}

// UpdateQuantityRequest represents an update-quantity request
type UpdateQuantityRequest struct {
	ItemID string `json:"item_id" binding:"required"`
	// Delta deliberately has no required binding: zero is a valid no-op delta.
	Delta int `json:"delta"`
}

// MoveToWishlistRequest represents a move-to-wishlist request
type MoveToWishlistRequest struct {
	ItemID    string `json:"item_id" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
}

// GetCart retrieves the cart for a session, returning an empty cart if none
func (s *Service) GetCart(sessionID string) (*Cart, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID required")
	}

	ctx := context.Background()
	cartKey := s.cartKey(sessionID)

	cartData, err := s.redisClient.Get(ctx, cartKey).Result()
	if err == redis.Nil {
		now := time.Now().UTC()
		return &Cart{
			SessionID: sessionID,
			Items:     []LineItem{},
			CreatedAt: now,
			UpdatedAt: now,
			ExpiresAt: now.Add(cartTTL),
		}, nil
	} else if err != nil {
		return nil, fmt.Errorf("failed to retrieve cart: %w", err)
	}

	var c Cart
	if err := json.Unmarshal([]byte(cartData), &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}
	return &c, nil
}

// AddToCart resolves the product and merges a line item into the session cart
func (s *Service) AddToCart(sessionID string, req *AddToCartRequest) (*Cart, error) {
	var prod product.Product
	result := s.db.Where("sku = ? AND is_active = ?", req.SKU, true).First(&prod)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to resolve product: %w", result.Error)
	}

	c, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	item := LineItem{
		ItemID:    MakeItemID(prod.SKU, req.Size),
		ProductID: prod.ID,
		SKU:       prod.SKU,
		Name:      prod.Name,
		Brand:     prod.Brand,
		Size:      req.Size,
		UnitPrice: prod.RetailPrice,
	}

	qty := req.Quantity
	if qty < 1 {
		qty = 1
	}

	updated := c.Add(item, qty)
	if err := s.saveCart(sessionID, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// RemoveFromCart removes a line item. No-op if the item is absent.
func (s *Service) RemoveFromCart(sessionID, itemID string) (*Cart, error) {
	c, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	updated := c.Remove(itemID)
	if err := s.saveCart(sessionID, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// UpdateQuantity applies a signed delta; quantities of zero or below remove
// the item.
func (s *Service) UpdateQuantity(sessionID string, req *UpdateQuantityRequest) (*Cart, error) {
	c, err := s.GetCart(sessionID)
	if err != nil {
		return nil, err
	}

	updated := c.AdjustQuantity(req.ItemID, req.Delta)
	if err := s.saveCart(sessionID, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// MoveToWishlist adds the product to the user's wishlist and then removes the
// line item from the cart. The two writes are independent; a failure between
// them can leave the item in both places, which is acceptable since wishlist
// and cart are independent concepts.
func (s *Service) MoveToWishlist(sessionID string, userID uint, req *MoveToWishlistRequest, wl WishlistAdder) (*Cart, error) {
	if err := wl.Add(userID, req.ProductID); err != nil {
		return nil, fmt.Errorf("failed to add to wishlist: %w", err)
	}

	return s.RemoveFromCart(sessionID, req.ItemID)
}

// ClearCart empties the session cart. Called after successful order placement.
func (s *Service) ClearCart(sessionID string) error {
	ctx := context.Background()
	return s.redisClient.Del(ctx, s.cartKey(sessionID)).Err()
}

func (s *Service) saveCart(sessionID string, c *Cart) error {
	ctx := context.Background()

	cartData, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	return s.redisClient.Set(ctx, s.cartKey(sessionID), cartData, cartTTL).Err()
}

func (s *Service) cartKey(sessionID string) string {
	return fmt.Sprintf("cart:session:%s", sessionID)
}
