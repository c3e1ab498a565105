// internal/domain/order/service.go
package order

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/cart"
	"github.com/your-org/sneakershop-backend/internal/domain/stock"
	"gorm.io/gorm"
)

// Notifier dispatches customer-facing order email. Sends are best-effort;
// the order service logs failures and never surfaces them to the customer.
type Notifier interface {
	SendOrderConfirmation(o *Order) error
	SendOrderStatusUpdate(o *Order) error
}

// Service handles order business logic
type Service struct {
	db       *gorm.DB
	config   *config.Config
	stock    *stock.Service
	notifier Notifier
}

// NewService creates a new order service
func NewService(db *gorm.DB, cfg *config.Config, stockService *stock.Service, notifier Notifier) *Service {
	return &Service{
		db:       db,
		config:   cfg,
		stock:    stockService,
		notifier: notifier,
	}
}

// PlaceOrderRequest represents the checkout form input
type PlaceOrderRequest struct {
	CustomerName  string `json:"customer_name" binding:"required"`
	CustomerEmail string `json:"customer_email" binding:"required,email"`
	AddressLine1  string `json:"address_line1" binding:"required"`
	AddressLine2  string `json:"address_line2"`
	City          string `json:"city" binding:"required"`
	State         string `json:"state"`
	PostalCode    string `json:"postal_code" binding:"required"`
	Country       string `json:"country" binding:"required,len=2"`
	Phone         string `json:"phone"`
}

// UpdateStatusRequest represents an admin status change
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// OrderListRequest represents admin order list parameters
type OrderListRequest struct {
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
	Status string `form:"status"`
}

// PlaceOrder converts a session cart into a persisted order. The cart items
// and totals are copied verbatim into the order snapshot. After the order
// row exists, each line item's stock is decremented concurrently and
// independently; a failed decrement is logged but rolls nothing back.
// The confirmation email is likewise best-effort.
func (s *Service) PlaceOrder(c cart.Cart, req *PlaceOrderRequest, userID *uint) (*Order, error) {
	if c.IsEmpty() {
		return nil, fmt.Errorf("cannot place an order with an empty cart")
	}

	currency := s.config.Store.DefaultCurrency
	if currency == "" {
		currency = "USD"
	}

	order := Order{
		UserID:        userID,
		Status:        StatusProcessing,
		CustomerName:  req.CustomerName,
		CustomerEmail: strings.ToLower(strings.TrimSpace(req.CustomerEmail)),
		ShippingAddress: Address{
			AddressLine1: req.AddressLine1,
			AddressLine2: req.AddressLine2,
			City:         req.City,
			State:        req.State,
			PostalCode:   req.PostalCode,
			Country:      strings.ToUpper(req.Country),
			Phone:        req.Phone,
		},
		TotalQty:   c.TotalQty,
		TotalPrice: c.TotalPrice,
		Currency:   currency,
		OrderDate:  time.Now().UTC(),
	}

	for _, item := range c.Items {
		order.Items = append(order.Items, Item{
			ProductID:  item.ProductID,
			SKU:        item.SKU,
			Name:       item.Name,
			Brand:      item.Brand,
			Size:       item.Size,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.Price,
		})
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		order.OrderNumber = order.GenerateOrderNumber()
		if err := tx.Model(&Order{}).Where("id = ?", order.ID).
			Update("order_number", order.OrderNumber).Error; err != nil {
			return fmt.Errorf("failed to assign order number: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var wg sync.WaitGroup
	for _, item := range order.Items {
		wg.Add(1)
		go func(it Item) {
			defer wg.Done()
			if err := s.stock.Decrement(it.ProductID, it.Size, it.Quantity); err != nil {
				logrus.WithError(err).WithFields(logrus.Fields{
					"order_number": order.OrderNumber,
					"product_id":   it.ProductID,
					"size":         it.Size,
				}).Error("Stock decrement failed")
			}
		}(item)
	}
	wg.Wait()

	if s.notifier != nil {
		if err := s.notifier.SendOrderConfirmation(&order); err != nil {
			logrus.WithError(err).WithField("order_number", order.OrderNumber).
				Warn("Order confirmation email failed")
		}
	}

	return &order, nil
}

// UpdateStatus sets the order's status directly. Transitions are not
// validated; the admin can set any value, and unknown values persist
// without triggering email. Known statuses send a best-effort status
// update email built from the post-update record.
func (s *Service) UpdateStatus(orderID uint, newStatus Status) (*Order, error) {
	result := s.db.Model(&Order{}).Where("id = ?", orderID).Update("status", newStatus)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("order not found")
	}

	updated, err := s.GetOrder(orderID)
	if err != nil {
		return nil, err
	}

	if KnownStatus(updated.Status) && s.notifier != nil {
		if err := s.notifier.SendOrderStatusUpdate(updated); err != nil {
			logrus.WithError(err).WithField("order_number", updated.OrderNumber).
				Warn("Order status email failed")
		}
	}

	return updated, nil
}

// GetOrder retrieves an order with its items
func (s *Service) GetOrder(orderID uint) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").First(&order, orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

// GetOrderByNumber retrieves an order by its order number
func (s *Service) GetOrderByNumber(orderNumber string) (*Order, error) {
	var order Order
	if err := s.db.Preload("Items").
		Where("order_number = ?", orderNumber).
		First(&order).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("order not found")
		}
		return nil, fmt.Errorf("failed to retrieve order: %w", err)
	}
	return &order, nil
}

// GetUserOrders retrieves a user's orders, newest first
func (s *Service) GetUserOrders(userID uint) ([]Order, error) {
	var orders []Order
	if err := s.db.Preload("Items").
		Where("user_id = ?", userID).
		Order("order_date DESC").
		Find(&orders).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve orders: %w", err)
	}
	return orders, nil
}

// ListOrders retrieves orders for the admin view with pagination
func (s *Service) ListOrders(req *OrderListRequest) ([]Order, int64, error) {
	var orders []Order
	var total int64

	query := s.db.Model(&Order{})
	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	if req.Page < 1 {
		req.Page = 1
	}
	if req.Limit < 1 || req.Limit > 100 {
		req.Limit = 20
	}
	offset := (req.Page - 1) * req.Limit

	if err := query.Preload("Items").
		Order("order_date DESC").
		Offset(offset).Limit(req.Limit).
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to retrieve orders: %w", err)
	}

	return orders, total, nil
}
