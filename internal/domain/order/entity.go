// internal/domain/order/entity.go
package order

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Status represents the order status
type Status string

const (
	StatusProcessing Status = "Processing"
	StatusShipped    Status = "Shipped"
	StatusDelivered  Status = "Delivered"
	StatusCancelled  Status = "Cancelled"
)

// KnownStatus reports whether a status value is one the store recognizes.
// Unknown values still persist; they just never trigger customer email.
func KnownStatus(s Status) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// Order represents a placed order. Item rows are snapshots of the cart at
// placement time; later product edits do not affect historical orders.
type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex;size:50" json:"order_number"`
	UserID      *uint  `gorm:"index" json:"user_id"` // nil for guest checkout
	Status      Status `gorm:"not null;default:'Processing'" json:"status"`

	CustomerName  string `gorm:"not null;size:255" json:"customer_name"`
	CustomerEmail string `gorm:"not null;size:255" json:"customer_email"`

	ShippingAddress Address `gorm:"embedded;embeddedPrefix:shipping_" json:"shipping_address"`

	TotalQty   int    `gorm:"not null" json:"total_qty"`
	TotalPrice int64  `gorm:"not null" json:"total_price"` // In cents
	Currency   string `gorm:"size:3;default:'USD'" json:"currency"`

	OrderDate time.Time      `gorm:"not null" json:"order_date"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Items []Item `gorm:"foreignKey:OrderID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"items"`
}

// Item represents a line item snapshot within an order
type Item struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	OrderID    uint      `gorm:"not null;index" json:"order_id"`
	ProductID  uint      `gorm:"not null;index" json:"product_id"`
	SKU        string    `gorm:"not null;size:100" json:"sku"`
	Name       string    `gorm:"not null;size:255" json:"name"`
	Brand      string    `gorm:"size:100" json:"brand"`
	Size       string    `gorm:"not null;size:10" json:"size"`
	Quantity   int       `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null" json:"unit_price"`  // Price per unit in cents
	TotalPrice int64     `gorm:"not null" json:"total_price"` // Quantity * UnitPrice
	CreatedAt  time.Time `json:"created_at"`
}

// Address represents the shipping address (embedded in Order)
type Address struct {
	AddressLine1 string `gorm:"size:255" json:"address_line1"`
	AddressLine2 string `gorm:"size:255" json:"address_line2"`
	City         string `gorm:"size:100" json:"city"`
	State        string `gorm:"size:100" json:"state"`
	PostalCode   string `gorm:"size:20" json:"postal_code"`
	Country      string `gorm:"size:2" json:"country"`
	Phone        string `gorm:"size:20" json:"phone"`
}

// TableName overrides
func (Order) TableName() string { return "orders" }
func (Item) TableName() string  { return "order_items" }

// GenerateOrderNumber generates a unique order number.
// Format: ORD-YYYYMMDD-XXXXX
func (o *Order) GenerateOrderNumber() string {
	return fmt.Sprintf("ORD-%s-%05d", o.OrderDate.Format("20060102"), o.ID)
}

// GetFormattedTotal returns total amount as float
func (o *Order) GetFormattedTotal() float64 {
	return float64(o.TotalPrice) / 100
}

// IsTerminal reports whether the order has reached a final status
func (o *Order) IsTerminal() bool {
	return o.Status == StatusDelivered || o.Status == StatusCancelled
}
