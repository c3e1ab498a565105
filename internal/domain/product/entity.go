// internal/domain/product/entity.go
package product

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Product represents a sneaker in the local catalog
type Product struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	SKU          string         `gorm:"uniqueIndex;not null;size:100" json:"sku"`
	Name         string         `gorm:"not null;size:255" json:"name"`
	Brand        string         `gorm:"size:100;index" json:"brand"`
	Gender       string         `gorm:"size:20" json:"gender"`
	Colorway     string         `gorm:"size:100" json:"colorway"`
	RetailPrice  int64          `gorm:"not null" json:"retail_price"` // Price in cents, USD
	ImageURL     string         `gorm:"size:500" json:"image_url"`
	ThumbnailURL string         `gorm:"size:500" json:"thumbnail_url"`
	IsActive     bool           `gorm:"default:true" json:"is_active"`
	ImportedAt   *time.Time     `json:"imported_at,omitempty"` // set when the product came from a catalog import
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Stock   []SizeStock `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"stock,omitempty"`
	Reviews []Review    `gorm:"foreignKey:ProductID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"reviews,omitempty"`
}

// SizeStock is one per-size stock counter for a product.
// SizeKey is the sanitized size label ("9.5" is stored as "9_5").
type SizeStock struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ProductID uint      `gorm:"not null;index:idx_product_size,unique" json:"product_id"`
	SizeKey   string    `gorm:"not null;size:20;index:idx_product_size,unique" json:"size_key"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Review represents a customer review on a product
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ProductID uint           `gorm:"not null;index" json:"product_id"`
	UserID    *uint          `gorm:"index" json:"user_id,omitempty"`
	Name      string         `gorm:"size:100" json:"name"`
	Rating    int            `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment   string         `gorm:"type:text" json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName overrides
func (Product) TableName() string   { return "products" }
func (SizeStock) TableName() string { return "product_stock" }
func (Review) TableName() string    { return "reviews" }

// SanitizeSizeKey converts a display size to its storage key ("9.5" -> "9_5").
func SanitizeSizeKey(size string) string {
	return strings.ReplaceAll(strings.TrimSpace(size), ".", "_")
}

// DisplaySize converts a storage key back to its display form ("9_5" -> "9.5").
func DisplaySize(sizeKey string) string {
	return strings.ReplaceAll(sizeKey, "_", ".")
}

// GetFormattedPrice returns the retail price as dollars
func (p *Product) GetFormattedPrice() float64 {
	return float64(p.RetailPrice) / 100
}

// IsInStock reports whether any size has stock remaining
func (p *Product) IsInStock() bool {
	for _, s := range p.Stock {
		if s.Quantity > 0 {
			return true
		}
	}
	return false
}

// StockMap returns the per-size quantities keyed by sanitized size key
func (p *Product) StockMap() map[string]int {
	m := make(map[string]int, len(p.Stock))
	for _, s := range p.Stock {
		m[s.SizeKey] = s.Quantity
	}
	return m
}
