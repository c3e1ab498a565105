// internal/domain/analytics/service.go
package analytics

import (
	"fmt"
	"time"

	"github.com/your-org/sneakershop-backend/internal/config"
	"gorm.io/gorm"
)

// Service computes admin dashboard aggregates
type Service struct {
	db     *gorm.DB
	config *config.Config
}

// NewService creates a new analytics service
func NewService(db *gorm.DB, cfg *config.Config) *Service {
	return &Service{
		db:     db,
		config: cfg,
	}
}

// DashboardStats is the admin dashboard summary
type DashboardStats struct {
	TotalRevenue     int64 `json:"total_revenue"` // In cents, cancelled orders excluded
	RevenueToday     int64 `json:"revenue_today"`
	RevenueThisMonth int64 `json:"revenue_this_month"`

	TotalOrders      int64 `json:"total_orders"`
	OrdersToday      int64 `json:"orders_today"`
	ProcessingOrders int64 `json:"processing_orders"`

	TotalUsers    int64 `json:"total_users"`
	NewUsersToday int64 `json:"new_users_today"`

	TotalProducts      int64 `json:"total_products"`
	ActiveProducts     int64 `json:"active_products"`
	OutOfStockSizes    int64 `json:"out_of_stock_sizes"`
	OpenSupportTickets int64 `json:"open_support_tickets"`
}

// TopProduct is one row of the best-sellers table
type TopProduct struct {
	ProductID uint   `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	UnitsSold int64  `json:"units_sold"`
	Revenue   int64  `json:"revenue"`
}

// GetDashboardStats aggregates the dashboard counters in one pass
func (s *Service) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	// Revenue
	s.db.Raw("SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status != 'Cancelled'").Scan(&stats.TotalRevenue)
	s.db.Raw("SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status != 'Cancelled' AND created_at >= ?", today).Scan(&stats.RevenueToday)
	s.db.Raw("SELECT COALESCE(SUM(total_price), 0) FROM orders WHERE status != 'Cancelled' AND created_at >= ?", thisMonth).Scan(&stats.RevenueThisMonth)

	// Orders
	s.db.Raw("SELECT COUNT(*) FROM orders").Scan(&stats.TotalOrders)
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE created_at >= ?", today).Scan(&stats.OrdersToday)
	s.db.Raw("SELECT COUNT(*) FROM orders WHERE status = 'Processing'").Scan(&stats.ProcessingOrders)

	// Users
	s.db.Raw("SELECT COUNT(*) FROM users WHERE deleted_at IS NULL").Scan(&stats.TotalUsers)
	s.db.Raw("SELECT COUNT(*) FROM users WHERE deleted_at IS NULL AND created_at >= ?", today).Scan(&stats.NewUsersToday)

	// Catalog
	s.db.Raw("SELECT COUNT(*) FROM products WHERE deleted_at IS NULL").Scan(&stats.TotalProducts)
	s.db.Raw("SELECT COUNT(*) FROM products WHERE deleted_at IS NULL AND is_active = ?", true).Scan(&stats.ActiveProducts)
	s.db.Raw("SELECT COUNT(*) FROM product_stock WHERE quantity <= 0").Scan(&stats.OutOfStockSizes)

	// Support
	s.db.Raw("SELECT COUNT(*) FROM support_tickets WHERE status = 'Open'").Scan(&stats.OpenSupportTickets)

	return stats, nil
}

// GetTopProducts returns the best sellers over the last N days by units
// sold, cancelled orders excluded
func (s *Service) GetTopProducts(days, limit int) ([]TopProduct, error) {
	if days < 1 {
		days = 30
	}
	if limit < 1 || limit > 50 {
		limit = 10
	}
	since := time.Now().UTC().AddDate(0, 0, -days)

	var top []TopProduct
	err := s.db.Raw(`
		SELECT
			oi.product_id,
			oi.sku,
			oi.name,
			SUM(oi.quantity) AS units_sold,
			SUM(oi.total_price) AS revenue
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE o.status != 'Cancelled' AND o.created_at >= ?
		GROUP BY oi.product_id, oi.sku, oi.name
		ORDER BY units_sold DESC
		LIMIT ?`, since, limit).Scan(&top).Error
	if err != nil {
		return nil, fmt.Errorf("failed to compute top products: %w", err)
	}

	return top, nil
}
