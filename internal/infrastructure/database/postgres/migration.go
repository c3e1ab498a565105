// internal/infrastructure/database/postgres/migration.go
package postgres

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/your-org/sneakershop-backend/internal/domain/activity"
	"github.com/your-org/sneakershop-backend/internal/domain/order"
	"github.com/your-org/sneakershop-backend/internal/domain/product"
	"github.com/your-org/sneakershop-backend/internal/domain/support"
	"github.com/your-org/sneakershop-backend/internal/domain/user"
	"github.com/your-org/sneakershop-backend/internal/domain/wishlist"
	"gorm.io/gorm"
)

// Migration handles database schema migrations
type Migration struct {
	db *gorm.DB
}

// NewMigration creates a new migration handler
func NewMigration(db *gorm.DB) *Migration {
	return &Migration{db: db}
}

// Run migrates all domain models. Carts live in Redis and have no table.
func (m *Migration) Run() error {
	models := []interface{}{
		&user.User{},
		&product.Product{},
		&product.SizeStock{},
		&product.Review{},
		&order.Order{},
		&order.Item{},
		&wishlist.Item{},
		&support.Ticket{},
		&support.Message{},
		&activity.Log{},
	}

	for _, model := range models {
		if err := m.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate %T: %w", model, err)
		}
	}

	logrus.Info("Database migrations completed")
	return nil
}
