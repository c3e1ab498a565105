// internal/domain/activity/entity.go
package activity

import "time"

// Log actions
const (
	ActionProductImport = "product_import"
	ActionProductDelete = "product_delete"
	ActionStockUpdate   = "stock_update"
	ActionStatusChange  = "order_status_change"
	ActionUserLogin     = "user_login"
)

// Log represents an audit trail entry for admin and account actions
type Log struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    *uint     `gorm:"index" json:"user_id"`
	ActorName string    `gorm:"size:255" json:"actor_name"`
	Action    string    `gorm:"not null;size:100;index" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Log) TableName() string {
	return "activity_log"
}
