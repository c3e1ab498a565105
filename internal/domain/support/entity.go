// internal/domain/support/entity.go
package support

import (
	"time"
)

// Ticket statuses
const (
	StatusOpen     = "Open"
	StatusAnswered = "Answered"
	StatusClosed   = "Closed"
)

// Message senders
const (
	SenderCustomer = "customer"
	SenderStaff    = "staff"
)

// Ticket represents a support conversation, looked up by its short token
// rather than the row ID so customers can reference it without an account.
type Ticket struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TicketID  string    `gorm:"uniqueIndex;not null;size:12" json:"ticket_id"`
	UserEmail string    `gorm:"not null;size:255;index" json:"user_email"`
	Subject   string    `gorm:"not null;size:255" json:"subject"`
	Status    string    `gorm:"not null;default:'Open';size:20" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Messages []Message `gorm:"foreignKey:TicketRowID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"messages"`
}

// Message is one entry in a ticket's append-only conversation
type Message struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	TicketRowID uint      `gorm:"not null;index" json:"-"`
	Sender      string    `gorm:"not null;size:20" json:"sender"`
	Name        string    `gorm:"size:255" json:"name"`
	Body        string    `gorm:"type:text;not null" json:"body"`
	CreatedAt   time.Time `json:"created_at"`
}

// TableName overrides
func (Ticket) TableName() string  { return "support_tickets" }
func (Message) TableName() string { return "support_ticket_messages" }
