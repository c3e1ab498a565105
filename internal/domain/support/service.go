// internal/domain/support/service.go
package support

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/order"
	"gorm.io/gorm"
)

// Service handles support ticket business logic
type Service struct {
	db     *gorm.DB
	config *config.Config
	orders *order.Service
}

// NewService creates a new support service
func NewService(db *gorm.DB, cfg *config.Config, orderService *order.Service) *Service {
	return &Service{
		db:     db,
		config: cfg,
		orders: orderService,
	}
}

// CreateTicketRequest represents a new ticket submission
type CreateTicketRequest struct {
	Email   string `json:"email" binding:"required,email"`
	Name    string `json:"name" binding:"required"`
	Subject string `json:"subject" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// ReplyRequest represents a message appended to an existing ticket
type ReplyRequest struct {
	Name    string `json:"name"`
	Message string `json:"message" binding:"required"`
}

// newTicketToken derives a short lookup token from a UUID
func newTicketToken() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}

// CreateTicket opens a new ticket with its first customer message
func (s *Service) CreateTicket(req *CreateTicketRequest) (*Ticket, error) {
	ticket := Ticket{
		TicketID:  newTicketToken(),
		UserEmail: strings.ToLower(strings.TrimSpace(req.Email)),
		Subject:   req.Subject,
		Status:    StatusOpen,
		Messages: []Message{
			{
				Sender: SenderCustomer,
				Name:   req.Name,
				Body:   req.Message,
			},
		},
	}

	if err := s.db.Create(&ticket).Error; err != nil {
		return nil, fmt.Errorf("failed to create ticket: %w", err)
	}

	return &ticket, nil
}

// GetTicket looks up a ticket by token with its messages in arrival order
func (s *Service) GetTicket(token string) (*Ticket, error) {
	var ticket Ticket
	err := s.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Where("ticket_id = ?", strings.ToUpper(strings.TrimSpace(token))).
		First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("ticket not found")
		}
		return nil, fmt.Errorf("failed to retrieve ticket: %w", err)
	}
	return &ticket, nil
}

// Reply appends a message to the ticket's conversation. Messages are
// append-only; nothing ever edits or removes an earlier entry. A customer
// reply reopens the ticket, a staff reply marks it answered.
func (s *Service) Reply(token, sender string, req *ReplyRequest) (*Ticket, error) {
	ticket, err := s.GetTicket(token)
	if err != nil {
		return nil, err
	}

	msg := Message{
		TicketRowID: ticket.ID,
		Sender:      sender,
		Name:        req.Name,
		Body:        req.Message,
	}
	if err := s.db.Create(&msg).Error; err != nil {
		return nil, fmt.Errorf("failed to append reply: %w", err)
	}

	newStatus := StatusOpen
	if sender == SenderStaff {
		newStatus = StatusAnswered
	}
	if err := s.db.Model(&Ticket{}).Where("id = ?", ticket.ID).
		Update("status", newStatus).Error; err != nil {
		return nil, fmt.Errorf("failed to update ticket status: %w", err)
	}

	return s.GetTicket(token)
}

// CloseTicket marks a ticket closed. The conversation stays readable.
func (s *Service) CloseTicket(token string) (*Ticket, error) {
	ticket, err := s.GetTicket(token)
	if err != nil {
		return nil, err
	}

	if err := s.db.Model(&Ticket{}).Where("id = ?", ticket.ID).
		Update("status", StatusClosed).Error; err != nil {
		return nil, fmt.Errorf("failed to close ticket: %w", err)
	}

	ticket.Status = StatusClosed
	return ticket, nil
}

// ListTickets returns all tickets for the admin view, newest activity first
func (s *Service) ListTickets() ([]Ticket, error) {
	var tickets []Ticket
	if err := s.db.Preload("Messages", func(db *gorm.DB) *gorm.DB {
		return db.Order("id ASC")
	}).Order("updated_at DESC").Find(&tickets).Error; err != nil {
		return nil, fmt.Errorf("failed to retrieve tickets: %w", err)
	}
	return tickets, nil
}

// LookupOrderStatus is the self-service order status check on the support
// page: it requires both the order number and the matching customer email
// so an order number alone leaks nothing.
func (s *Service) LookupOrderStatus(orderNumber, email string) (*order.Order, error) {
	o, err := s.orders.GetOrderByNumber(strings.TrimSpace(orderNumber))
	if err != nil {
		return nil, err
	}
	if !strings.EqualFold(o.CustomerEmail, strings.TrimSpace(email)) {
		return nil, fmt.Errorf("order not found")
	}
	return o, nil
}
