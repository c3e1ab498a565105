// internal/interfaces/http/handlers/support.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/order"
	"github.com/your-org/sneakershop-backend/internal/domain/stock"
	"github.com/your-org/sneakershop-backend/internal/domain/support"
	"github.com/your-org/sneakershop-backend/internal/pkg/email"
	"gorm.io/gorm"
)

// SupportHandler handles support tickets and order status lookups
type SupportHandler struct {
	supportService *support.Service
	emailService   *email.EmailService
	config         *config.Config
}

// NewSupportHandler creates a new support handler
func NewSupportHandler(db *gorm.DB, cfg *config.Config) *SupportHandler {
	emailService := email.NewEmailService(cfg)
	notifier := email.NewNotifier(emailService)
	orderService := order.NewService(db, cfg, stock.NewService(db, cfg), notifier)
	return &SupportHandler{
		supportService: support.NewService(db, cfg, orderService),
		emailService:   emailService,
		config:         cfg,
	}
}

// CreateTicket handles POST /support/tickets
func (h *SupportHandler) CreateTicket(c *gin.Context) {
	var req support.CreateTicketRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ticket, err := h.supportService.CreateTicket(&req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to create ticket",
		})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Ticket created successfully",
		"data":    ticket,
	})
}

// GetTicket handles GET /support/tickets/:token
func (h *SupportHandler) GetTicket(c *gin.Context) {
	ticket, err := h.supportService.GetTicket(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Ticket not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket retrieved successfully",
		"data":    ticket,
	})
}

// Reply handles POST /support/tickets/:token/messages (customer side)
func (h *SupportHandler) Reply(c *gin.Context) {
	var req support.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ticket, err := h.supportService.Reply(c.Param("token"), support.SenderCustomer, &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Reply added successfully",
		"data":    ticket,
	})
}

// StaffReply handles POST /admin/support/tickets/:token/messages
func (h *SupportHandler) StaffReply(c *gin.Context) {
	var req support.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	ticket, err := h.supportService.Reply(c.Param("token"), support.SenderStaff, &req)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	// Best effort; the reply stands whether or not the mail goes out.
	go func(t *support.Ticket) {
		data := email.TicketReplyData{
			TicketID: t.TicketID,
			Subject:  t.Subject,
		}
		data.UserEmail = t.UserEmail
		if err := h.emailService.SendTicketReplyEmail(data); err != nil {
			logrus.WithError(err).WithField("ticket_id", t.TicketID).
				Warn("Failed to send ticket reply email")
		}
	}(ticket)

	c.JSON(http.StatusOK, gin.H{
		"message": "Reply added successfully",
		"data":    ticket,
	})
}

// ListTickets handles GET /admin/support/tickets
func (h *SupportHandler) ListTickets(c *gin.Context) {
	tickets, err := h.supportService.ListTickets()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to retrieve tickets",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Tickets retrieved successfully",
		"data":    tickets,
	})
}

// CloseTicket handles PUT /admin/support/tickets/:token/close
func (h *SupportHandler) CloseTicket(c *gin.Context) {
	ticket, err := h.supportService.CloseTicket(c.Param("token"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Ticket closed successfully",
		"data":    ticket,
	})
}

// OrderStatusLookup handles POST /support/order-status. Both the order
// number and the email used at checkout must match.
func (h *SupportHandler) OrderStatusLookup(c *gin.Context) {
	var req struct {
		OrderNumber string `json:"order_number" binding:"required"`
		Email       string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid request data",
			"details": err.Error(),
		})
		return
	}

	o, err := h.supportService.LookupOrderStatus(req.OrderNumber, req.Email)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{
			"error": "Order not found",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Order status retrieved successfully",
		"data": gin.H{
			"order_number": o.OrderNumber,
			"status":       o.Status,
			"order_date":   o.OrderDate,
			"total_price":  o.TotalPrice,
			"currency":     o.Currency,
		},
	})
}
