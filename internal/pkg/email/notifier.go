// internal/pkg/email/notifier.go
package email

import (
	"github.com/your-org/sneakershop-backend/internal/domain/order"
)

// Notifier adapts EmailService to the notification interfaces the domain
// services declare, translating domain records into template data.
type Notifier struct {
	service *EmailService
}

// NewNotifier creates a notifier backed by the email service
func NewNotifier(service *EmailService) *Notifier {
	return &Notifier{service: service}
}

// SendOrderConfirmation mails the order confirmation
func (n *Notifier) SendOrderConfirmation(o *order.Order) error {
	data := OrderConfirmationData{
		OrderNumber: o.OrderNumber,
		OrderDate:   o.OrderDate.Format("January 2, 2006"),
		OrderTotal:  o.GetFormattedTotal(),
	}
	data.UserName = o.CustomerName
	data.UserEmail = o.CustomerEmail

	for _, item := range o.Items {
		data.Items = append(data.Items, LineItem{
			Name:     item.Name,
			SKU:      item.SKU,
			Size:     item.Size,
			Quantity: item.Quantity,
			Price:    float64(item.UnitPrice) / 100,
			Total:    float64(item.TotalPrice) / 100,
		})
	}

	return n.service.SendOrderConfirmationEmail(data)
}

// SendOrderStatusUpdate mails a status change notification
func (n *Notifier) SendOrderStatusUpdate(o *order.Order) error {
	data := OrderStatusUpdateData{
		OrderNumber: o.OrderNumber,
		Status:      string(o.Status),
	}
	data.UserName = o.CustomerName
	data.UserEmail = o.CustomerEmail

	return n.service.SendOrderStatusUpdateEmail(data)
}

// SendPasswordReset mails a reset link for the given token
func (n *Notifier) SendPasswordReset(userEmail, token string) error {
	return n.service.SendPasswordResetEmail(userEmail, userEmail, token)
}
