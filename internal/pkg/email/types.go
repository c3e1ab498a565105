// internal/pkg/email/types.go
package email

import (
	"time"
)

// EmailType represents the type of email being sent
type EmailType string

const (
	EmailTypeOrderConfirmation EmailType = "order_confirmation"
	EmailTypeOrderStatusUpdate EmailType = "order_status_update"
	EmailTypePasswordReset     EmailType = "password_reset"
	EmailTypeTicketReply       EmailType = "ticket_reply"
)

// Email represents an email message
type Email struct {
	To          []string  `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"html_content"`
	TextContent string    `json:"text_content,omitempty"`
	Type        EmailType `json:"type"`
}

// EmailTemplateData contains common data for all email templates
type EmailTemplateData struct {
	SiteName   string `json:"site_name"`
	SiteURL    string `json:"site_url"`
	SupportURL string `json:"support_url"`
	UserName   string `json:"user_name"`
	UserEmail  string `json:"user_email"`
	Year       int    `json:"year"`
}

// OrderConfirmationData contains data for the order confirmation email
type OrderConfirmationData struct {
	EmailTemplateData
	OrderNumber string     `json:"order_number"`
	OrderDate   string     `json:"order_date"`
	OrderTotal  float64    `json:"order_total"`
	Items       []LineItem `json:"items"`
}

// LineItem is one order row rendered in the confirmation email
type LineItem struct {
	Name     string  `json:"name"`
	SKU      string  `json:"sku"`
	Size     string  `json:"size"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Total    float64 `json:"total"`
}

// OrderStatusUpdateData contains data for order status update email
type OrderStatusUpdateData struct {
	EmailTemplateData
	OrderNumber string `json:"order_number"`
	Status      string `json:"status"`
}

// PasswordResetData contains data for the password reset email
type PasswordResetData struct {
	EmailTemplateData
	ResetURL   string `json:"reset_url"`
	ExpiryTime string `json:"expiry_time"`
}

// TicketReplyData contains data for the support ticket reply email
type TicketReplyData struct {
	EmailTemplateData
	TicketID string `json:"ticket_id"`
	Subject  string `json:"subject"`
}

// GetBaseTemplateData returns common template data
func GetBaseTemplateData(siteName, siteURL, userName, userEmail string) EmailTemplateData {
	return EmailTemplateData{
		SiteName:   siteName,
		SiteURL:    siteURL,
		SupportURL: siteURL + "/support",
		UserName:   userName,
		UserEmail:  userEmail,
		Year:       time.Now().Year(),
	}
}
