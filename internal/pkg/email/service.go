// internal/pkg/email/service.go
package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/your-org/sneakershop-backend/internal/config"
)

// EmailService renders templates and dispatches mail through the
// configured provider
type EmailService struct {
	config    *config.Config
	templates map[string]*template.Template
	client    *http.Client
}

// NewEmailService creates a new email service
func NewEmailService(cfg *config.Config) *EmailService {
	service := &EmailService{
		config:    cfg,
		templates: make(map[string]*template.Template),
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	service.loadTemplates()
	return service
}

// SendEmail sends an email using the configured provider
func (s *EmailService) SendEmail(email *Email) error {
	switch s.config.External.Email.Provider {
	case "smtp":
		return s.sendSMTPEmail(email)
	case "resend":
		return s.sendResendEmail(email)
	case "sendgrid":
		return s.sendSendGridEmail(email)
	default:
		return fmt.Errorf("unsupported email provider: %s", s.config.External.Email.Provider)
	}
}

// SendOrderConfirmationEmail sends the order confirmation
func (s *EmailService) SendOrderConfirmationEmail(data OrderConfirmationData) error {
	data.EmailTemplateData = s.baseData(data.UserName, data.UserEmail)

	htmlContent, err := s.renderTemplate("order_confirmation", data)
	if err != nil {
		return err
	}

	return s.SendEmail(&Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order Confirmation - %s", data.OrderNumber),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderConfirmation,
	})
}

// SendOrderStatusUpdateEmail notifies the customer of a status change.
// The status goes into the subject line.
func (s *EmailService) SendOrderStatusUpdateEmail(data OrderStatusUpdateData) error {
	data.EmailTemplateData = s.baseData(data.UserName, data.UserEmail)

	htmlContent, err := s.renderTemplate("order_status_update", data)
	if err != nil {
		return err
	}

	return s.SendEmail(&Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Order %s - %s", data.OrderNumber, data.Status),
		HTMLContent: htmlContent,
		Type:        EmailTypeOrderStatusUpdate,
	})
}

// SendPasswordResetEmail sends the password reset link
func (s *EmailService) SendPasswordResetEmail(userEmail, userName, resetToken string) error {
	data := PasswordResetData{
		EmailTemplateData: s.baseData(userName, userEmail),
		ResetURL:          fmt.Sprintf("%s/reset/%s", s.config.External.Email.BaseURL, resetToken),
		ExpiryTime:        "1 hour",
	}

	htmlContent, err := s.renderTemplate("password_reset", data)
	if err != nil {
		return err
	}

	return s.SendEmail(&Email{
		To:          []string{userEmail},
		Subject:     "Reset Your Password",
		HTMLContent: htmlContent,
		Type:        EmailTypePasswordReset,
	})
}

// SendTicketReplyEmail tells the customer their support ticket has a reply
func (s *EmailService) SendTicketReplyEmail(data TicketReplyData) error {
	data.EmailTemplateData = s.baseData(data.UserName, data.UserEmail)

	htmlContent, err := s.renderTemplate("ticket_reply", data)
	if err != nil {
		return err
	}

	return s.SendEmail(&Email{
		To:          []string{data.UserEmail},
		Subject:     fmt.Sprintf("Re: [%s] %s", data.TicketID, data.Subject),
		HTMLContent: htmlContent,
		Type:        EmailTypeTicketReply,
	})
}

func (s *EmailService) baseData(userName, userEmail string) EmailTemplateData {
	return GetBaseTemplateData(
		s.config.External.Email.FromName,
		s.config.External.Email.BaseURL,
		userName,
		userEmail,
	)
}

var templateNames = []string{
	"order_confirmation",
	"order_status_update",
	"password_reset",
	"ticket_reply",
}

// loadTemplates loads email templates from disk, falling back to a plain
// built-in template per name so a missing file never blocks sending.
func (s *EmailService) loadTemplates() {
	for _, name := range templateNames {
		templatePath := filepath.Join("./templates/emails", name+".html")
		tmpl, err := template.ParseFiles(templatePath)
		if err != nil {
			logrus.WithField("template", name).Debug("Email template not found, using fallback")
			s.templates[name] = fallbackTemplate(name)
			continue
		}
		s.templates[name] = tmpl
	}
}

// renderTemplate renders an email template with data
func (s *EmailService) renderTemplate(templateName string, data interface{}) (string, error) {
	tmpl, exists := s.templates[templateName]
	if !exists {
		return "", fmt.Errorf("template %s not found", templateName)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", templateName, err)
	}

	return buf.String(), nil
}

func fallbackTemplate(name string) *template.Template {
	basicTemplate := `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>{{.SiteName}}</title>
</head>
<body style="font-family: Arial, sans-serif; margin: 0; padding: 20px; background-color: #f4f4f4;">
    <div style="max-width: 600px; margin: 0 auto; background-color: white; padding: 20px; border-radius: 8px;">
        <h1 style="color: #333;">{{.SiteName}}</h1>
        <p>Hello {{.UserName}},</p>
        <p>This is a notification from {{.SiteName}}.</p>
        <p>If you have any questions, please contact our support team.</p>
        <p>Best regards,<br>{{.SiteName}} Team</p>
    </div>
</body>
</html>`

	tmpl, _ := template.New(name).Parse(basicTemplate)
	return tmpl
}
