package email

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
)

// capturingTransport intercepts outbound provider requests so tests can
// inspect the composed payload without touching the network.
type capturingTransport struct {
	requests []*http.Request
	bodies   [][]byte
}

func (c *capturingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	c.requests = append(c.requests, req)
	c.bodies = append(c.bodies, body)

	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(bytes.NewReader(nil)),
		Header:     make(http.Header),
	}, nil
}

func newTestEmailService(t *testing.T) (*EmailService, *capturingTransport) {
	t.Helper()

	cfg := &config.Config{
		External: config.ExternalConfig{
			Email: config.EmailConfig{
				Provider:  "resend",
				APIKey:    "test-key",
				FromEmail: "shop@example.com",
				FromName:  "Sneakershop",
				BaseURL:   "https://shop.example.com",
			},
		},
	}

	svc := NewEmailService(cfg)
	transport := &capturingTransport{}
	svc.client.Transport = transport
	return svc, transport
}

func decodeResendPayload(t *testing.T, body []byte) resendPayload {
	t.Helper()
	var payload resendPayload
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func TestStatusUpdateEmailAddressesCustomerWithStatusInSubject(t *testing.T) {
	svc, transport := newTestEmailService(t)

	data := OrderStatusUpdateData{
		OrderNumber: "ORD-20260901-00042",
		Status:      "Shipped",
	}
	data.UserName = "Jordan Lee"
	data.UserEmail = "jordan@example.com"

	require.NoError(t, svc.SendOrderStatusUpdateEmail(data))
	require.Len(t, transport.bodies, 1)

	payload := decodeResendPayload(t, transport.bodies[0])
	require.Equal(t, []string{"jordan@example.com"}, payload.To)
	require.Contains(t, payload.Subject, "Shipped")
	require.Contains(t, payload.Subject, "ORD-20260901-00042")
}

func TestOrderConfirmationEmailSubjectAndRecipient(t *testing.T) {
	svc, transport := newTestEmailService(t)

	data := OrderConfirmationData{
		OrderNumber: "ORD-20260901-00042",
		OrderDate:   "September 1, 2026",
		OrderTotal:  240.00,
	}
	data.UserName = "Jordan Lee"
	data.UserEmail = "jordan@example.com"

	require.NoError(t, svc.SendOrderConfirmationEmail(data))
	require.Len(t, transport.bodies, 1)

	payload := decodeResendPayload(t, transport.bodies[0])
	require.Equal(t, []string{"jordan@example.com"}, payload.To)
	require.Contains(t, payload.Subject, "Order Confirmation")
	require.Contains(t, payload.From, "shop@example.com")
}

func TestUnsupportedProviderFails(t *testing.T) {
	svc, _ := newTestEmailService(t)
	svc.config.External.Email.Provider = "carrier-pigeon"

	err := svc.SendEmail(&Email{To: []string{"a@b.com"}, Subject: "x"})
	require.Error(t, err)
	require.Contains(t, err.Error(), "unsupported email provider")
}
