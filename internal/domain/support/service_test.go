package support

import (
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/your-org/sneakershop-backend/internal/config"
	"github.com/your-org/sneakershop-backend/internal/domain/order"
	"github.com/your-org/sneakershop-backend/internal/domain/stock"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&Ticket{}, &Message{}, &order.Order{}, &order.Item{},
	))
	return db
}

func newTestService(t *testing.T, db *gorm.DB) *Service {
	t.Helper()
	cfg := &config.Config{}
	orderSvc := order.NewService(db, cfg, stock.NewService(db, cfg), nil)
	return NewService(db, cfg, orderSvc)
}

func createTicket(t *testing.T, svc *Service) *Ticket {
	t.Helper()
	ticket, err := svc.CreateTicket(&CreateTicketRequest{
		Email:   "Casey@Example.com",
		Name:    "Casey",
		Subject: "Where is my order",
		Message: "It has been a week.",
	})
	require.NoError(t, err)
	return ticket
}

func TestCreateTicket(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))

	ticket := createTicket(t, svc)

	require.Len(t, ticket.TicketID, 8)
	require.Equal(t, StatusOpen, ticket.Status)
	require.Equal(t, "casey@example.com", ticket.UserEmail)
	require.Len(t, ticket.Messages, 1)
	require.Equal(t, SenderCustomer, ticket.Messages[0].Sender)
}

func TestGetTicketByTokenCaseInsensitive(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ticket := createTicket(t, svc)

	found, err := svc.GetTicket("  " + ticket.TicketID + " ")
	require.NoError(t, err)
	require.Equal(t, ticket.ID, found.ID)

	_, err = svc.GetTicket("NOPE1234")
	require.Error(t, err)
}

func TestReplyAppendsWithoutTouchingHistory(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ticket := createTicket(t, svc)

	updated, err := svc.Reply(ticket.TicketID, SenderStaff, &ReplyRequest{
		Name:    "Support",
		Message: "It ships tomorrow.",
	})
	require.NoError(t, err)
	require.Equal(t, StatusAnswered, updated.Status)
	require.Len(t, updated.Messages, 2)

	// The original message is untouched and order is preserved.
	require.Equal(t, "It has been a week.", updated.Messages[0].Body)
	require.Equal(t, SenderCustomer, updated.Messages[0].Sender)
	require.Equal(t, "It ships tomorrow.", updated.Messages[1].Body)

	updated, err = svc.Reply(ticket.TicketID, SenderCustomer, &ReplyRequest{
		Name:    "Casey",
		Message: "Thanks!",
	})
	require.NoError(t, err)
	require.Equal(t, StatusOpen, updated.Status)
	require.Len(t, updated.Messages, 3)
}

func TestCloseTicket(t *testing.T) {
	svc := newTestService(t, setupTestDB(t))
	ticket := createTicket(t, svc)

	closed, err := svc.CloseTicket(ticket.TicketID)
	require.NoError(t, err)
	require.Equal(t, StatusClosed, closed.Status)
}

func TestLookupOrderStatusRequiresMatchingEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newTestService(t, db)

	o := order.Order{
		OrderNumber:   "ORD-20260901-00001",
		Status:        order.StatusShipped,
		CustomerName:  "Casey",
		CustomerEmail: "casey@example.com",
		TotalQty:      1,
		TotalPrice:    10000,
	}
	require.NoError(t, db.Create(&o).Error)

	found, err := svc.LookupOrderStatus("ORD-20260901-00001", "Casey@Example.com")
	require.NoError(t, err)
	require.Equal(t, order.StatusShipped, found.Status)

	_, err = svc.LookupOrderStatus("ORD-20260901-00001", "other@example.com")
	require.Error(t, err)

	_, err = svc.LookupOrderStatus("ORD-00000000-00000", "casey@example.com")
	require.Error(t, err)
}
