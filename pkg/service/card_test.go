package service

import (
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nfransec/twocents/internal/fixtures"
	"github.com/nfransec/twocents/pkg/domain/card"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newCardService(t *testing.T) (*CardService, *fixtures.StubUnitOfWork) {
	t.Helper()
	uow := fixtures.NewStubUnitOfWork()
	return NewCardService(uow.Factory(), testLogger()), uow
}

func unpaidCard(t *testing.T, userID uuid.UUID, amount int64) *card.Card {
	t.Helper()
	c, err := card.New(userID, "Millennia", "HDFC", "", decimal.NewFromInt(100000))
	require.NoError(t, err)
	require.NoError(t, c.RecordStatement(decimal.NewFromInt(amount), decimal.NewFromInt(amount/10), "2025-03-05"))
	return c
}

func TestCreateCard(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	uow.Cards.On("Create", mock.Anything).Return(nil)

	c, err := svc.CreateCard(userID, "Coral", "ICICI", "1234", decimal.NewFromInt(50000))
	require.NoError(t, err)
	assert.Equal(t, userID, c.UserID)
	assert.Equal(t, 1, uow.Committed)
	uow.Cards.AssertExpectations(t)
}

func TestCreateCardUnknownBank(t *testing.T) {
	svc, uow := newCardService(t)

	_, err := svc.CreateCard(uuid.New(), "Coral", "Gringotts", "", decimal.Zero)
	assert.ErrorIs(t, err, card.ErrUnknownBank)
	assert.Equal(t, 1, uow.RolledBack)
	uow.Cards.AssertNotCalled(t, "Create", mock.Anything)
}

func TestMarkCardPaid(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	c := unpaidCard(t, userID, 5000)
	uow.Cards.On("Get", userID, c.ID).Return(c, nil)
	uow.Cards.On("Update", c).Return(nil)

	paid, err := svc.MarkCardPaid(userID, c.ID)
	require.NoError(t, err)
	assert.True(t, paid.IsPaid)
	assert.True(t, paid.OutstandingAmount.IsZero())
	require.Len(t, paid.PaymentHistory, 1)
	assert.True(t, paid.PaymentHistory[0].Amount.Equal(decimal.NewFromInt(5000)))
	assert.Equal(t, 1, uow.Committed)
}

func TestMarkCardPaidNothingOutstanding(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	c, err := card.New(userID, "Millennia", "HDFC", "", decimal.NewFromInt(100000))
	require.NoError(t, err)
	uow.Cards.On("Get", userID, c.ID).Return(c, nil)

	_, err = svc.MarkCardPaid(userID, c.ID)
	assert.ErrorIs(t, err, card.ErrNothingOutstanding)
	assert.Equal(t, 1, uow.RolledBack)
	uow.Cards.AssertNotCalled(t, "Update", mock.Anything)
}

// A card owned by someone else behaves exactly like a missing card.
func TestMarkCardPaidNotOwned(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	cardID := uuid.New()
	uow.Cards.On("Get", userID, cardID).Return(nil, card.ErrCardNotFound)

	_, err := svc.MarkCardPaid(userID, cardID)
	assert.ErrorIs(t, err, card.ErrCardNotFound)
}

func TestRecordStatementResetsPaid(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	c := unpaidCard(t, userID, 1000)
	_, err := c.MarkPaid(c.CreatedAt)
	require.NoError(t, err)
	require.True(t, c.IsPaid)

	uow.Cards.On("Get", userID, c.ID).Return(c, nil)
	uow.Cards.On("Update", c).Return(nil)

	updated, err := svc.RecordStatement(userID, c.ID, decimal.NewFromInt(5000), decimal.NewFromInt(500), "2025-03-05")
	require.NoError(t, err)
	assert.False(t, updated.IsPaid)
	assert.True(t, updated.OutstandingAmount.Equal(decimal.NewFromInt(5000)))
}

func TestIngestStatementEmail(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	c, err := card.New(userID, "Millennia", "HDFC", "", decimal.NewFromInt(100000))
	require.NoError(t, err)
	uow.Cards.On("Get", userID, c.ID).Return(c, nil)
	uow.Cards.On("Update", c).Return(nil)

	body := "<td>Total Amount Due</td><td>Rs. 2,500.00</td>" +
		"<td>Minimum Amount Due</td><td>Rs. 125.00</td>" +
		"<td>Due Date</td><td>2025-04-05</td>"
	updated, extracted, err := svc.IngestStatementEmail(userID, c.ID, body)
	require.NoError(t, err)
	assert.True(t, extracted.TotalAmount.Equal(decimal.RequireFromString("2500.00")))
	assert.Equal(t, "2025-04-05", extracted.DueDate)
	assert.True(t, updated.OutstandingAmount.Equal(extracted.TotalAmount))
	assert.False(t, updated.IsPaid)
}

// An unrecognizable email records nothing: a paid card must not flip to
// unpaid over an all-zero extraction.
func TestIngestStatementEmailNoMatch(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	c, err := card.New(userID, "Millennia", "HDFC", "", decimal.NewFromInt(100000))
	require.NoError(t, err)
	uow.Cards.On("Get", userID, c.ID).Return(c, nil)

	updated, extracted, err := svc.IngestStatementEmail(userID, c.ID, "nothing useful")
	require.NoError(t, err)
	assert.True(t, extracted.Empty())
	assert.True(t, updated.IsPaid)
	assert.Empty(t, updated.StatementHistory)
	assert.Empty(t, updated.DueDate)
	uow.Cards.AssertNotCalled(t, "Update", mock.Anything)
}

// A partial match still records, with the unmatched fields kept as
// zero / empty.
func TestIngestStatementEmailPartialMatch(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	c, err := card.New(userID, "Millennia", "HDFC", "", decimal.NewFromInt(100000))
	require.NoError(t, err)
	uow.Cards.On("Get", userID, c.ID).Return(c, nil)
	uow.Cards.On("Update", c).Return(nil)

	body := "<td>Total Amount Due</td><td>Rs. 2,500.00</td>"
	updated, extracted, err := svc.IngestStatementEmail(userID, c.ID, body)
	require.NoError(t, err)
	assert.False(t, extracted.Empty())
	assert.True(t, extracted.MinimumDue.IsZero())
	assert.Empty(t, extracted.DueDate)
	assert.False(t, updated.IsPaid)
	assert.True(t, updated.OutstandingAmount.Equal(decimal.RequireFromString("2500.00")))
}

func TestUpdateSchedule(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	c, err := card.New(userID, "Millennia", "HDFC", "", decimal.NewFromInt(100000))
	require.NoError(t, err)
	uow.Cards.On("Get", userID, c.ID).Return(c, nil)
	uow.Cards.On("Update", c).Return(nil)

	updated, err := svc.UpdateSchedule(userID, c.ID, true, 7, card.ChannelPush)
	require.NoError(t, err)
	assert.True(t, updated.AutoPayEnabled)
	assert.Equal(t, 7, updated.ReminderDays)
}

func TestSearchCards(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	uow.Cards.On("Search", userID, "hdfc").Return([]*card.Card{}, nil)

	cards, err := svc.SearchCards(userID, "hdfc")
	require.NoError(t, err)
	assert.Empty(t, cards)
	uow.Cards.AssertExpectations(t)
}

func TestDeleteCard(t *testing.T) {
	svc, uow := newCardService(t)
	userID := uuid.New()
	cardID := uuid.New()
	uow.Cards.On("Delete", userID, cardID).Return(nil)

	require.NoError(t, svc.DeleteCard(userID, cardID))
	assert.Equal(t, 1, uow.Committed)
}

func TestDueForReminder(t *testing.T) {
	svc, uow := newCardService(t)
	due := unpaidCard(t, uuid.New(), 3000)
	uow.Cards.On("ListDueWithin", "2025-03-03").Return([]*card.Card{due}, nil)

	cards, err := svc.DueForReminder("2025-03-03")
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, due.ID, cards[0].ID)
}
