// Package card contains the credit-card entity and its payment lifecycle.
// A card cycles between unpaid (outstanding > 0) and paid (outstanding == 0):
// statement ingestion moves it to unpaid, marking it paid zeroes the balance.
// Payment and statement histories are append-only audit logs.
package card

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	// ErrCardNotFound is returned when a card does not exist or is not
	// owned by the requesting user. The two cases are deliberately not
	// distinguished.
	ErrCardNotFound = errors.New("card not found")
	// ErrNothingOutstanding is returned when marking a card paid while
	// its outstanding balance is already zero.
	ErrNothingOutstanding = errors.New("card has no outstanding balance")
	// ErrUnknownBank is returned when the bank name is not in the known
	// bank-to-card mapping.
	ErrUnknownBank = errors.New("unknown bank")
	// ErrCardNotOffered is returned when the card name does not belong
	// to the given bank's product list.
	ErrCardNotOffered = errors.New("card is not offered by this bank")
	// ErrNegativeAmount is returned when a statement or limit amount is
	// negative.
	ErrNegativeAmount = errors.New("amount cannot be negative")
	// ErrInvalidReminderChannel is returned for an unrecognized reminder
	// channel.
	ErrInvalidReminderChannel = errors.New("invalid reminder channel")
	// ErrInvalidReminderDays is returned when the reminder lead time is
	// negative.
	ErrInvalidReminderDays = errors.New("reminder days cannot be negative")
)

// ReminderChannel is how due-date reminders are delivered.
type ReminderChannel string

const (
	ChannelEmail ReminderChannel = "email"
	ChannelPush  ReminderChannel = "push"
	ChannelBoth  ReminderChannel = "both"
)

// Valid reports whether the channel is one of the supported values.
func (rc ReminderChannel) Valid() bool {
	switch rc {
	case ChannelEmail, ChannelPush, ChannelBoth:
		return true
	}
	return false
}

// PaymentEntry is a single append-only payment-history record.
type PaymentEntry struct {
	Amount                  decimal.Decimal `json:"amount"`
	Date                    time.Time       `json:"date"`
	BillingMonth            string          `json:"billingMonth"`
	OutstandingAfterPayment decimal.Decimal `json:"outstandingAfterPayment"`
}

// StatementEntry is a single append-only statement-history record.
type StatementEntry struct {
	Amount         decimal.Decimal `json:"amount"`
	MinimumPayment decimal.Decimal `json:"minPayment"`
	DueDate        string          `json:"dueDate"`
	Date           time.Time       `json:"date"`
}

// Card represents a tracked credit-card account owned by one user.
// Dates tied to the billing cycle (billing date, due date, statement
// date) are kept as YYYY-MM-DD strings end to end, matching the format
// statement extraction normalizes to.
type Card struct {
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`

	CardName    string          `json:"cardName"`
	BankName    string          `json:"bankName"`
	CardNumber  string          `json:"cardNumber,omitempty"`
	CreditLimit decimal.Decimal `json:"creditLimit"`

	BillingDate       string          `json:"billingDate"`
	OutstandingAmount decimal.Decimal `json:"outstandingAmount"`
	MinimumPayment    decimal.Decimal `json:"minPayment"`
	DueDate           string          `json:"dueDate"`
	LastStatementDate string          `json:"lastStatementDate"`

	IsPaid            bool            `json:"isPaid"`
	LastPaymentAmount decimal.Decimal `json:"lastPaymentAmount"`
	LastPaymentDate   *time.Time      `json:"lastPaymentDate,omitempty"`

	AutoPayEnabled  bool            `json:"autoPayEnabled"`
	ReminderDays    int             `json:"reminderDays"`
	ReminderChannel ReminderChannel `json:"reminderChannel"`

	PaymentHistory   []PaymentEntry   `json:"paymentHistory"`
	StatementHistory []StatementEntry `json:"statementHistory"`

	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// New creates a card for the given owner. The bank must be known and the
// card name must belong to that bank's product list.
func New(
	userID uuid.UUID,
	cardName, bankName, cardNumber string,
	creditLimit decimal.Decimal,
) (*Card, error) {
	if err := ValidateProduct(bankName, cardName); err != nil {
		return nil, err
	}
	if creditLimit.IsNegative() {
		return nil, ErrNegativeAmount
	}
	now := time.Now().UTC()
	return &Card{
		ID:              uuid.New(),
		UserID:          userID,
		CardName:        cardName,
		BankName:        bankName,
		CardNumber:      cardNumber,
		CreditLimit:     creditLimit,
		IsPaid:          true,
		ReminderDays:    3,
		ReminderChannel: ChannelEmail,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// RecordStatement ingests a new billing statement. Valid from any state:
// it overwrites the outstanding amount, minimum payment and due date,
// flips the card back to unpaid and appends a statement-history entry.
// Zero amounts and an empty due date are accepted; extraction reports
// unknown fields that way.
func (c *Card) RecordStatement(total, minDue decimal.Decimal, dueDate string) error {
	if total.IsNegative() || minDue.IsNegative() {
		return ErrNegativeAmount
	}
	now := time.Now().UTC()
	c.OutstandingAmount = total
	c.MinimumPayment = minDue
	c.DueDate = dueDate
	c.IsPaid = false
	c.LastStatementDate = now.Format("2006-01-02")
	c.StatementHistory = append(c.StatementHistory, StatementEntry{
		Amount:         total,
		MinimumPayment: minDue,
		DueDate:        dueDate,
		Date:           now,
	})
	c.UpdatedAt = now
	return nil
}

// MarkPaid settles the full outstanding balance. It is only valid while
// something is outstanding; the pre-transition balance is captured as
// the paid amount and exactly one payment-history entry is appended.
func (c *Card) MarkPaid(now time.Time) (PaymentEntry, error) {
	if !c.OutstandingAmount.IsPositive() {
		return PaymentEntry{}, ErrNothingOutstanding
	}
	amountPaid := c.OutstandingAmount
	entry := PaymentEntry{
		Amount:                  amountPaid,
		Date:                    now,
		BillingMonth:            now.Format("2006-01"),
		OutstandingAfterPayment: decimal.Zero,
	}
	c.OutstandingAmount = decimal.Zero
	c.IsPaid = true
	c.LastPaymentAmount = amountPaid
	c.LastPaymentDate = &now
	c.PaymentHistory = append(c.PaymentHistory, entry)
	c.UpdatedAt = now
	return entry, nil
}

// Details carries the editable descriptive fields. Nil pointers leave
// the corresponding field untouched.
type Details struct {
	CardName    *string
	BankName    *string
	CardNumber  *string
	CreditLimit *decimal.Decimal
	BillingDate *string
}

// EditDetails updates descriptive, limit and billing-date fields. It
// never touches payment state or the histories.
func (c *Card) EditDetails(d Details) error {
	name := c.CardName
	bank := c.BankName
	if d.CardName != nil {
		name = *d.CardName
	}
	if d.BankName != nil {
		bank = *d.BankName
	}
	if err := ValidateProduct(bank, name); err != nil {
		return err
	}
	if d.CreditLimit != nil && d.CreditLimit.IsNegative() {
		return ErrNegativeAmount
	}
	c.CardName = name
	c.BankName = bank
	if d.CardNumber != nil {
		c.CardNumber = *d.CardNumber
	}
	if d.CreditLimit != nil {
		c.CreditLimit = *d.CreditLimit
	}
	if d.BillingDate != nil {
		c.BillingDate = *d.BillingDate
	}
	c.UpdatedAt = time.Now().UTC()
	return nil
}

// UpdateSchedule sets the auto-pay and reminder preference.
func (c *Card) UpdateSchedule(autoPay bool, reminderDays int, channel ReminderChannel) error {
	if reminderDays < 0 {
		return ErrInvalidReminderDays
	}
	if !channel.Valid() {
		return ErrInvalidReminderChannel
	}
	c.AutoPayEnabled = autoPay
	c.ReminderDays = reminderDays
	c.ReminderChannel = channel
	c.UpdatedAt = time.Now().UTC()
	return nil
}
