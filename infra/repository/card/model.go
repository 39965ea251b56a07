package card

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Card represents a card record in the database.
type Card struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID uuid.UUID `gorm:"type:uuid;index;not null"`

	CardName    string          `gorm:"not null;size:100"`
	BankName    string          `gorm:"not null;size:100"`
	CardNumber  string          `gorm:"size:25"`
	CreditLimit decimal.Decimal `gorm:"type:numeric(14,2)"`

	BillingDate       string          `gorm:"size:10"`
	OutstandingAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	MinimumPayment    decimal.Decimal `gorm:"type:numeric(14,2)"`
	DueDate           string          `gorm:"size:10"`
	LastStatementDate string          `gorm:"size:10"`

	IsPaid            bool
	LastPaymentAmount decimal.Decimal `gorm:"type:numeric(14,2)"`
	LastPaymentDate   *time.Time

	AutoPayEnabled  bool
	ReminderDays    int
	ReminderChannel string `gorm:"size:10"`

	Payments   []Payment   `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`
	Statements []Statement `gorm:"foreignKey:CardID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName specifies the table name for the Card model.
func (Card) TableName() string {
	return "cards"
}

// Payment is an append-only payment-history row. Rows are only ever
// inserted; no update or delete path exists.
type Payment struct {
	ID               uint            `gorm:"primaryKey"`
	CardID           uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount           decimal.Decimal `gorm:"type:numeric(14,2)"`
	Date             time.Time
	BillingMonth     string          `gorm:"size:7"`
	OutstandingAfter decimal.Decimal `gorm:"type:numeric(14,2)"`
	CreatedAt        time.Time
}

// TableName specifies the table name for the Payment model.
func (Payment) TableName() string {
	return "card_payments"
}

// Statement is an append-only statement-history row.
type Statement struct {
	ID             uint            `gorm:"primaryKey"`
	CardID         uuid.UUID       `gorm:"type:uuid;index;not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(14,2)"`
	MinimumPayment decimal.Decimal `gorm:"type:numeric(14,2)"`
	DueDate        string          `gorm:"size:10"`
	Date           time.Time
	CreatedAt      time.Time
}

// TableName specifies the table name for the Statement model.
func (Statement) TableName() string {
	return "card_statements"
}
