package card

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domaincard "github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/repository"
)

type cardRepository struct {
	db *gorm.DB
}

// New creates a gorm-backed card repository.
func New(db *gorm.DB) repository.CardRepository {
	return &cardRepository{db: db}
}

func (r *cardRepository) Get(userID, cardID uuid.UUID) (*domaincard.Card, error) {
	var m Card
	err := r.db.
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Statements", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("id = ? AND user_id = ?", cardID, userID).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domaincard.ErrCardNotFound
		}
		return nil, err
	}
	return mapModelToDomain(&m), nil
}

func (r *cardRepository) ListByUser(userID uuid.UUID) ([]*domaincard.Card, error) {
	var models []Card
	err := r.db.
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Preload("Statements", func(db *gorm.DB) *gorm.DB { return db.Order("id ASC") }).
		Where("user_id = ?", userID).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapModels(models), nil
}

func (r *cardRepository) Search(userID uuid.UUID, query string) ([]*domaincard.Card, error) {
	var models []Card
	pattern := "%" + query + "%"
	err := r.db.
		Where("user_id = ? AND (card_name ILIKE ? OR bank_name ILIKE ?)", userID, pattern, pattern).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapModels(models), nil
}

func (r *cardRepository) ListDueWithin(today string) ([]*domaincard.Card, error) {
	var models []Card
	err := r.db.
		Where("auto_pay_enabled = ? AND is_paid = ? AND due_date <> '' AND due_date::date <= ?::date + reminder_days",
			true, false, today).
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return mapModels(models), nil
}

func (r *cardRepository) Create(c *domaincard.Card) error {
	return r.db.Create(mapDomainToModel(c)).Error
}

// Update persists the card's scalar fields and inserts any history
// entries appended since the card was loaded. Existing history rows are
// never touched.
func (r *cardRepository) Update(c *domaincard.Card) error {
	res := r.db.Model(&Card{}).
		Where("id = ? AND user_id = ?", c.ID, c.UserID).
		Updates(map[string]any{
			"card_name":           c.CardName,
			"bank_name":           c.BankName,
			"card_number":         c.CardNumber,
			"credit_limit":        c.CreditLimit,
			"billing_date":        c.BillingDate,
			"outstanding_amount":  c.OutstandingAmount,
			"minimum_payment":     c.MinimumPayment,
			"due_date":            c.DueDate,
			"last_statement_date": c.LastStatementDate,
			"is_paid":             c.IsPaid,
			"last_payment_amount": c.LastPaymentAmount,
			"last_payment_date":   c.LastPaymentDate,
			"auto_pay_enabled":    c.AutoPayEnabled,
			"reminder_days":       c.ReminderDays,
			"reminder_channel":    string(c.ReminderChannel),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domaincard.ErrCardNotFound
	}
	if err := r.appendPayments(c); err != nil {
		return err
	}
	return r.appendStatements(c)
}

func (r *cardRepository) appendPayments(c *domaincard.Card) error {
	var existing int64
	if err := r.db.Model(&Payment{}).Where("card_id = ?", c.ID).Count(&existing).Error; err != nil {
		return err
	}
	if int(existing) >= len(c.PaymentHistory) {
		return nil
	}
	rows := make([]Payment, 0, len(c.PaymentHistory)-int(existing))
	for _, e := range c.PaymentHistory[existing:] {
		rows = append(rows, Payment{
			CardID:           c.ID,
			Amount:           e.Amount,
			Date:             e.Date,
			BillingMonth:     e.BillingMonth,
			OutstandingAfter: e.OutstandingAfterPayment,
		})
	}
	return r.db.Create(&rows).Error
}

func (r *cardRepository) appendStatements(c *domaincard.Card) error {
	var existing int64
	if err := r.db.Model(&Statement{}).Where("card_id = ?", c.ID).Count(&existing).Error; err != nil {
		return err
	}
	if int(existing) >= len(c.StatementHistory) {
		return nil
	}
	rows := make([]Statement, 0, len(c.StatementHistory)-int(existing))
	for _, e := range c.StatementHistory[existing:] {
		rows = append(rows, Statement{
			CardID:         c.ID,
			Amount:         e.Amount,
			MinimumPayment: e.MinimumPayment,
			DueDate:        e.DueDate,
			Date:           e.Date,
		})
	}
	return r.db.Create(&rows).Error
}

func (r *cardRepository) Delete(userID, cardID uuid.UUID) error {
	res := r.db.Where("id = ? AND user_id = ?", cardID, userID).Delete(&Card{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domaincard.ErrCardNotFound
	}
	return nil
}

func (r *cardRepository) DeleteByUser(userID uuid.UUID) error {
	return r.db.Where("user_id = ?", userID).Delete(&Card{}).Error
}

func mapModels(models []Card) []*domaincard.Card {
	cards := make([]*domaincard.Card, 0, len(models))
	for i := range models {
		cards = append(cards, mapModelToDomain(&models[i]))
	}
	return cards
}

func mapModelToDomain(m *Card) *domaincard.Card {
	c := &domaincard.Card{
		ID:                m.ID,
		UserID:            m.UserID,
		CardName:          m.CardName,
		BankName:          m.BankName,
		CardNumber:        m.CardNumber,
		CreditLimit:       m.CreditLimit,
		BillingDate:       m.BillingDate,
		OutstandingAmount: m.OutstandingAmount,
		MinimumPayment:    m.MinimumPayment,
		DueDate:           m.DueDate,
		LastStatementDate: m.LastStatementDate,
		IsPaid:            m.IsPaid,
		LastPaymentAmount: m.LastPaymentAmount,
		LastPaymentDate:   m.LastPaymentDate,
		AutoPayEnabled:    m.AutoPayEnabled,
		ReminderDays:      m.ReminderDays,
		ReminderChannel:   domaincard.ReminderChannel(m.ReminderChannel),
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
	for _, p := range m.Payments {
		c.PaymentHistory = append(c.PaymentHistory, domaincard.PaymentEntry{
			Amount:                  p.Amount,
			Date:                    p.Date,
			BillingMonth:            p.BillingMonth,
			OutstandingAfterPayment: p.OutstandingAfter,
		})
	}
	for _, s := range m.Statements {
		c.StatementHistory = append(c.StatementHistory, domaincard.StatementEntry{
			Amount:         s.Amount,
			MinimumPayment: s.MinimumPayment,
			DueDate:        s.DueDate,
			Date:           s.Date,
		})
	}
	return c
}

func mapDomainToModel(c *domaincard.Card) *Card {
	return &Card{
		ID:                c.ID,
		UserID:            c.UserID,
		CardName:          c.CardName,
		BankName:          c.BankName,
		CardNumber:        c.CardNumber,
		CreditLimit:       c.CreditLimit,
		BillingDate:       c.BillingDate,
		OutstandingAmount: c.OutstandingAmount,
		MinimumPayment:    c.MinimumPayment,
		DueDate:           c.DueDate,
		LastStatementDate: c.LastStatementDate,
		IsPaid:            c.IsPaid,
		LastPaymentAmount: c.LastPaymentAmount,
		LastPaymentDate:   c.LastPaymentDate,
		AutoPayEnabled:    c.AutoPayEnabled,
		ReminderDays:      c.ReminderDays,
		ReminderChannel:   string(c.ReminderChannel),
		CreatedAt:         c.CreatedAt,
		UpdatedAt:         c.UpdatedAt,
	}
}
