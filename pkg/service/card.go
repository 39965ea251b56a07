package service

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/repository"
	"github.com/nfransec/twocents/pkg/statement"
)

// CardService provides card lifecycle operations: creation, edits,
// statement ingestion, payments, scheduling, search and deletion. Every
// operation is scoped to the calling user; a card owned by someone else
// is indistinguishable from a missing one.
type CardService struct {
	uowFactory repository.UoWFactory
	logger     *slog.Logger
}

// NewCardService creates a new CardService.
func NewCardService(uowFactory repository.UoWFactory, logger *slog.Logger) *CardService {
	return &CardService{uowFactory: uowFactory, logger: logger}
}

// CreateCard registers a new card for the user.
func (s *CardService) CreateCard(
	userID uuid.UUID,
	cardName, bankName, cardNumber string,
	creditLimit decimal.Decimal,
) (c *card.Card, err error) {
	log := s.logger.With("context", "CreateCard", "userID", userID)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		c, err = card.New(userID, cardName, bankName, cardNumber, creditLimit)
		if err != nil {
			return err
		}
		return uow.CardRepository().Create(c)
	})
	if err != nil {
		log.Error("create card failed", "error", err)
		return nil, err
	}
	log.Info("card created", "cardID", c.ID, "bank", c.BankName)
	return c, nil
}

// GetCard retrieves one of the user's cards.
func (s *CardService) GetCard(userID, cardID uuid.UUID) (c *card.Card, err error) {
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		c, err = uow.CardRepository().Get(userID, cardID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// ListCards returns all cards owned by the user.
func (s *CardService) ListCards(userID uuid.UUID) (cards []*card.Card, err error) {
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		cards, err = uow.CardRepository().ListByUser(userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// SearchCards matches the query case-insensitively against the user's
// card and bank names.
func (s *CardService) SearchCards(userID uuid.UUID, query string) (cards []*card.Card, err error) {
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		cards, err = uow.CardRepository().Search(userID, query)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}

// EditCard updates descriptive fields; payment state is untouched.
func (s *CardService) EditCard(userID, cardID uuid.UUID, details card.Details) (c *card.Card, err error) {
	log := s.logger.With("context", "EditCard", "userID", userID, "cardID", cardID)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		repo := uow.CardRepository()
		c, err = repo.Get(userID, cardID)
		if err != nil {
			return err
		}
		if err = c.EditDetails(details); err != nil {
			return err
		}
		return repo.Update(c)
	})
	if err != nil {
		log.Error("edit card failed", "error", err)
		return nil, err
	}
	log.Info("card updated")
	return c, nil
}

// MarkCardPaid settles the card's outstanding balance. Paying a card
// with nothing outstanding is rejected with card.ErrNothingOutstanding.
func (s *CardService) MarkCardPaid(userID, cardID uuid.UUID) (c *card.Card, err error) {
	log := s.logger.With("context", "MarkCardPaid", "userID", userID, "cardID", cardID)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		repo := uow.CardRepository()
		c, err = repo.Get(userID, cardID)
		if err != nil {
			return err
		}
		entry, payErr := c.MarkPaid(time.Now().UTC())
		if payErr != nil {
			return payErr
		}
		log.Info("payment recorded", "amount", entry.Amount, "billingMonth", entry.BillingMonth)
		return repo.Update(c)
	})
	if err != nil {
		log.Error("mark paid failed", "error", err)
		return nil, err
	}
	return c, nil
}

// RecordStatement ingests already-parsed statement fields.
func (s *CardService) RecordStatement(
	userID, cardID uuid.UUID,
	total, minDue decimal.Decimal,
	dueDate string,
) (c *card.Card, err error) {
	log := s.logger.With("context", "RecordStatement", "userID", userID, "cardID", cardID)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		repo := uow.CardRepository()
		c, err = repo.Get(userID, cardID)
		if err != nil {
			return err
		}
		if err = c.RecordStatement(total, minDue, dueDate); err != nil {
			return err
		}
		return repo.Update(c)
	})
	if err != nil {
		log.Error("record statement failed", "error", err)
		return nil, err
	}
	log.Info("statement recorded", "total", total, "dueDate", dueDate)
	return c, nil
}

// IngestStatementEmail extracts statement fields from a raw bank email
// body using the card's bank pattern set, then records them. Extraction
// is best effort: fields that did not match are stored as zero / empty
// and the extracted values are returned so the caller can see what was
// found. An extraction where nothing matched at all records no
// statement; the card comes back unchanged with an empty result.
func (s *CardService) IngestStatementEmail(
	userID, cardID uuid.UUID,
	body string,
) (c *card.Card, st statement.Statement, err error) {
	log := s.logger.With("context", "IngestStatementEmail", "userID", userID, "cardID", cardID)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		repo := uow.CardRepository()
		c, err = repo.Get(userID, cardID)
		if err != nil {
			return err
		}
		st = statement.Extract(c.BankName, body)
		if st.Empty() {
			log.Warn("no statement fields matched", "bank", c.BankName)
			return nil
		}
		if err = c.RecordStatement(st.TotalAmount, st.MinimumDue, st.DueDate); err != nil {
			return err
		}
		return repo.Update(c)
	})
	if err != nil {
		log.Error("ingest statement email failed", "error", err)
		return nil, statement.Statement{}, err
	}
	return c, st, nil
}

// UpdateSchedule sets the card's auto-pay and reminder preference.
func (s *CardService) UpdateSchedule(
	userID, cardID uuid.UUID,
	autoPay bool,
	reminderDays int,
	channel card.ReminderChannel,
) (c *card.Card, err error) {
	log := s.logger.With("context", "UpdateSchedule", "userID", userID, "cardID", cardID)
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		repo := uow.CardRepository()
		c, err = repo.Get(userID, cardID)
		if err != nil {
			return err
		}
		if err = c.UpdateSchedule(autoPay, reminderDays, channel); err != nil {
			return err
		}
		return repo.Update(c)
	})
	if err != nil {
		log.Error("update schedule failed", "error", err)
		return nil, err
	}
	return c, nil
}

// DeleteCard removes one of the user's cards.
func (s *CardService) DeleteCard(userID, cardID uuid.UUID) error {
	log := s.logger.With("context", "DeleteCard", "userID", userID, "cardID", cardID)
	err := do(s.uowFactory, func(uow repository.UnitOfWork) error {
		return uow.CardRepository().Delete(userID, cardID)
	})
	if err != nil {
		log.Error("delete card failed", "error", err)
		return err
	}
	log.Info("card deleted")
	return nil
}

// DueForReminder returns unpaid cards with reminders enabled whose due
// date falls within their reminder lead time of today. Used by the
// reminder scheduler.
func (s *CardService) DueForReminder(today string) (cards []*card.Card, err error) {
	err = do(s.uowFactory, func(uow repository.UnitOfWork) error {
		cards, err = uow.CardRepository().ListDueWithin(today)
		return err
	})
	if err != nil {
		return nil, err
	}
	return cards, nil
}
