// Package repository defines the persistence interfaces consumed by the
// service layer. Implementations live under infra.
package repository

import (
	"github.com/google/uuid"
	"github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/domain/user"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	Get(id uuid.UUID) (*user.User, error)
	GetByUsername(username string) (*user.User, error)
	GetByEmail(email string) (*user.User, error)
	List() ([]*user.User, error)
	Create(u *user.User) error
	Update(u *user.User) error
	Delete(id uuid.UUID) error
}

// CardRepository defines the interface for card data access operations.
// Every read and write is scoped by the owning user: a card that exists
// but belongs to someone else behaves exactly like a missing card.
// History rows are insert-only; Update persists the card fields plus any
// newly appended history entries and never rewrites existing ones.
type CardRepository interface {
	Get(userID, cardID uuid.UUID) (*card.Card, error)
	ListByUser(userID uuid.UUID) ([]*card.Card, error)
	// Search matches the query as a case-insensitive substring of the
	// card name or bank name, scoped to the user.
	Search(userID uuid.UUID, query string) ([]*card.Card, error)
	// ListDueWithin returns unpaid cards across all users that have
	// reminders enabled and whose due date falls within the card's own
	// reminder lead time of the given date.
	ListDueWithin(today string) ([]*card.Card, error)
	Create(c *card.Card) error
	Update(c *card.Card) error
	Delete(userID, cardID uuid.UUID) error
	// DeleteByUser removes all cards owned by the user (cascade on user
	// deletion).
	DeleteByUser(userID uuid.UUID) error
}
