// Package fixtures provides hand-written test doubles for the
// repository layer.
package fixtures

import (
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/nfransec/twocents/pkg/domain/card"
	"github.com/nfransec/twocents/pkg/domain/user"
	"github.com/nfransec/twocents/pkg/repository"
)

// MockUserRepository is a testify mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Get(id uuid.UUID) (*user.User, error) {
	args := m.Called(id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByUsername(username string) (*user.User, error) {
	args := m.Called(username)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*user.User, error) {
	args := m.Called(email)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List() ([]*user.User, error) {
	args := m.Called()
	users, _ := args.Get(0).([]*user.User)
	return users, args.Error(1)
}

func (m *MockUserRepository) Create(u *user.User) error {
	return m.Called(u).Error(0)
}

func (m *MockUserRepository) Update(u *user.User) error {
	return m.Called(u).Error(0)
}

func (m *MockUserRepository) Delete(id uuid.UUID) error {
	return m.Called(id).Error(0)
}

// MockCardRepository is a testify mock of repository.CardRepository.
type MockCardRepository struct {
	mock.Mock
}

func (m *MockCardRepository) Get(userID, cardID uuid.UUID) (*card.Card, error) {
	args := m.Called(userID, cardID)
	c, _ := args.Get(0).(*card.Card)
	return c, args.Error(1)
}

func (m *MockCardRepository) ListByUser(userID uuid.UUID) ([]*card.Card, error) {
	args := m.Called(userID)
	cards, _ := args.Get(0).([]*card.Card)
	return cards, args.Error(1)
}

func (m *MockCardRepository) Search(userID uuid.UUID, query string) ([]*card.Card, error) {
	args := m.Called(userID, query)
	cards, _ := args.Get(0).([]*card.Card)
	return cards, args.Error(1)
}

func (m *MockCardRepository) ListDueWithin(today string) ([]*card.Card, error) {
	args := m.Called(today)
	cards, _ := args.Get(0).([]*card.Card)
	return cards, args.Error(1)
}

func (m *MockCardRepository) Create(c *card.Card) error {
	return m.Called(c).Error(0)
}

func (m *MockCardRepository) Update(c *card.Card) error {
	return m.Called(c).Error(0)
}

func (m *MockCardRepository) Delete(userID, cardID uuid.UUID) error {
	return m.Called(userID, cardID).Error(0)
}

func (m *MockCardRepository) DeleteByUser(userID uuid.UUID) error {
	return m.Called(userID).Error(0)
}

// StubUnitOfWork hands out the mock repositories and tracks transaction
// calls without a real database.
type StubUnitOfWork struct {
	Users *MockUserRepository
	Cards *MockCardRepository

	BeginErr   error
	CommitErr  error
	Begun      int
	Committed  int
	RolledBack int
}

// NewStubUnitOfWork creates a stub with fresh mocks.
func NewStubUnitOfWork() *StubUnitOfWork {
	return &StubUnitOfWork{
		Users: &MockUserRepository{},
		Cards: &MockCardRepository{},
	}
}

func (s *StubUnitOfWork) Begin() error {
	s.Begun++
	return s.BeginErr
}

func (s *StubUnitOfWork) Commit() error {
	s.Committed++
	return s.CommitErr
}

func (s *StubUnitOfWork) Rollback() error {
	s.RolledBack++
	return nil
}

func (s *StubUnitOfWork) UserRepository() repository.UserRepository {
	return s.Users
}

func (s *StubUnitOfWork) CardRepository() repository.CardRepository {
	return s.Cards
}

// Factory returns a repository.UoWFactory always producing this stub.
func (s *StubUnitOfWork) Factory() repository.UoWFactory {
	return func() (repository.UnitOfWork, error) {
		return s, nil
	}
}
