package infra

import (
	"errors"

	"gorm.io/gorm"

	cardrepo "github.com/nfransec/twocents/infra/repository/card"
	userrepo "github.com/nfransec/twocents/infra/repository/user"
	"github.com/nfransec/twocents/pkg/repository"
)

// GormUoW implements repository.UnitOfWork over a gorm transaction.
type GormUoW struct {
	db *gorm.DB
	tx *gorm.DB
}

// NewGormUoW creates a unit of work bound to the given connection pool.
func NewGormUoW(db *gorm.DB) (*GormUoW, error) {
	if db == nil {
		return nil, errors.New("db connection is nil")
	}
	return &GormUoW{db: db}, nil
}

// NewUoWFactory returns a repository.UoWFactory producing units of work
// over the shared pool.
func NewUoWFactory(db *gorm.DB) repository.UoWFactory {
	return func() (repository.UnitOfWork, error) {
		return NewGormUoW(db)
	}
}

func (u *GormUoW) Begin() error {
	tx := u.db.Begin()
	if tx.Error != nil {
		return tx.Error
	}
	u.tx = tx
	return nil
}

func (u *GormUoW) Commit() error {
	if u.tx == nil {
		return errors.New("no transaction in progress")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *GormUoW) Rollback() error {
	if u.tx == nil {
		return nil
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// conn returns the transaction when one is open, otherwise the pool.
func (u *GormUoW) conn() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *GormUoW) UserRepository() repository.UserRepository {
	return userrepo.New(u.conn())
}

func (u *GormUoW) CardRepository() repository.CardRepository {
	return cardrepo.New(u.conn())
}
