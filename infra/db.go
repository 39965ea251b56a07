// Package infra wires the persistence layer: the gorm connection pool
// and the repository implementations built on it.
package infra

import (
	"errors"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	cardrepo "github.com/nfransec/twocents/infra/repository/card"
	userrepo "github.com/nfransec/twocents/infra/repository/user"
	"github.com/nfransec/twocents/pkg/config"
)

// NewDBConnection opens the gorm connection pool and runs migrations.
// The pool is created once at startup by the composition root and
// injected everywhere else; nothing keeps package-level connection
// state.
func NewDBConnection(cfg *config.DB) (*gorm.DB, error) {
	if cfg == nil || cfg.Url == "" {
		return nil, errors.New("database URL is not set")
	}
	db, err := gorm.Open(postgres.Open(cfg.Url), &gorm.Config{SkipDefaultTransaction: true})
	if err != nil {
		return nil, err
	}
	err = db.AutoMigrate(
		&userrepo.User{},
		&cardrepo.Card{},
		&cardrepo.Payment{},
		&cardrepo.Statement{},
	)
	if err != nil {
		return nil, err
	}
	return db, nil
}
