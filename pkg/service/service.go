// Package service provides the business logic for users, cards and
// authentication. Each operation runs inside a unit of work obtained
// from the factory injected at startup.
package service

import "github.com/nfransec/twocents/pkg/repository"

// do runs fn inside a fresh unit of work, committing on success and
// rolling back on error.
func do(factory repository.UoWFactory, fn func(uow repository.UnitOfWork) error) error {
	uow, err := factory()
	if err != nil {
		return err
	}
	if err = uow.Begin(); err != nil {
		return err
	}
	if err = fn(uow); err != nil {
		_ = uow.Rollback()
		return err
	}
	if err = uow.Commit(); err != nil {
		_ = uow.Rollback()
		return err
	}
	return nil
}
