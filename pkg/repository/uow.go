package repository

// UnitOfWork groups repository operations into one transaction. A fresh
// unit of work is obtained per request from the factory owned by the
// composition root; there is no shared connection state.
type UnitOfWork interface {
	Begin() error
	Commit() error
	Rollback() error
	UserRepository() UserRepository
	CardRepository() CardRepository
}

// UoWFactory produces a UnitOfWork bound to the application's connection
// pool.
type UoWFactory func() (UnitOfWork, error)
