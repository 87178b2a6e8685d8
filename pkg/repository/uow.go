package repository

import "context"

// UnitOfWork groups repository calls into one atomic commit.
//
// A UnitOfWork obtained from NewUoW is not transactional; Begin returns one
// bound to a fresh database transaction whose repositories stage their
// writes until Commit. Commit reports how many rows the staged writes
// changed. Rollback after a successful Commit is a no-op, so callers may
// defer it unconditionally.
type UnitOfWork interface {
	// Do runs fn inside a transaction and commits it when fn returns nil.
	Do(ctx context.Context, fn func(uow UnitOfWork) error) error

	Begin(ctx context.Context) (UnitOfWork, error)
	Commit() (int64, error)
	Rollback() error

	AccountRepository() (AccountRepository, error)
	TransactionRepository() (TransactionRepository, error)
	UserRepository() (UserRepository, error)
}
