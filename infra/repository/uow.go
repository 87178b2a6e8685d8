package repository

import (
	"context"
	"errors"

	"github.com/amirasaad/minibank/pkg/repository"
	"gorm.io/gorm"
)

var (
	// ErrNoTransaction is returned by Commit on a UoW that was not begun.
	ErrNoTransaction = errors.New("unit of work has no open transaction")
	// ErrTransactionDone is returned by Commit after Commit or Rollback.
	ErrTransactionDone = errors.New("unit of work already finished")
	// ErrManagedTransaction is returned by Commit and Rollback inside Do,
	// which owns the transaction boundary.
	ErrManagedTransaction = errors.New("transaction is managed by Do")
)

// rowCounter sums the rows changed by the writes staged in one transaction.
// A nil counter ignores additions.
type rowCounter struct {
	n int64
}

func (c *rowCounter) add(n int64) {
	if c != nil {
		c.n += n
	}
}

// UoW provides transaction boundary and repository access in one abstraction.
// Repositories obtained from a begun UoW share its transaction, so their
// writes become durable together on Commit.
type UoW struct {
	db      *gorm.DB
	tx      *gorm.DB
	rows    *rowCounter
	managed bool
	done    bool
}

var _ repository.UnitOfWork = (*UoW)(nil)

// NewUoW creates a new UoW for the given *gorm.DB.
func NewUoW(db *gorm.DB) *UoW {
	return &UoW{db: db}
}

// Do runs fn in a transaction boundary, providing a UoW with repository
// access. The transaction commits when fn returns nil and rolls back otherwise.
func (u *UoW) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&UoW{db: u.db, tx: tx, rows: &rowCounter{}, managed: true})
	})
}

// Begin opens a transaction bound to ctx. Cancelling ctx before Commit rolls
// the transaction back.
func (u *UoW) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	tx := u.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &UoW{db: u.db, tx: tx, rows: &rowCounter{}}, nil
}

// Commit makes the staged writes durable and returns how many rows they changed.
func (u *UoW) Commit() (int64, error) {
	switch {
	case u.tx == nil:
		return 0, ErrNoTransaction
	case u.managed:
		return 0, ErrManagedTransaction
	case u.done:
		return 0, ErrTransactionDone
	}
	u.done = true
	if err := u.tx.Commit().Error; err != nil {
		return 0, err
	}
	return u.rows.n, nil
}

// Rollback discards the staged writes. It is a no-op once the UoW finished.
func (u *UoW) Rollback() error {
	switch {
	case u.managed:
		return ErrManagedTransaction
	case u.tx == nil, u.done:
		return nil
	}
	u.done = true
	return u.tx.Rollback().Error
}

func (u *UoW) session() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

// AccountRepository returns an AccountRepository bound to the UoW session.
func (u *UoW) AccountRepository() (repository.AccountRepository, error) {
	return &accountRepository{db: u.session(), rows: u.rows}, nil
}

// TransactionRepository returns a TransactionRepository bound to the UoW session.
func (u *UoW) TransactionRepository() (repository.TransactionRepository, error) {
	return &transactionRepository{db: u.session(), rows: u.rows, now: utcNow}, nil
}

// UserRepository returns a UserRepository bound to the UoW session.
func (u *UoW) UserRepository() (repository.UserRepository, error) {
	return &userRepository{db: u.session(), rows: u.rows}, nil
}
