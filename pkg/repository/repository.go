// Package repository declares the storage contracts used by the services.
package repository

import (
	"context"
	"time"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/user"
	"github.com/shopspring/decimal"
)

// AccountRepository stores accounts. Lookups of unknown ids fail with
// a *domain.NotFoundError of kind account.
type AccountRepository interface {
	Get(ctx context.Context, id string) (*account.Account, error)
	// GetForUpdate is Get plus a row lock held until the surrounding
	// transaction ends.
	GetForUpdate(ctx context.Context, id string) (*account.Account, error)
	List(ctx context.Context) ([]*account.Account, error)
	Create(ctx context.Context, a *account.Account) error
	// ApplyBalanceDelta adds delta (which may be negative) to the balance.
	ApplyBalanceDelta(ctx context.Context, id string, delta decimal.Decimal) error
	Close(ctx context.Context, id string, at time.Time) error
	ExistsForUser(ctx context.Context, userID string) (bool, error)
}

// TransactionRepository records completed transfers.
type TransactionRepository interface {
	Create(ctx context.Context, tx *account.Transaction) (string, error)
}

// UserRepository stores users.
type UserRepository interface {
	Get(ctx context.Context, id string) (*user.User, error)
	List(ctx context.Context) ([]*user.User, error)
	Create(ctx context.Context, u *user.User) error
	Update(ctx context.Context, u *user.User) error
	Delete(ctx context.Context, id string) error
}
