package account

import (
	"time"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	reasonNegativeBalance = "enter a non-negative value"
	reasonNonZeroBalance  = "account with non-zero balance cannot be closed"
)

// Account is a balance held by a user in a single currency.
//
// Invariants:
//   - Balance is always expressed in Currency.
//   - A closed account (IsActive == false) had a zero balance when it was closed.
type Account struct {
	ID       string
	UserID   string
	Balance  decimal.Decimal
	Currency currency.Code
	IsActive bool
	OpenedAt time.Time
	ClosedAt *time.Time
}

// Builder provides a fluent API for constructing Account instances.
type Builder struct {
	id       string
	userID   string
	balance  decimal.Decimal
	currency currency.Code
	isActive bool
	openedAt time.Time
	closedAt *time.Time
}

// New creates a Builder for an active account with a fresh id and a zero balance.
func New() *Builder {
	return &Builder{
		id:       uuid.NewString(),
		currency: currency.Base,
		isActive: true,
		openedAt: time.Now().UTC(),
	}
}

// WithID sets the account id. Used when hydrating from storage.
func (b *Builder) WithID(id string) *Builder {
	b.id = id
	return b
}

// WithUserID sets the owning user. Mandatory.
func (b *Builder) WithUserID(userID string) *Builder {
	b.userID = userID
	return b
}

func (b *Builder) WithCurrency(c currency.Code) *Builder {
	b.currency = c
	return b
}

func (b *Builder) WithBalance(balance decimal.Decimal) *Builder {
	b.balance = balance
	return b
}

// WithClosedAt marks the account as closed at t.
func (b *Builder) WithClosedAt(t time.Time) *Builder {
	b.isActive = false
	b.closedAt = &t
	return b
}

func (b *Builder) WithOpenedAt(t time.Time) *Builder {
	b.openedAt = t
	return b
}

// Build validates the collected fields and returns the Account.
func (b *Builder) Build() (*Account, error) {
	if b.userID == "" {
		return nil, domain.NewValidation("user id is required")
	}
	if !b.currency.Valid() {
		return nil, domain.NewValidationf("unsupported currency %s", b.currency)
	}
	if b.balance.IsNegative() {
		return nil, domain.NewValidation(reasonNegativeBalance)
	}
	return &Account{
		ID:       b.id,
		UserID:   b.userID,
		Balance:  b.balance,
		Currency: b.currency,
		IsActive: b.isActive,
		OpenedAt: b.openedAt,
		ClosedAt: b.closedAt,
	}, nil
}

// ValidateClose reports why the account cannot be closed, or nil if it can.
func (a *Account) ValidateClose() error {
	if !a.IsActive {
		return ErrClosed(a.ID)
	}
	if !a.Balance.IsZero() {
		return domain.NewValidation(reasonNonZeroBalance)
	}
	return nil
}

// SameOwner reports whether both accounts belong to the same user.
func (a *Account) SameOwner(other *Account) bool {
	return a.UserID == other.UserID
}

// ErrClosed is the validation failure for operations on a closed account.
func ErrClosed(id string) error {
	return domain.NewValidationf("account %s already closed", id)
}
