// Package account provides the account operations: opening, reading and
// closing accounts, and moving money between them.
//
// Every write goes through a repository.UnitOfWork so that the balance
// changes and the transaction record of a transfer become durable together
// or not at all.
package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/transfer"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/shopspring/decimal"
)

// Service provides account and transfer operations.
type Service struct {
	uow       repository.UnitOfWork
	converter currency.Converter
	policy    transfer.Policy
	logger    *slog.Logger
	now       func() time.Time
}

// NewService creates a new Service with the provided dependencies.
func NewService(
	uow repository.UnitOfWork,
	converter currency.Converter,
	policy transfer.Policy,
	logger *slog.Logger,
) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		uow:       uow,
		converter: converter,
		policy:    policy,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// CreateAccount opens an active account for an existing user.
func (s *Service) CreateAccount(
	ctx context.Context,
	userID string,
	code currency.Code,
	startBalance decimal.Decimal,
) (acct *account.Account, err error) {
	logger := s.logger.With("userID", userID, "currency", code, "balance", startBalance.String())
	logger.Info("CreateAccount started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			logger.Error("CreateAccount failed: UserRepository error", "error", err)
			return err
		}
		if _, err = users.Get(ctx, userID); err != nil {
			logger.Error("CreateAccount failed: user lookup error", "error", err)
			return err
		}
		acct, err = account.New().
			WithUserID(userID).
			WithCurrency(code).
			WithBalance(startBalance).
			WithOpenedAt(s.now()).
			Build()
		if err != nil {
			logger.Error("CreateAccount failed: domain error", "error", err)
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			logger.Error("CreateAccount failed: AccountRepository error", "error", err)
			return err
		}
		if err = accounts.Create(ctx, acct); err != nil {
			logger.Error("CreateAccount failed: repo create error", "error", err)
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	logger.Info("CreateAccount successful", "accountID", acct.ID)
	return acct, nil
}

// GetAccount returns the account with the given id.
func (s *Service) GetAccount(ctx context.Context, id string) (*account.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.Get(ctx, id)
}

// ListAccounts returns every account.
func (s *Service) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	accounts, err := s.uow.AccountRepository()
	if err != nil {
		return nil, err
	}
	return accounts.List(ctx)
}

// CloseAccount deactivates an account with a zero balance. It reports
// whether the commit changed any row.
func (s *Service) CloseAccount(ctx context.Context, id string) (bool, error) {
	logger := s.logger.With("accountID", id)
	logger.Info("CloseAccount started")

	uow, err := s.uow.Begin(ctx)
	if err != nil {
		logger.Error("CloseAccount failed: begin error", "error", err)
		return false, err
	}
	defer uow.Rollback() //nolint:errcheck

	accounts, err := uow.AccountRepository()
	if err != nil {
		logger.Error("CloseAccount failed: AccountRepository error", "error", err)
		return false, err
	}
	acct, err := accounts.GetForUpdate(ctx, id)
	if err != nil {
		logger.Error("CloseAccount failed: lookup error", "error", err)
		return false, err
	}
	if err = acct.ValidateClose(); err != nil {
		logger.Error("CloseAccount failed: domain error", "error", err)
		return false, err
	}
	if err = accounts.Close(ctx, id, s.now()); err != nil {
		logger.Error("CloseAccount failed: repo close error", "error", err)
		return false, err
	}
	rows, err := uow.Commit()
	if err != nil {
		logger.Error("CloseAccount failed: commit error", "error", err)
		return false, err
	}
	logger.Info("CloseAccount successful", "rows", rows)
	return rows > 0, nil
}

// lookup treats a missing account as nil so that the transfer policy decides
// which not-found error to report.
func lookup(
	ctx context.Context,
	get func(context.Context, string) (*account.Account, error),
	id string,
) (*account.Account, error) {
	a, err := get(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, nil
	}
	return a, err
}
