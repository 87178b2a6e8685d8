package account

import (
	"context"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/transfer"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/shopspring/decimal"
)

// CalculateCommission validates req and returns the commission a transfer
// would be charged. Nothing is written.
func (s *Service) CalculateCommission(ctx context.Context, req transfer.Request) (decimal.Decimal, error) {
	logger := s.logger.With(
		"from", req.FromAccountID,
		"to", req.ToAccountID,
		"amount", req.Amount.String(),
	)
	logger.Info("CalculateCommission started")

	accounts, err := s.uow.AccountRepository()
	if err != nil {
		logger.Error("CalculateCommission failed: AccountRepository error", "error", err)
		return decimal.Zero, err
	}
	plan, err := s.plan(ctx, accounts.Get, req)
	if err != nil {
		logger.Error("CalculateCommission failed", "error", err)
		return decimal.Zero, err
	}
	logger.Info("CalculateCommission successful", "commission", plan.Commission.String())
	return plan.Commission, nil
}

// TransferMoney debits the gross amount from the source account, credits the
// destination with the net amount converted into its currency and records
// the transfer. All three writes are committed once, together. It returns
// false without an error when the commit changed no rows.
func (s *Service) TransferMoney(ctx context.Context, req transfer.Request) (bool, error) {
	logger := s.logger.With(
		"from", req.FromAccountID,
		"to", req.ToAccountID,
		"amount", req.Amount.String(),
	)
	logger.Info("TransferMoney started")

	uow, err := s.uow.Begin(ctx)
	if err != nil {
		logger.Error("TransferMoney failed: begin error", "error", err)
		return false, err
	}
	defer uow.Rollback() //nolint:errcheck

	accounts, txRepo, err := repositories(uow)
	if err != nil {
		logger.Error("TransferMoney failed: repository error", "error", err)
		return false, err
	}

	plan, err := s.plan(ctx, accounts.GetForUpdate, req)
	if err != nil {
		logger.Error("TransferMoney failed: validation error", "error", err)
		return false, err
	}

	converted, err := s.converter.Convert(ctx, plan.Net(), plan.From.Currency, plan.To.Currency)
	if err != nil {
		logger.Error("TransferMoney failed: conversion error", "error", err)
		return false, err
	}

	if err = accounts.ApplyBalanceDelta(ctx, plan.From.ID, req.Amount.Neg()); err != nil {
		logger.Error("TransferMoney failed: debit error", "error", err)
		return false, err
	}
	if err = accounts.ApplyBalanceDelta(ctx, plan.To.ID, converted); err != nil {
		logger.Error("TransferMoney failed: credit error", "error", err)
		return false, err
	}
	record := account.NewTransaction(req.Amount, plan.From.Currency, plan.From.ID, plan.To.ID)
	if _, err = txRepo.Create(ctx, record); err != nil {
		logger.Error("TransferMoney failed: record error", "error", err)
		return false, err
	}

	rows, err := uow.Commit()
	if err != nil {
		logger.Error("TransferMoney failed: commit error", "error", err)
		return false, err
	}
	logger.Info("TransferMoney successful",
		"commission", plan.Commission.String(),
		"credited", converted.String(),
		"transactionID", record.ID,
		"rows", rows,
	)
	return rows > 0, nil
}

// plan reads the source then the destination account and runs the shared
// transfer policy over them.
func (s *Service) plan(
	ctx context.Context,
	get func(context.Context, string) (*account.Account, error),
	req transfer.Request,
) (*transfer.Plan, error) {
	from, err := lookup(ctx, get, req.FromAccountID)
	if err != nil {
		return nil, err
	}
	var to *account.Account
	if from != nil {
		if to, err = lookup(ctx, get, req.ToAccountID); err != nil {
			return nil, err
		}
	}
	return s.policy.Validate(req, from, to)
}

func repositories(uow repository.UnitOfWork) (repository.AccountRepository, repository.TransactionRepository, error) {
	accounts, err := uow.AccountRepository()
	if err != nil {
		return nil, nil, err
	}
	txRepo, err := uow.TransactionRepository()
	if err != nil {
		return nil, nil, err
	}
	return accounts, txRepo, nil
}
