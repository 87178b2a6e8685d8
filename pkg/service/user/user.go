// Package user provides business logic for user management operations.
package user

import (
	"context"
	"log/slog"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/user"
	"github.com/amirasaad/minibank/pkg/repository"
)

// Service provides user creation, lookup, update and deletion.
type Service struct {
	uow    repository.UnitOfWork
	logger *slog.Logger
}

// New creates a new Service with a UnitOfWork and logger.
func New(uow repository.UnitOfWork, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{uow: uow, logger: logger}
}

// CreateUser registers a user in a transaction.
func (s *Service) CreateUser(ctx context.Context, login, email string) (u *user.User, err error) {
	logger := s.logger.With("login", login)
	logger.Info("CreateUser started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = user.NewUser(login, email)
		if err != nil {
			return err
		}
		return repo.Create(ctx, u)
	})
	if err != nil {
		logger.Error("CreateUser failed", "error", err)
		return nil, err
	}
	logger.Info("CreateUser successful", "userID", u.ID)
	return u, nil
}

// GetUser returns the user with the given id.
func (s *Service) GetUser(ctx context.Context, id string) (*user.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.Get(ctx, id)
}

// ListUsers returns every user.
func (s *Service) ListUsers(ctx context.Context) ([]*user.User, error) {
	repo, err := s.uow.UserRepository()
	if err != nil {
		return nil, err
	}
	return repo.List(ctx)
}

// UpdateUser changes the login and email of an existing user.
func (s *Service) UpdateUser(ctx context.Context, id, login, email string) (u *user.User, err error) {
	logger := s.logger.With("userID", id)
	logger.Info("UpdateUser started")
	err = s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		repo, err := uow.UserRepository()
		if err != nil {
			return err
		}
		u, err = repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if err = u.Rename(login, email); err != nil {
			return err
		}
		return repo.Update(ctx, u)
	})
	if err != nil {
		logger.Error("UpdateUser failed", "error", err)
		return nil, err
	}
	logger.Info("UpdateUser successful")
	return u, nil
}

// DeleteUser removes a user that owns no accounts.
func (s *Service) DeleteUser(ctx context.Context, id string) error {
	logger := s.logger.With("userID", id)
	logger.Info("DeleteUser started")
	err := s.uow.Do(ctx, func(uow repository.UnitOfWork) error {
		users, err := uow.UserRepository()
		if err != nil {
			return err
		}
		if _, err = users.Get(ctx, id); err != nil {
			return err
		}
		accounts, err := uow.AccountRepository()
		if err != nil {
			return err
		}
		linked, err := accounts.ExistsForUser(ctx, id)
		if err != nil {
			return err
		}
		if linked {
			return domain.NewValidation("user with linked accounts cannot be deleted")
		}
		return users.Delete(ctx, id)
	})
	if err != nil {
		logger.Error("DeleteUser failed", "error", err)
		return err
	}
	logger.Info("DeleteUser successful")
	return nil
}
