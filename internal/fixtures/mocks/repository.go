// Package mocks holds testify mocks for the storage and rate contracts.
package mocks

import (
	"context"
	"time"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/user"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

// MockUnitOfWork is a mock of repository.UnitOfWork. Begin returns the
// mock itself unless a different UnitOfWork is configured, and Do runs fn
// against the mock without touching Begin or Commit.
type MockUnitOfWork struct {
	mock.Mock
}

var _ repository.UnitOfWork = (*MockUnitOfWork)(nil)

func NewMockUnitOfWork(t testingT) *MockUnitOfWork {
	m := &MockUnitOfWork{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUnitOfWork) Do(ctx context.Context, fn func(uow repository.UnitOfWork) error) error {
	args := m.Called(ctx, fn)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(m)
}

func (m *MockUnitOfWork) Begin(ctx context.Context) (repository.UnitOfWork, error) {
	args := m.Called(ctx)
	uow, _ := args.Get(0).(repository.UnitOfWork)
	return uow, args.Error(1)
}

func (m *MockUnitOfWork) Commit() (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockUnitOfWork) Rollback() error {
	args := m.Called()
	return args.Error(0)
}

func (m *MockUnitOfWork) AccountRepository() (repository.AccountRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.AccountRepository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) TransactionRepository() (repository.TransactionRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.TransactionRepository)
	return repo, args.Error(1)
}

func (m *MockUnitOfWork) UserRepository() (repository.UserRepository, error) {
	args := m.Called()
	repo, _ := args.Get(0).(repository.UserRepository)
	return repo, args.Error(1)
}

// MockAccountRepository is a mock of repository.AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

var _ repository.AccountRepository = (*MockAccountRepository)(nil)

func NewMockAccountRepository(t testingT) *MockAccountRepository {
	m := &MockAccountRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockAccountRepository) Get(ctx context.Context, id string) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) GetForUpdate(ctx context.Context, id string) (*account.Account, error) {
	args := m.Called(ctx, id)
	a, _ := args.Get(0).(*account.Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*account.Account)
	return list, args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, a *account.Account) error {
	return m.Called(ctx, a).Error(0)
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, id string, delta decimal.Decimal) error {
	return m.Called(ctx, id, delta).Error(0)
}

func (m *MockAccountRepository) Close(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

func (m *MockAccountRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

// MockTransactionRepository is a mock of repository.TransactionRepository.
type MockTransactionRepository struct {
	mock.Mock
}

var _ repository.TransactionRepository = (*MockTransactionRepository)(nil)

func NewMockTransactionRepository(t testingT) *MockTransactionRepository {
	m := &MockTransactionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *account.Transaction) (string, error) {
	args := m.Called(ctx, tx)
	return args.String(0), args.Error(1)
}

// MockUserRepository is a mock of repository.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepository = (*MockUserRepository)(nil)

func NewMockUserRepository(t testingT) *MockUserRepository {
	m := &MockUserRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockUserRepository) Get(ctx context.Context, id string) (*user.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*user.User)
	return u, args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context) ([]*user.User, error) {
	args := m.Called(ctx)
	list, _ := args.Get(0).([]*user.User)
	return list, args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	return m.Called(ctx, u).Error(0)
}

func (m *MockUserRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}
