package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = mockDb.Close() })
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestUoW_CommitReportsChangedRows(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	db, mock := newMockDB(t)
	ctx := context.Background()
	from, to := uuid.NewString(), uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "accounts" SET "balance"=balance + $1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), from).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(regexp.QuoteMeta(`UPDATE "accounts" SET "balance"=balance + $1 WHERE id = $2`)).
		WithArgs(sqlmock.AnyArg(), to).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "transactions" (.+) VALUES (.+)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	uow, err := NewUoW(db).Begin(ctx)
	require.NoError(err)
	defer uow.Rollback() //nolint:errcheck

	accounts, err := uow.AccountRepository()
	require.NoError(err)
	records, err := uow.TransactionRepository()
	require.NoError(err)

	require.NoError(accounts.ApplyBalanceDelta(ctx, from, decimal.NewFromInt(-5)))
	require.NoError(accounts.ApplyBalanceDelta(ctx, to, decimal.RequireFromString("4.9")))
	record := account.NewTransaction(decimal.NewFromInt(5), currency.RUB, from, to)
	id, err := records.Create(ctx, record)
	require.NoError(err)
	assert.Equal(record.ID, id)
	assert.False(record.CreatedAt.IsZero())

	rows, err := uow.Commit()
	require.NoError(err)
	assert.Equal(int64(3), rows)

	_, err = uow.Commit()
	assert.ErrorIs(err, ErrTransactionDone)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_RollbackDiscards(t *testing.T) {
	assert := assert.New(t)
	db, mock := newMockDB(t)
	ctx := context.Background()
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "accounts"`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	uow, err := NewUoW(db).Begin(ctx)
	require.NoError(t, err)
	accounts, _ := uow.AccountRepository()

	err = accounts.ApplyBalanceDelta(ctx, id, decimal.NewFromInt(1))
	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(id, nf.ID)

	assert.NoError(uow.Rollback())
	assert.NoError(uow.Rollback())
	_, err = uow.Commit()
	assert.ErrorIs(err, ErrTransactionDone)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_GetForUpdateLocksRow(t *testing.T) {
	require := require.New(t)
	db, mock := newMockDB(t)
	ctx := context.Background()
	id, owner := uuid.NewString(), uuid.NewString()
	opened := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "user_id", "balance", "currency", "is_active", "opened_at", "closed_at"}).
		AddRow(id, owner, "6.00", "USD", true, opened, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "accounts" WHERE id = \$1 LIMIT \$2 FOR UPDATE`).
		WithArgs(id, 1).
		WillReturnRows(rows)
	mock.ExpectRollback()

	uow, err := NewUoW(db).Begin(ctx)
	require.NoError(err)
	accounts, _ := uow.AccountRepository()

	a, err := accounts.GetForUpdate(ctx, id)
	require.NoError(err)
	require.NoError(uow.Rollback())

	assert.Equal(t, owner, a.UserID)
	assert.Equal(t, currency.USD, a.Currency)
	assert.True(t, decimal.NewFromInt(6).Equal(a.Balance))
	assert.True(t, a.IsActive)
	assert.Nil(t, a.ClosedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_InvalidIDIsNotFoundWithoutQuery(t *testing.T) {
	db, mock := newMockDB(t)
	uow := NewUoW(db)
	accounts, _ := uow.AccountRepository()

	_, err := accounts.Get(context.Background(), "not-a-uuid")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_Do(t *testing.T) {
	ctx := context.Background()

	t.Run("commits on success", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectCommit()

		err := NewUoW(db).Do(ctx, func(uow repository.UnitOfWork) error {
			repo, err := uow.UserRepository()
			assert.NoError(t, err)
			_, ok := repo.(*userRepository)
			assert.True(t, ok)
			_, err = uow.Commit()
			assert.ErrorIs(t, err, ErrManagedTransaction)
			return nil
		})
		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on error", func(t *testing.T) {
		db, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectRollback()
		boom := errors.New("boom")

		err := NewUoW(db).Do(ctx, func(repository.UnitOfWork) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUoW_CommitWithoutBegin(t *testing.T) {
	db, _ := newMockDB(t)
	uow := NewUoW(db)
	_, err := uow.Commit()
	assert.ErrorIs(t, err, ErrNoTransaction)
	assert.NoError(t, uow.Rollback())
}
