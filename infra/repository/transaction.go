package repository

import (
	"context"
	"time"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/repository"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db   *gorm.DB
	rows *rowCounter
	now  func() time.Time
}

// NewTransactionRepository creates a TransactionRepository on db.
func NewTransactionRepository(db *gorm.DB) repository.TransactionRepository {
	return &transactionRepository{db: db, now: utcNow}
}

// Create stamps tx with the current time and inserts it.
func (r *transactionRepository) Create(ctx context.Context, tx *account.Transaction) (string, error) {
	tx.CreatedAt = r.now()
	m := Transaction{
		ID:            tx.ID,
		Amount:        tx.Amount,
		Currency:      tx.Currency.String(),
		FromAccountID: tx.FromAccountID,
		ToAccountID:   tx.ToAccountID,
		CreatedAt:     tx.CreatedAt,
	}
	res := r.db.WithContext(ctx).Create(&m)
	if res.Error != nil {
		return "", MapGormErrorToDomain(res.Error, domain.Kind("transaction"), tx.ID)
	}
	r.rows.add(res.RowsAffected)
	return m.ID, nil
}

func utcNow() time.Time { return time.Now().UTC() }
