package repository

import (
	"context"
	"time"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type accountRepository struct {
	db   *gorm.DB
	rows *rowCounter
}

// NewAccountRepository creates an AccountRepository on db.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Get(ctx context.Context, id string) (*account.Account, error) {
	return r.find(ctx, r.db, id)
}

func (r *accountRepository) GetForUpdate(ctx context.Context, id string) (*account.Account, error) {
	return r.find(ctx, r.db.Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

func (r *accountRepository) find(ctx context.Context, db *gorm.DB, id string) (*account.Account, error) {
	if !validID(id) {
		return nil, domain.NewNotFound(domain.KindAccount, id)
	}
	var m Account
	err := WrapError(domain.KindAccount, id, func() error {
		return db.WithContext(ctx).Where("id = ?", id).Take(&m).Error
	})
	if err != nil {
		return nil, err
	}
	return mapAccountModelToDomain(&m)
}

func (r *accountRepository) List(ctx context.Context) ([]*account.Account, error) {
	var models []Account
	if err := r.db.WithContext(ctx).Order("opened_at").Find(&models).Error; err != nil {
		return nil, err
	}
	result := make([]*account.Account, 0, len(models))
	for i := range models {
		a, err := mapAccountModelToDomain(&models[i])
		if err != nil {
			return nil, err
		}
		result = append(result, a)
	}
	return result, nil
}

func (r *accountRepository) Create(ctx context.Context, a *account.Account) error {
	m := mapAccountDomainToModel(a)
	res := r.db.WithContext(ctx).Create(&m)
	if res.Error != nil {
		return MapGormErrorToDomain(res.Error, domain.KindAccount, a.ID)
	}
	r.rows.add(res.RowsAffected)
	return nil
}

func (r *accountRepository) ApplyBalanceDelta(ctx context.Context, id string, delta decimal.Decimal) error {
	if !validID(id) {
		return domain.NewNotFound(domain.KindAccount, id)
	}
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ?", id).
		Update("balance", gorm.Expr("balance + ?", delta))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NewNotFound(domain.KindAccount, id)
	}
	r.rows.add(res.RowsAffected)
	return nil
}

func (r *accountRepository) Close(ctx context.Context, id string, at time.Time) error {
	if !validID(id) {
		return domain.NewNotFound(domain.KindAccount, id)
	}
	res := r.db.WithContext(ctx).
		Model(&Account{}).
		Where("id = ? AND is_active = ?", id, true).
		Updates(map[string]any{"is_active": false, "closed_at": at})
	if res.Error != nil {
		return res.Error
	}
	r.rows.add(res.RowsAffected)
	return nil
}

func (r *accountRepository) ExistsForUser(ctx context.Context, userID string) (bool, error) {
	if !validID(userID) {
		return false, nil
	}
	var count int64
	err := r.db.WithContext(ctx).Model(&Account{}).Where("user_id = ?", userID).Count(&count).Error
	return count > 0, err
}

func mapAccountDomainToModel(a *account.Account) Account {
	return Account{
		ID:       a.ID,
		UserID:   a.UserID,
		Balance:  a.Balance,
		Currency: a.Currency.String(),
		IsActive: a.IsActive,
		OpenedAt: a.OpenedAt,
		ClosedAt: a.ClosedAt,
	}
}

func mapAccountModelToDomain(m *Account) (*account.Account, error) {
	code, err := currency.Parse(m.Currency)
	if err != nil {
		return nil, err
	}
	return &account.Account{
		ID:       m.ID,
		UserID:   m.UserID,
		Balance:  m.Balance,
		Currency: code,
		IsActive: m.IsActive,
		OpenedAt: m.OpenedAt,
		ClosedAt: m.ClosedAt,
	}, nil
}
