package repository

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the users table row.
type User struct {
	ID        string `gorm:"type:uuid;primaryKey"`
	Login     string `gorm:"size:256;not null"`
	Email     string `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (User) TableName() string { return "users" }

// Account is the accounts table row.
type Account struct {
	ID       string          `gorm:"type:uuid;primaryKey"`
	UserID   string          `gorm:"type:uuid;not null;index"`
	Balance  decimal.Decimal `gorm:"type:numeric;not null"`
	Currency string          `gorm:"type:varchar(3);not null"`
	IsActive bool            `gorm:"not null"`
	OpenedAt time.Time       `gorm:"not null"`
	ClosedAt *time.Time
}

func (Account) TableName() string { return "accounts" }

// Transaction is the transactions table row.
type Transaction struct {
	ID            string          `gorm:"type:uuid;primaryKey"`
	Amount        decimal.Decimal `gorm:"type:numeric;not null"`
	Currency      string          `gorm:"type:varchar(3);not null"`
	FromAccountID string          `gorm:"type:uuid;not null;index"`
	ToAccountID   string          `gorm:"type:uuid;not null;index"`
	CreatedAt     time.Time       `gorm:"not null"`
}

func (Transaction) TableName() string { return "transactions" }

// Models lists every table, in dependency order.
func Models() []any {
	return []any{&User{}, &Account{}, &Transaction{}}
}
