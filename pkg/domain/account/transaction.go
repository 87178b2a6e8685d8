package account

import (
	"time"

	"github.com/amirasaad/minibank/pkg/currency"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction records one completed transfer. Amount is the gross amount
// requested, denominated in the source account's currency.
type Transaction struct {
	ID            string
	Amount        decimal.Decimal
	Currency      currency.Code
	FromAccountID string
	ToAccountID   string
	CreatedAt     time.Time
}

// NewTransaction creates a transfer record. CreatedAt is assigned by storage
// when the record is written.
func NewTransaction(amount decimal.Decimal, c currency.Code, fromID, toID string) *Transaction {
	return &Transaction{
		ID:            uuid.NewString(),
		Amount:        amount,
		Currency:      c,
		FromAccountID: fromID,
		ToAccountID:   toID,
	}
}
