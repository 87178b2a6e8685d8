package account

import (
	"time"

	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/amirasaad/minibank/pkg/domain/transfer"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents the request body for opening an account.
type CreateAccountRequest struct {
	UserID   string          `json:"userId" validate:"required"`
	Currency string          `json:"currency" validate:"required,len=3,alpha"`
	Balance  decimal.Decimal `json:"balance"`
}

// TransferRequest is the body of the commission and transfer endpoints.
// Amount and account checks are left to the transfer rules so their order
// is preserved.
type TransferRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	FromAccountID string          `json:"fromAccountId"`
	ToAccountID   string          `json:"toAccountId"`
}

func (r *TransferRequest) toDomain() transfer.Request {
	return transfer.Request{
		Amount:        r.Amount,
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
	}
}

// AccountDTO is the API representation of an account.
type AccountDTO struct {
	ID       string          `json:"id"`
	UserID   string          `json:"userId"`
	Balance  decimal.Decimal `json:"balance"`
	Currency string          `json:"currency"`
	IsActive bool            `json:"isActive"`
	OpenedAt time.Time       `json:"openedAt"`
	ClosedAt *time.Time      `json:"closedAt,omitempty"`
}

// CommissionResponse carries the commission a transfer would be charged.
type CommissionResponse struct {
	Commission decimal.Decimal `json:"commission"`
}

// TransferResponse reports whether a transfer changed any rows.
type TransferResponse struct {
	Transferred bool `json:"transferred"`
}

// CloseResponse reports whether closing changed any rows.
type CloseResponse struct {
	Closed bool `json:"closed"`
}

// ToAccountDTO maps a domain account to its API representation.
func ToAccountDTO(a *account.Account) *AccountDTO {
	if a == nil {
		return nil
	}
	return &AccountDTO{
		ID:       a.ID,
		UserID:   a.UserID,
		Balance:  a.Balance,
		Currency: a.Currency.String(),
		IsActive: a.IsActive,
		OpenedAt: a.OpenedAt,
		ClosedAt: a.ClosedAt,
	}
}
