// Package transfer holds the rules deciding whether money may move between
// two accounts and what it costs.
package transfer

import (
	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is charged on transfers between different owners.
var DefaultCommissionRate = decimal.RequireFromString("0.02")

const (
	reasonNonPositiveAmount = "enter an amount greater than 0"
	reasonInsufficientFunds = "insufficient funds"
	reasonSameAccount       = "choose two different accounts"
)

// Request asks to move Amount from one account to another.
type Request struct {
	Amount        decimal.Decimal
	FromAccountID string
	ToAccountID   string
}

// Plan is a validated transfer. It is only produced by Policy.Validate.
type Plan struct {
	Request    Request
	From       *account.Account
	To         *account.Account
	Commission decimal.Decimal
}

// Net is the amount left after commission, in the source currency.
func (p *Plan) Net() decimal.Decimal {
	return p.Request.Amount.Sub(p.Commission)
}

// Policy validates transfers and prices them.
type Policy struct {
	CommissionRate decimal.Decimal
}

// NewPolicy returns a Policy charging rate on transfers between different owners.
func NewPolicy(rate decimal.Decimal) Policy {
	return Policy{CommissionRate: rate}
}

// Validate checks req against the looked up accounts. A nil from or to means
// the lookup found nothing. Checks run in a fixed order and the first failure
// is returned:
//
//  1. source exists
//  2. destination exists
//  3. source is active
//  4. destination is active
//  5. amount is positive
//  6. amount is covered by the source balance
//  7. source and destination differ
func (p Policy) Validate(req Request, from, to *account.Account) (*Plan, error) {
	switch {
	case from == nil:
		return nil, domain.NewNotFound(domain.KindAccount, req.FromAccountID)
	case to == nil:
		return nil, domain.NewNotFound(domain.KindAccount, req.ToAccountID)
	case !from.IsActive:
		return nil, account.ErrClosed(from.ID)
	case !to.IsActive:
		return nil, account.ErrClosed(to.ID)
	case !req.Amount.IsPositive():
		return nil, domain.NewValidation(reasonNonPositiveAmount)
	case req.Amount.GreaterThan(from.Balance):
		return nil, domain.NewValidation(reasonInsufficientFunds)
	case req.FromAccountID == req.ToAccountID:
		return nil, domain.NewValidation(reasonSameAccount)
	}
	return &Plan{
		Request:    req,
		From:       from,
		To:         to,
		Commission: p.Commission(req.Amount, from, to),
	}, nil
}

// Commission is zero between accounts of the same owner and otherwise
// amount * rate rounded half-to-even to cents.
func (p Policy) Commission(amount decimal.Decimal, from, to *account.Account) decimal.Decimal {
	if from.SameOwner(to) {
		return decimal.Zero
	}
	return amount.Mul(p.CommissionRate).RoundBank(2)
}
