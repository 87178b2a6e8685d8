package transfer

import (
	"testing"
	"time"

	"github.com/amirasaad/minibank/pkg/domain"
	"github.com/amirasaad/minibank/pkg/domain/account"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func acct(t *testing.T, id, owner, balance string, active bool) *account.Account {
	t.Helper()
	b := account.New().WithID(id).WithUserID(owner).WithBalance(dec(balance))
	if !active {
		b = b.WithClosedAt(time.Now())
	}
	a, err := b.Build()
	require.NoError(t, err)
	return a
}

func TestValidate_Order(t *testing.T) {
	policy := NewPolicy(DefaultCommissionRate)

	open := acct(t, "src", "u1", "6", true)
	other := acct(t, "dst", "u2", "0", true)
	closedSrc := acct(t, "src", "u1", "0", false)
	closedDst := acct(t, "dst", "u2", "0", false)

	tests := []struct {
		name     string
		req      Request
		from, to *account.Account
		notFound string
		reason   string
	}{
		{
			name:     "missing source wins over everything",
			req:      Request{Amount: dec("-1"), FromAccountID: "src", ToAccountID: "dst"},
			notFound: "src",
		},
		{
			name:     "missing destination",
			req:      Request{Amount: dec("1"), FromAccountID: "src", ToAccountID: "dst"},
			from:     open,
			notFound: "dst",
		},
		{
			name:   "closed source before closed destination",
			req:    Request{Amount: dec("1"), FromAccountID: "src", ToAccountID: "dst"},
			from:   closedSrc,
			to:     closedDst,
			reason: "account src already closed",
		},
		{
			name:   "closed destination",
			req:    Request{Amount: dec("1"), FromAccountID: "src", ToAccountID: "dst"},
			from:   open,
			to:     closedDst,
			reason: "account dst already closed",
		},
		{
			name:   "zero amount",
			req:    Request{Amount: dec("0"), FromAccountID: "src", ToAccountID: "dst"},
			from:   open,
			to:     other,
			reason: "enter an amount greater than 0",
		},
		{
			name:   "negative amount",
			req:    Request{Amount: dec("-5"), FromAccountID: "src", ToAccountID: "dst"},
			from:   open,
			to:     other,
			reason: "enter an amount greater than 0",
		},
		{
			name:   "insufficient funds before same account",
			req:    Request{Amount: dec("6.01"), FromAccountID: "src", ToAccountID: "src"},
			from:   open,
			to:     open,
			reason: "insufficient funds",
		},
		{
			name:   "same account",
			req:    Request{Amount: dec("6"), FromAccountID: "src", ToAccountID: "src"},
			from:   open,
			to:     open,
			reason: "choose two different accounts",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := policy.Validate(tt.req, tt.from, tt.to)
			require.Error(t, err)
			assert.Nil(t, plan)
			if tt.notFound != "" {
				var nf *domain.NotFoundError
				require.ErrorAs(t, err, &nf)
				assert.Equal(t, domain.KindAccount, nf.Kind)
				assert.Equal(t, tt.notFound, nf.ID)
				return
			}
			reason, ok := domain.Reason(err)
			require.True(t, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestValidate_Plan(t *testing.T) {
	policy := NewPolicy(DefaultCommissionRate)
	from := acct(t, "src", "u1", "6", true)
	to := acct(t, "dst", "u2", "0", true)

	plan, err := policy.Validate(Request{Amount: dec("5"), FromAccountID: "src", ToAccountID: "dst"}, from, to)
	require.NoError(t, err)
	assert.Same(t, from, plan.From)
	assert.Same(t, to, plan.To)
	assert.True(t, dec("0.10").Equal(plan.Commission))
	assert.True(t, dec("4.90").Equal(plan.Net()))
}

func TestCommission(t *testing.T) {
	policy := NewPolicy(DefaultCommissionRate)
	a := acct(t, "a", "u1", "0", true)
	b := acct(t, "b", "u2", "0", true)
	c := acct(t, "c", "u1", "0", true)

	tests := []struct {
		amount string
		to     *account.Account
		want   string
	}{
		{amount: "5", to: b, want: "0.10"},
		{amount: "10", to: c, want: "0"},
		{amount: "123456.78", to: c, want: "0"},
		{amount: "0.25", to: b, want: "0.00"},
		{amount: "0.75", to: b, want: "0.02"},
		{amount: "1.25", to: b, want: "0.02"},
		{amount: "33.33", to: b, want: "0.67"},
	}
	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			got := policy.Commission(dec(tt.amount), a, tt.to)
			assert.True(t, dec(tt.want).Equal(got), "got %s want %s", got, tt.want)
			assert.False(t, got.IsNegative())
		})
	}
}
