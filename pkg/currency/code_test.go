package currency

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    Code
		wantErr bool
	}{
		{in: "RUB", want: RUB},
		{in: "usd", want: USD},
		{in: " EUR ", want: EUR},
		{in: "JPY", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrUnsupportedCurrency)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCode_String(t *testing.T) {
	assert.Equal(t, "RUB", RUB.String())
	assert.Equal(t, "EUR", EUR.String())
	assert.Equal(t, "Code(9)", Code(9).String())
	assert.False(t, Code(9).Valid())
}

func TestCode_JSON(t *testing.T) {
	var payload struct {
		Currency Code `json:"currency"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"currency":"usd"}`), &payload))
	assert.Equal(t, USD, payload.Currency)

	err := json.Unmarshal([]byte(`{"currency":"GBP"}`), &payload)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"currency":"USD"}`, string(out))
}
