package currency

import "github.com/shopspring/decimal"

// ConversionResponse is the result of a conversion.
type ConversionResponse struct {
	Amount    decimal.Decimal `json:"amount"`
	From      string          `json:"from"`
	To        string          `json:"to"`
	Converted decimal.Decimal `json:"converted"`
}
