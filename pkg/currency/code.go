// Package currency defines the closed set of currencies accounts can be held in.
package currency

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnsupportedCurrency is returned when a code is not one of the known currencies.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// Code identifies a currency. The zero value is RUB, the base currency
// every exchange rate is quoted against.
type Code uint8

const (
	RUB Code = iota
	USD
	EUR
)

// Base is the currency whose exchange rate is always exactly 1.
const Base = RUB

var names = [...]string{
	RUB: "RUB",
	USD: "USD",
	EUR: "EUR",
}

// All returns every supported currency in declaration order.
func All() []Code {
	return []Code{RUB, USD, EUR}
}

// Valid reports whether c is one of the declared currencies.
func (c Code) Valid() bool {
	return int(c) < len(names)
}

func (c Code) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Code(%d)", uint8(c))
	}
	return names[c]
}

// Parse converts an ISO 4217 alphabetic code into a Code.
func Parse(s string) (Code, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for i, n := range names {
		if n == s {
			return Code(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
}

// MustParse is like Parse but panics on unknown codes.
func MustParse(s string) Code {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Code) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedCurrency, uint8(c))
	}
	return []byte(names[c]), nil
}

func (c *Code) UnmarshalText(b []byte) error {
	parsed, err := Parse(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
