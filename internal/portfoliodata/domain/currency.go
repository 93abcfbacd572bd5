package domain

import (
	"fmt"
	"strings"

	"github.com/Rhymond/go-money"
)

// Currency is a 3-letter ISO 4217 currency code, e.g. "EUR".
type Currency string

// ParseCurrency normalizes and validates a currency code against the
// ISO 4217 table. Unknown codes fail with ErrInvalidCurrency.
func ParseCurrency(code string) (Currency, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if money.GetCurrency(code) == nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCurrency, code)
	}
	return Currency(code), nil
}

func (c Currency) String() string { return string(c) }
