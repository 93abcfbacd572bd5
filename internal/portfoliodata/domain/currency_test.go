package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCurrency(t *testing.T) {
	t.Parallel()

	cases := []struct {
		input string
		want  Currency
	}{
		{"EUR", "EUR"},
		{"usd", "USD"},
		{" gbp ", "GBP"},
	}
	for _, tc := range cases {
		got, err := ParseCurrency(tc.input)
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestParseCurrencyRejectsUnknownCodes(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"", "EU", "EURO", "XQZ"} {
		_, err := ParseCurrency(input)
		assert.ErrorIs(t, err, ErrInvalidCurrency, "input %q", input)
	}
}
