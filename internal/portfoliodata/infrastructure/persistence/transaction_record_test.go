package persistence

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

func cashFlow(amount string) domain.CashFlow {
	return domain.CashFlow{
		Amount: domain.CashAmount{
			Amount:   decimal.RequireFromString(amount),
			Currency: domain.Currency("EUR"),
		},
		Date: time.Date(2020, 1, 15, 0, 0, 0, 0, time.UTC),
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	t.Parallel()

	related := uint(7)
	cases := []struct {
		name  string
		trans domain.Transaction
	}{
		{
			name: "cash",
			trans: domain.Transaction{
				ID:       1,
				Type:     domain.Cash{},
				CashFlow: cashFlow("1000.00"),
			},
		},
		{
			name: "asset trade",
			trans: domain.Transaction{
				ID:       2,
				Type:     domain.AssetTrade{AssetID: 3, Position: decimal.RequireFromString("12.5")},
				CashFlow: cashFlow("-250.75"),
				Note:     "buy order",
			},
		},
		{
			name: "dividend",
			trans: domain.Transaction{
				ID:       3,
				Type:     domain.Dividend{AssetID: 3},
				CashFlow: cashFlow("4.20"),
			},
		},
		{
			name: "interest",
			trans: domain.Transaction{
				ID:       4,
				Type:     domain.Interest{AssetID: 5},
				CashFlow: cashFlow("0.90"),
			},
		},
		{
			name: "tax with related transaction",
			trans: domain.Transaction{
				ID:       5,
				Type:     domain.Tax{RelatedID: &related},
				CashFlow: cashFlow("-1.05"),
			},
		},
		{
			name: "fee without related transaction",
			trans: domain.Transaction{
				ID:       6,
				Type:     domain.Fee{},
				CashFlow: cashFlow("-2.50"),
			},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			record := EncodeTransaction(&tc.trans)
			decoded, err := record.Decode()
			require.NoError(t, err)
			assert.Equal(t, tc.trans, *decoded)
		})
	}
}

func TestEncodePopulatesOnlyVariantColumns(t *testing.T) {
	t.Parallel()

	trans := domain.Transaction{
		Type:     domain.Cash{},
		CashFlow: cashFlow("100"),
	}
	record := EncodeTransaction(&trans)

	assert.Equal(t, transCash, record.TransType)
	assert.Nil(t, record.AssetID)
	assert.Nil(t, record.Position)
	assert.Nil(t, record.RelatedID)
	assert.Nil(t, record.Note)
}

func TestDecodeUnknownDiscriminant(t *testing.T) {
	t.Parallel()

	record := TransactionRecord{
		TransType:    "x",
		CashAmount:   decimal.NewFromInt(1),
		CashCurrency: "EUR",
		CashDate:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := record.Decode()
	assert.ErrorIs(t, err, domain.ErrInvalidTransaction)
}

func TestDecodeMissingRequiredFields(t *testing.T) {
	t.Parallel()

	assetID := uint(3)
	position := decimal.NewFromInt(10)
	cases := []struct {
		name   string
		record TransactionRecord
	}{
		{
			name:   "asset trade without asset id",
			record: TransactionRecord{TransType: transAsset, Position: &position},
		},
		{
			name:   "asset trade without position",
			record: TransactionRecord{TransType: transAsset, AssetID: &assetID},
		},
		{
			name:   "dividend without asset id",
			record: TransactionRecord{TransType: transDividend},
		},
		{
			name:   "interest without asset id",
			record: TransactionRecord{TransType: transInterest},
		},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			tc.record.CashAmount = decimal.NewFromInt(1)
			tc.record.CashCurrency = "USD"
			tc.record.CashDate = time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

			_, err := tc.record.Decode()
			assert.ErrorIs(t, err, domain.ErrInvalidTransaction)
		})
	}
}

func TestDecodeInvalidCurrency(t *testing.T) {
	t.Parallel()

	record := TransactionRecord{
		TransType:    transCash,
		CashAmount:   decimal.NewFromInt(1),
		CashCurrency: "XQZ",
		CashDate:     time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	_, err := record.Decode()
	assert.ErrorIs(t, err, domain.ErrInvalidCurrency)
}

func TestDecodeNormalizesDateToUTC(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("CET", 3600)
	record := TransactionRecord{
		TransType:    transCash,
		CashAmount:   decimal.NewFromInt(1),
		CashCurrency: "EUR",
		CashDate:     time.Date(2020, 1, 15, 10, 0, 0, 0, loc),
	}
	decoded, err := record.Decode()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, decoded.CashFlow.Date.Location())
	assert.True(t, decoded.CashFlow.Date.Equal(record.CashDate))
}
