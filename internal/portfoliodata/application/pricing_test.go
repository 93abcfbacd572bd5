package application

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/infrastructure/persistence/memory"
)

type priceFixture struct {
	store   *memory.Store
	prices  *PriceService
	assetID uint
}

func newPriceFixture(t *testing.T) *priceFixture {
	t.Helper()
	store := memory.NewStore()
	assetID, err := store.InsertAsset(context.Background(), &domain.Asset{Name: "ACME"})
	require.NoError(t, err)
	return &priceFixture{
		store:   store,
		prices:  NewPriceService(store, store),
		assetID: assetID,
	}
}

func (f *priceFixture) addTicker(t *testing.T, name string, priority int32, currency domain.Currency) uint {
	t.Helper()
	id, err := f.store.InsertTicker(context.Background(), &domain.Ticker{
		Name:     name,
		AssetID:  f.assetID,
		Source:   "yahoo",
		Priority: priority,
		Currency: currency,
		Factor:   decimal.NewFromInt(1),
	})
	require.NoError(t, err)
	return id
}

func (f *priceFixture) addQuote(t *testing.T, tickerID uint, price int64, at time.Time) {
	t.Helper()
	_, err := f.store.InsertQuote(context.Background(), &domain.Quote{
		TickerID: tickerID,
		Price:    decimal.NewFromInt(price),
		Time:     at,
	})
	require.NoError(t, err)
}

func TestLatestQuoteBeforePicksLatestTime(t *testing.T) {
	t.Parallel()
	f := newPriceFixture(t)

	tickerA := f.addTicker(t, "ACME.A", 1, "EUR")
	tickerB := f.addTicker(t, "ACME.B", 5, "USD")

	f.addQuote(t, tickerA, 10, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	f.addQuote(t, tickerB, 9, time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC))
	f.addQuote(t, tickerB, 11, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))

	quote, currency, err := f.prices.LatestQuoteBefore(context.Background(), "ACME",
		time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(11)))
	assert.Equal(t, domain.Currency("USD"), currency)
}

func TestLatestQuoteBeforeIgnoresQuotesAfterCutoff(t *testing.T) {
	t.Parallel()
	f := newPriceFixture(t)

	ticker := f.addTicker(t, "ACME.A", 1, "EUR")
	f.addQuote(t, ticker, 10, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	f.addQuote(t, ticker, 11, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC))

	quote, _, err := f.prices.LatestQuoteBefore(context.Background(), "ACME",
		time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(10)))
}

func TestLatestQuoteBeforeBreaksTieByPriority(t *testing.T) {
	t.Parallel()
	f := newPriceFixture(t)

	at := time.Date(2023, 2, 1, 0, 0, 0, 0, time.UTC)
	tickerA := f.addTicker(t, "ACME.A", 1, "EUR")
	tickerB := f.addTicker(t, "ACME.B", 5, "USD")
	f.addQuote(t, tickerA, 100, at)
	f.addQuote(t, tickerB, 200, at)

	quote, currency, err := f.prices.LatestQuoteBefore(context.Background(), "ACME", at)
	require.NoError(t, err)
	assert.True(t, quote.Price.Equal(decimal.NewFromInt(200)))
	assert.Equal(t, domain.Currency("USD"), currency)
}

func TestLatestQuoteBeforeNoData(t *testing.T) {
	t.Parallel()
	f := newPriceFixture(t)

	// A ticker exists but all of its quotes are after the cutoff.
	ticker := f.addTicker(t, "ACME.A", 1, "EUR")
	f.addQuote(t, ticker, 10, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC))

	_, _, err := f.prices.LatestQuoteBefore(context.Background(), "ACME",
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLatestQuoteBeforeUnknownAsset(t *testing.T) {
	t.Parallel()
	f := newPriceFixture(t)

	_, _, err := f.prices.LatestQuoteBefore(context.Background(), "NO-SUCH-ASSET", time.Now())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
