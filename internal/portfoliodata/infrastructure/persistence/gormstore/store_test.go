package gormstore

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	// An in-memory sqlite database exists per connection; keep the pool
	// at one so every query sees the same database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	store := New(db)
	require.NoError(t, store.AutoMigrate())
	return store
}

func TestAssetCRUD(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	id, err := store.InsertAsset(ctx, &domain.Asset{
		Name: "BASF",
		ISIN: "DE000BASF111",
		WKN:  "BASF11",
	})
	require.NoError(t, err)
	require.NotZero(t, id)

	asset, err := store.GetAsset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "BASF", asset.Name)
	assert.Equal(t, "DE000BASF111", asset.ISIN)
	assert.Empty(t, asset.Note)

	asset.Note = "chemicals"
	require.NoError(t, store.UpdateAsset(ctx, asset))

	updated, err := store.GetAsset(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "chemicals", updated.Note)

	all, err := store.GetAllAssets(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, store.DeleteAsset(ctx, id))
	_, err = store.GetAsset(ctx, id)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	// Deleting again is a no-op.
	assert.NoError(t, store.DeleteAsset(ctx, id))
}

func TestFindAssetIDResolutionOrder(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	first, err := store.InsertAsset(ctx, &domain.Asset{Name: "A", ISIN: "DE0001", WKN: "W1"})
	require.NoError(t, err)
	second, err := store.InsertAsset(ctx, &domain.Asset{Name: "B", ISIN: "DE0002", WKN: "W2"})
	require.NoError(t, err)

	id, ok := store.FindAssetID(ctx, &domain.Asset{Name: "A", ISIN: "DE0002", WKN: "W1"})
	require.True(t, ok)
	assert.Equal(t, second, id)

	id, ok = store.FindAssetID(ctx, &domain.Asset{Name: "B", WKN: "W1"})
	require.True(t, ok)
	assert.Equal(t, first, id)

	_, ok = store.FindAssetID(ctx, &domain.Asset{Name: "missing"})
	assert.False(t, ok)
}

func TestUpdateUnstoredEntitiesFail(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	assert.ErrorIs(t, store.UpdateAsset(ctx, &domain.Asset{Name: "x"}), domain.ErrNotFound)
	assert.ErrorIs(t, store.UpdateTicker(ctx, &domain.Ticker{
		Name: "x", AssetID: 1, Currency: "EUR", Factor: decimal.NewFromInt(1),
	}), domain.ErrNotFound)
	assert.ErrorIs(t, store.UpdateQuote(ctx, &domain.Quote{TickerID: 1, Time: time.Now()}), domain.ErrNotFound)
	assert.ErrorIs(t, store.UpdateTransaction(ctx, &domain.Transaction{
		Type: domain.Cash{},
		CashFlow: domain.CashFlow{
			Amount: domain.CashAmount{Amount: decimal.NewFromInt(1), Currency: "EUR"},
			Date:   time.Now(),
		},
	}), domain.ErrNotFound)
}

func TestTickerUniqueNameAndInsertIfNew(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	ticker := domain.Ticker{
		Name:     "BAS.DE",
		AssetID:  1,
		Source:   "yahoo",
		Priority: 10,
		Currency: "EUR",
		Factor:   decimal.NewFromInt(1),
	}
	id, err := store.InsertTicker(ctx, &ticker)
	require.NoError(t, err)

	// The unique index on name rejects a second row.
	_, err = store.InsertTicker(ctx, &ticker)
	assert.ErrorIs(t, err, domain.ErrInsertFailed)

	again, err := store.InsertTickerIfNew(ctx, &ticker)
	require.NoError(t, err)
	assert.Equal(t, id, again)

	all, err := store.GetAllTickers(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestQuoteOrderingAndRounding(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	tickerID, err := store.InsertTicker(ctx, &domain.Ticker{
		Name:     "BAS.DE",
		AssetID:  1,
		Source:   "yahoo",
		Priority: 10,
		Currency: "EUR",
		Factor:   decimal.NewFromInt(1),
	})
	require.NoError(t, err)

	times := []time.Time{
		time.Date(2023, 1, 3, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
	}
	for i, ts := range times {
		_, err := store.InsertQuote(ctx, &domain.Quote{
			TickerID: tickerID,
			Price:    decimal.NewFromInt(int64(i + 1)),
			Time:     ts,
		})
		require.NoError(t, err)
	}

	quotes, err := store.GetQuotesForTicker(ctx, tickerID)
	require.NoError(t, err)
	require.Len(t, quotes, 3)
	for i := 1; i < len(quotes); i++ {
		assert.True(t, quotes[i-1].Time.Before(quotes[i].Time))
	}

	assert.Equal(t, int32(2), store.RoundingDigits(ctx, "EUR"))
	require.NoError(t, store.SetRoundingDigits(ctx, "EUR", 4))
	assert.Equal(t, int32(4), store.RoundingDigits(ctx, "EUR"))
	require.NoError(t, store.SetRoundingDigits(ctx, "EUR", 3))
	assert.Equal(t, int32(3), store.RoundingDigits(ctx, "EUR"))
	assert.ErrorIs(t, store.SetRoundingDigits(ctx, "EUR", -1), domain.ErrInsertFailed)
}

func TestTransactionPersistence(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	related := uint(1)
	transactions := []domain.Transaction{
		{
			Type: domain.Cash{},
			CashFlow: domain.CashFlow{
				Amount: domain.CashAmount{Amount: decimal.RequireFromString("1000.00"), Currency: "EUR"},
				Date:   time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		{
			Type: domain.AssetTrade{AssetID: 2, Position: decimal.RequireFromString("12.5")},
			CashFlow: domain.CashFlow{
				Amount: domain.CashAmount{Amount: decimal.RequireFromString("-250.75"), Currency: "EUR"},
				Date:   time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
			},
			Note: "buy order",
		},
		{
			Type: domain.Fee{RelatedID: &related},
			CashFlow: domain.CashFlow{
				Amount: domain.CashAmount{Amount: decimal.RequireFromString("-2.50"), Currency: "EUR"},
				Date:   time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC),
			},
		},
	}

	ids := make([]uint, len(transactions))
	for i := range transactions {
		id, err := store.InsertTransaction(ctx, &transactions[i])
		require.NoError(t, err)
		ids[i] = id
	}

	trade, err := store.GetTransaction(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, transactions[1].Type, trade.Type)
	assert.Equal(t, "buy order", trade.Note)
	assert.True(t, trade.CashFlow.Amount.Amount.Equal(decimal.RequireFromString("-250.75")))

	all, err := store.GetAllTransactions(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	trade.Note = "opening position"
	require.NoError(t, store.UpdateTransaction(ctx, trade))
	updated, err := store.GetTransaction(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, "opening position", updated.Note)

	require.NoError(t, store.DeleteTransaction(ctx, ids[2]))
	_, err = store.GetTransaction(ctx, ids[2])
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
