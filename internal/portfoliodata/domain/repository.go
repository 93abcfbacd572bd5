package domain

import (
	"context"
	"time"
)

// AssetRepository is the storage contract for assets.
type AssetRepository interface {
	// InsertAsset stores a new asset and returns the assigned id.
	InsertAsset(ctx context.Context, asset *Asset) (uint, error)
	// FindAssetID resolves an asset to a stored id by ISIN first, then
	// WKN, then name; only the first identifier the asset carries is
	// consulted. ok is false when nothing matches.
	FindAssetID(ctx context.Context, asset *Asset) (id uint, ok bool)
	GetAsset(ctx context.Context, id uint) (*Asset, error)
	GetAllAssets(ctx context.Context) ([]Asset, error)
	// UpdateAsset rewrites a stored asset. It fails with ErrNotFound when
	// the asset carries no id or the id is unknown.
	UpdateAsset(ctx context.Context, asset *Asset) error
	// DeleteAsset removes an asset by id; deleting an unknown id is a
	// no-op.
	DeleteAsset(ctx context.Context, id uint) error
}

// MarketDataRepository is the storage contract for tickers, their quotes
// and the per-currency rounding convention.
type MarketDataRepository interface {
	InsertTicker(ctx context.Context, ticker *Ticker) (uint, error)
	// GetTickerID resolves a ticker name to its stored id.
	GetTickerID(ctx context.Context, name string) (id uint, ok bool)
	// InsertTickerIfNew returns the existing id when a ticker of the same
	// name is already stored, otherwise inserts and returns the new id.
	// At most one row per name exists afterwards.
	InsertTickerIfNew(ctx context.Context, ticker *Ticker) (uint, error)
	GetTicker(ctx context.Context, id uint) (*Ticker, error)
	GetAllTickers(ctx context.Context) ([]Ticker, error)
	GetTickersForSource(ctx context.Context, source string) ([]Ticker, error)
	GetTickersForAsset(ctx context.Context, assetID uint) ([]Ticker, error)
	UpdateTicker(ctx context.Context, ticker *Ticker) error
	DeleteTicker(ctx context.Context, id uint) error

	InsertQuote(ctx context.Context, quote *Quote) (uint, error)
	// GetQuotesForTicker returns all quotes of a ticker ordered by
	// ascending time.
	GetQuotesForTicker(ctx context.Context, tickerID uint) ([]Quote, error)
	UpdateQuote(ctx context.Context, quote *Quote) error
	DeleteQuote(ctx context.Context, id uint) error

	// RoundingDigits is total: a currency without a configured entry
	// yields the default of 2 and lookup failures never surface.
	RoundingDigits(ctx context.Context, currency Currency) int32
	// SetRoundingDigits upserts the digit count for a currency.
	SetRoundingDigits(ctx context.Context, currency Currency, digits int32) error
}

// TransactionRepository is the storage contract for ledger transactions.
type TransactionRepository interface {
	InsertTransaction(ctx context.Context, transaction *Transaction) (uint, error)
	GetTransaction(ctx context.Context, id uint) (*Transaction, error)
	GetAllTransactions(ctx context.Context) ([]Transaction, error)
	UpdateTransaction(ctx context.Context, transaction *Transaction) error
	DeleteTransaction(ctx context.Context, id uint) error
}

// QuoteStored is published after a quote insert so downstream consumers
// (valuation, alerting) can react to fresh prices.
type QuoteStored struct {
	QuoteID  uint      `json:"quote_id"`
	TickerID uint      `json:"ticker_id"`
	Price    string    `json:"price"`
	Currency Currency  `json:"currency"`
	Time     time.Time `json:"time"`
}

// EventPublisher emits domain events to an external broker.
type EventPublisher interface {
	Publish(ctx context.Context, topic, key string, event any) error
}
