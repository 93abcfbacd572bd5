package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Ticker is a named price feed from one market-data source for one asset.
// Several tickers may feed the same asset; Priority ranks them, higher
// wins.
type Ticker struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	AssetID  uint   `json:"asset_id"`
	Source   string `json:"source"`
	Priority int32  `json:"priority"`
	Currency Currency
	// Factor scales raw feed prices into the ticker currency, e.g. 0.01
	// for feeds quoting in pence.
	Factor decimal.Decimal `json:"factor"`
}

// Validate checks the ticker invariants before it is handed to a store.
func (t *Ticker) Validate() error {
	if t.Name == "" {
		return errors.New("ticker name is required")
	}
	if t.AssetID == 0 {
		return errors.New("ticker must reference an asset")
	}
	if t.Currency == "" {
		return errors.New("ticker currency is required")
	}
	return nil
}

// Quote is a single timestamped price observation for a ticker. Quotes of
// a ticker are conceptually ordered by Time.
type Quote struct {
	ID       uint            `json:"id"`
	TickerID uint            `json:"ticker_id"`
	Price    decimal.Decimal `json:"price"`
	// Time is normalized to UTC by the store.
	Time   time.Time        `json:"time"`
	Volume *decimal.Decimal `json:"volume,omitempty"`
}

// Validate checks the quote invariants before it is handed to a store.
func (q *Quote) Validate() error {
	if q.TickerID == 0 {
		return errors.New("quote must reference a ticker")
	}
	if q.Time.IsZero() {
		return errors.New("quote time is required")
	}
	return nil
}
