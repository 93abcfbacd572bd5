package gormstore

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

// AssetModel maps the assets table.
type AssetModel struct {
	ID   uint    `gorm:"column:id;primaryKey;autoIncrement"`
	Name string  `gorm:"column:name;type:varchar(128);index;not null"`
	WKN  *string `gorm:"column:wkn;type:varchar(32)"`
	ISIN *string `gorm:"column:isin;type:varchar(12)"`
	Note *string `gorm:"column:note;type:text"`
}

func (AssetModel) TableName() string { return "assets" }

// TickerModel maps the ticker table. The name is unique across sources so
// InsertTickerIfNew stays idempotent.
type TickerModel struct {
	ID       uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name     string          `gorm:"column:name;type:varchar(64);uniqueIndex;not null"`
	AssetID  uint            `gorm:"column:asset_id;index;not null"`
	Source   string          `gorm:"column:source;type:varchar(64);index;not null"`
	Priority int32           `gorm:"column:priority;not null"`
	Currency string          `gorm:"column:currency;type:varchar(3);not null"`
	Factor   decimal.Decimal `gorm:"column:factor;type:decimal(32,18);not null"`
}

func (TickerModel) TableName() string { return "ticker" }

// QuoteModel maps the quotes table.
type QuoteModel struct {
	ID       uint             `gorm:"column:id;primaryKey;autoIncrement"`
	TickerID uint             `gorm:"column:ticker_id;index;not null"`
	Price    decimal.Decimal  `gorm:"column:price;type:decimal(32,18);not null"`
	Time     time.Time        `gorm:"column:time;index;not null"`
	Volume   *decimal.Decimal `gorm:"column:volume;type:decimal(32,18)"`
}

func (QuoteModel) TableName() string { return "quotes" }

// RoundingDigitsModel maps the rounding_digits table.
type RoundingDigitsModel struct {
	Currency string `gorm:"column:currency;type:varchar(3);primaryKey"`
	Digits   int32  `gorm:"column:digits;not null"`
}

func (RoundingDigitsModel) TableName() string { return "rounding_digits" }

// --- mapping helpers ---

func toAssetModel(a *domain.Asset) *AssetModel {
	return &AssetModel{
		ID:   a.ID,
		Name: a.Name,
		WKN:  optionalString(a.WKN),
		ISIN: optionalString(a.ISIN),
		Note: optionalString(a.Note),
	}
}

func toAsset(m *AssetModel) *domain.Asset {
	return &domain.Asset{
		ID:   m.ID,
		Name: m.Name,
		WKN:  stringValue(m.WKN),
		ISIN: stringValue(m.ISIN),
		Note: stringValue(m.Note),
	}
}

func toTickerModel(t *domain.Ticker) *TickerModel {
	return &TickerModel{
		ID:       t.ID,
		Name:     t.Name,
		AssetID:  t.AssetID,
		Source:   t.Source,
		Priority: t.Priority,
		Currency: t.Currency.String(),
		Factor:   t.Factor,
	}
}

func toTicker(m *TickerModel) (*domain.Ticker, error) {
	currency, err := domain.ParseCurrency(m.Currency)
	if err != nil {
		return nil, err
	}
	return &domain.Ticker{
		ID:       m.ID,
		Name:     m.Name,
		AssetID:  m.AssetID,
		Source:   m.Source,
		Priority: m.Priority,
		Currency: currency,
		Factor:   m.Factor,
	}, nil
}

func toQuoteModel(q *domain.Quote) *QuoteModel {
	return &QuoteModel{
		ID:       q.ID,
		TickerID: q.TickerID,
		Price:    q.Price,
		Time:     q.Time.UTC(),
		Volume:   q.Volume,
	}
}

func toQuote(m *QuoteModel) *domain.Quote {
	return &domain.Quote{
		ID:       m.ID,
		TickerID: m.TickerID,
		Price:    m.Price,
		Time:     m.Time.UTC(),
		Volume:   m.Volume,
	}
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func stringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
