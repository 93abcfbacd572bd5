// Package persistence defines the flat row representation of the tagged
// transaction variant and the pure mapping to and from it. Every backend
// adapter persists transactions through this one codec, so the variant
// logic never leaks into engine-specific code.
package persistence

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

// Single-letter discriminants, one per transaction variant.
const (
	transCash     = "c"
	transAsset    = "a"
	transDividend = "d"
	transInterest = "i"
	transTax      = "t"
	transFee      = "f"
)

// TransactionRecord is the persisted shape of a transaction. Optional
// columns are populated exactly as the discriminant requires: an asset
// trade carries AssetID and Position, dividend and interest carry AssetID,
// tax and fee may carry RelatedID, cash carries none of them.
type TransactionRecord struct {
	ID           uint             `gorm:"column:id;primaryKey;autoIncrement"`
	TransType    string           `gorm:"column:trans_type;type:varchar(1);not null"`
	AssetID      *uint            `gorm:"column:asset_id"`
	CashAmount   decimal.Decimal  `gorm:"column:cash_amount;type:decimal(32,18);not null"`
	CashCurrency string           `gorm:"column:cash_currency;type:varchar(3);not null"`
	CashDate     time.Time        `gorm:"column:cash_date;not null"`
	RelatedID    *uint            `gorm:"column:related_trans"`
	Position     *decimal.Decimal `gorm:"column:position;type:decimal(32,18)"`
	Note         *string          `gorm:"column:note;type:text"`
}

func (TransactionRecord) TableName() string { return "transactions" }

// EncodeTransaction flattens a transaction into its row representation.
// Every constructible variant is representable, so encoding never fails.
func EncodeTransaction(t *domain.Transaction) *TransactionRecord {
	r := &TransactionRecord{
		ID:           t.ID,
		CashAmount:   t.CashFlow.Amount.Amount,
		CashCurrency: t.CashFlow.Amount.Currency.String(),
		CashDate:     t.CashFlow.Date,
	}
	if t.Note != "" {
		note := t.Note
		r.Note = &note
	}
	switch tt := t.Type.(type) {
	case domain.Cash:
		r.TransType = transCash
	case domain.AssetTrade:
		r.TransType = transAsset
		assetID := tt.AssetID
		position := tt.Position
		r.AssetID = &assetID
		r.Position = &position
	case domain.Dividend:
		r.TransType = transDividend
		assetID := tt.AssetID
		r.AssetID = &assetID
	case domain.Interest:
		r.TransType = transInterest
		assetID := tt.AssetID
		r.AssetID = &assetID
	case domain.Tax:
		r.TransType = transTax
		r.RelatedID = copyID(tt.RelatedID)
	case domain.Fee:
		r.TransType = transFee
		r.RelatedID = copyID(tt.RelatedID)
	}
	return r
}

// Decode rebuilds the tagged transaction from a row. It fails with
// ErrInvalidTransaction when the discriminant is unknown or a field the
// discriminant requires is absent, and with ErrInvalidCurrency when the
// stored currency code does not parse.
func (r *TransactionRecord) Decode() (*domain.Transaction, error) {
	currency, err := domain.ParseCurrency(r.CashCurrency)
	if err != nil {
		return nil, err
	}

	var transType domain.TransactionType
	switch r.TransType {
	case transCash:
		transType = domain.Cash{}
	case transAsset:
		if r.AssetID == nil {
			return nil, fmt.Errorf("%w: asset trade without asset id", domain.ErrInvalidTransaction)
		}
		if r.Position == nil {
			return nil, fmt.Errorf("%w: asset trade without position", domain.ErrInvalidTransaction)
		}
		transType = domain.AssetTrade{AssetID: *r.AssetID, Position: *r.Position}
	case transDividend:
		if r.AssetID == nil {
			return nil, fmt.Errorf("%w: dividend without asset id", domain.ErrInvalidTransaction)
		}
		transType = domain.Dividend{AssetID: *r.AssetID}
	case transInterest:
		if r.AssetID == nil {
			return nil, fmt.Errorf("%w: interest without asset id", domain.ErrInvalidTransaction)
		}
		transType = domain.Interest{AssetID: *r.AssetID}
	case transTax:
		transType = domain.Tax{RelatedID: copyID(r.RelatedID)}
	case transFee:
		transType = domain.Fee{RelatedID: copyID(r.RelatedID)}
	default:
		return nil, fmt.Errorf("%w: unknown discriminant %q", domain.ErrInvalidTransaction, r.TransType)
	}

	t := &domain.Transaction{
		ID:   r.ID,
		Type: transType,
		CashFlow: domain.CashFlow{
			Amount: domain.CashAmount{Amount: r.CashAmount, Currency: currency},
			Date:   r.CashDate.UTC(),
		},
	}
	if r.Note != nil {
		t.Note = *r.Note
	}
	return t, nil
}

func copyID(id *uint) *uint {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}
