package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind identifies the active variant of a transaction.
type TransactionKind string

const (
	KindCash       TransactionKind = "cash"
	KindAssetTrade TransactionKind = "asset"
	KindDividend   TransactionKind = "dividend"
	KindInterest   TransactionKind = "interest"
	KindTax        TransactionKind = "tax"
	KindFee        TransactionKind = "fee"
)

// TransactionType is the tagged transaction variant. Exactly one concrete
// type is active per transaction; fields irrelevant to the active variant
// do not exist on it.
type TransactionType interface {
	Kind() TransactionKind
}

// Cash is a plain cash transfer in or out of the portfolio account.
type Cash struct{}

// AssetTrade buys or sells an asset; Position is the signed quantity
// change.
type AssetTrade struct {
	AssetID  uint            `json:"asset_id"`
	Position decimal.Decimal `json:"position"`
}

// Dividend is a dividend payment for an asset.
type Dividend struct {
	AssetID uint `json:"asset_id"`
}

// Interest is an interest payment for an asset.
type Interest struct {
	AssetID uint `json:"asset_id"`
}

// Tax is a tax charge, optionally tied to the transaction it was levied on.
type Tax struct {
	RelatedID *uint `json:"related_id,omitempty"`
}

// Fee is a fee charge, optionally tied to the transaction that caused it.
type Fee struct {
	RelatedID *uint `json:"related_id,omitempty"`
}

func (Cash) Kind() TransactionKind       { return KindCash }
func (AssetTrade) Kind() TransactionKind { return KindAssetTrade }
func (Dividend) Kind() TransactionKind   { return KindDividend }
func (Interest) Kind() TransactionKind   { return KindInterest }
func (Tax) Kind() TransactionKind        { return KindTax }
func (Fee) Kind() TransactionKind        { return KindFee }

// CashAmount is a monetary amount in a specific currency.
type CashAmount struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency Currency        `json:"currency"`
}

// CashFlow is a dated cash amount attached to a transaction.
type CashFlow struct {
	Amount CashAmount `json:"amount"`
	Date   time.Time  `json:"date"`
}

// Transaction is a single entry of the portfolio ledger.
type Transaction struct {
	ID       uint            `json:"id"`
	Type     TransactionType `json:"type"`
	CashFlow CashFlow        `json:"cash_flow"`
	Note     string          `json:"note,omitempty"`
}

// Validate checks the transaction invariants before it is handed to a
// store.
func (t *Transaction) Validate() error {
	if t.Type == nil {
		return errors.New("transaction type is required")
	}
	switch tt := t.Type.(type) {
	case AssetTrade:
		if tt.AssetID == 0 {
			return errors.New("asset trade must reference an asset")
		}
	case Dividend:
		if tt.AssetID == 0 {
			return errors.New("dividend must reference an asset")
		}
	case Interest:
		if tt.AssetID == 0 {
			return errors.New("interest must reference an asset")
		}
	}
	if t.CashFlow.Amount.Currency == "" {
		return errors.New("cash flow currency is required")
	}
	if t.CashFlow.Date.IsZero() {
		return errors.New("cash flow date is required")
	}
	return nil
}
