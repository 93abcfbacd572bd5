package http

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

// decimalOrOne decodes an optional decimal field that defaults to 1 when
// absent.
type decimalOrOne struct {
	d *decimal.Decimal
}

func (v *decimalOrOne) UnmarshalJSON(data []byte) error {
	var d decimal.Decimal
	if err := d.UnmarshalJSON(data); err != nil {
		return err
	}
	v.d = &d
	return nil
}

// Value returns the decoded decimal, or 1 when the field was absent.
func (v decimalOrOne) Value() decimal.Decimal {
	if v.d == nil {
		return decimal.NewFromInt(1)
	}
	return *v.d
}

// transactionDTO is the wire shape of a transaction. The optional fields
// mirror the tagged variant: only the ones the kind requires are set.
type transactionDTO struct {
	ID        uint             `json:"id,omitempty"`
	Kind      string           `json:"kind"`
	AssetID   *uint            `json:"asset_id,omitempty"`
	Position  *decimal.Decimal `json:"position,omitempty"`
	RelatedID *uint            `json:"related_id,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
	Currency  string           `json:"currency"`
	Date      time.Time        `json:"date"`
	Note      string           `json:"note,omitempty"`
}

func (d *transactionDTO) toDomain() (*domain.Transaction, error) {
	currency, err := domain.ParseCurrency(d.Currency)
	if err != nil {
		return nil, err
	}

	var transType domain.TransactionType
	switch domain.TransactionKind(d.Kind) {
	case domain.KindCash:
		transType = domain.Cash{}
	case domain.KindAssetTrade:
		if d.AssetID == nil || d.Position == nil {
			return nil, fmt.Errorf("%w: asset trade requires asset_id and position", domain.ErrInvalidTransaction)
		}
		transType = domain.AssetTrade{AssetID: *d.AssetID, Position: *d.Position}
	case domain.KindDividend:
		if d.AssetID == nil {
			return nil, fmt.Errorf("%w: dividend requires asset_id", domain.ErrInvalidTransaction)
		}
		transType = domain.Dividend{AssetID: *d.AssetID}
	case domain.KindInterest:
		if d.AssetID == nil {
			return nil, fmt.Errorf("%w: interest requires asset_id", domain.ErrInvalidTransaction)
		}
		transType = domain.Interest{AssetID: *d.AssetID}
	case domain.KindTax:
		transType = domain.Tax{RelatedID: d.RelatedID}
	case domain.KindFee:
		transType = domain.Fee{RelatedID: d.RelatedID}
	default:
		return nil, fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidTransaction, d.Kind)
	}

	return &domain.Transaction{
		ID:   d.ID,
		Type: transType,
		CashFlow: domain.CashFlow{
			Amount: domain.CashAmount{Amount: d.Amount, Currency: currency},
			Date:   d.Date,
		},
		Note: d.Note,
	}, nil
}

func fromDomain(t *domain.Transaction) transactionDTO {
	dto := transactionDTO{
		ID:       t.ID,
		Kind:     string(t.Type.Kind()),
		Amount:   t.CashFlow.Amount.Amount,
		Currency: t.CashFlow.Amount.Currency.String(),
		Date:     t.CashFlow.Date,
		Note:     t.Note,
	}
	switch tt := t.Type.(type) {
	case domain.AssetTrade:
		assetID := tt.AssetID
		position := tt.Position
		dto.AssetID = &assetID
		dto.Position = &position
	case domain.Dividend:
		assetID := tt.AssetID
		dto.AssetID = &assetID
	case domain.Interest:
		assetID := tt.AssetID
		dto.AssetID = &assetID
	case domain.Tax:
		dto.RelatedID = tt.RelatedID
	case domain.Fee:
		dto.RelatedID = tt.RelatedID
	}
	return dto
}
