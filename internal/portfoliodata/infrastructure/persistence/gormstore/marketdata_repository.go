package gormstore

import (
	"context"
	"fmt"

	"gorm.io/gorm/clause"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

// --- ticker ---

func (s *Store) InsertTicker(ctx context.Context, ticker *domain.Ticker) (uint, error) {
	model := toTickerModel(ticker)
	model.ID = 0
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return 0, insertFailed(err)
	}
	return model.ID, nil
}

func (s *Store) GetTickerID(ctx context.Context, name string) (uint, bool) {
	var model TickerModel
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&model).Error; err != nil {
		return 0, false
	}
	return model.ID, true
}

func (s *Store) InsertTickerIfNew(ctx context.Context, ticker *domain.Ticker) (uint, error) {
	if id, ok := s.GetTickerID(ctx, ticker.Name); ok {
		return id, nil
	}
	return s.InsertTicker(ctx, ticker)
}

func (s *Store) GetTicker(ctx context.Context, id uint) (*domain.Ticker, error) {
	var model TickerModel
	if err := s.db.WithContext(ctx).First(&model, id).Error; err != nil {
		return nil, notFound(err, "ticker", id)
	}
	return toTicker(&model)
}

func (s *Store) GetAllTickers(ctx context.Context) ([]domain.Ticker, error) {
	return s.findTickers(ctx, nil)
}

func (s *Store) GetTickersForSource(ctx context.Context, source string) ([]domain.Ticker, error) {
	return s.findTickers(ctx, map[string]any{"source": source})
}

func (s *Store) GetTickersForAsset(ctx context.Context, assetID uint) ([]domain.Ticker, error) {
	return s.findTickers(ctx, map[string]any{"asset_id": assetID})
}

func (s *Store) findTickers(ctx context.Context, conditions map[string]any) ([]domain.Ticker, error) {
	query := s.db.WithContext(ctx).Order("id")
	if len(conditions) > 0 {
		query = query.Where(conditions)
	}
	var models []TickerModel
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	tickers := make([]domain.Ticker, len(models))
	for i := range models {
		t, err := toTicker(&models[i])
		if err != nil {
			return nil, err
		}
		tickers[i] = *t
	}
	return tickers, nil
}

func (s *Store) UpdateTicker(ctx context.Context, ticker *domain.Ticker) error {
	if ticker.ID == 0 {
		return notFoundUnstored("ticker")
	}
	db := s.db.WithContext(ctx)
	var existing TickerModel
	if err := db.First(&existing, ticker.ID).Error; err != nil {
		return notFound(err, "ticker", ticker.ID)
	}
	if err := db.Save(toTickerModel(ticker)).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}

func (s *Store) DeleteTicker(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&TickerModel{}, id).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}

// --- quotes ---

func (s *Store) InsertQuote(ctx context.Context, quote *domain.Quote) (uint, error) {
	model := toQuoteModel(quote)
	model.ID = 0
	if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
		return 0, insertFailed(err)
	}
	return model.ID, nil
}

func (s *Store) GetQuotesForTicker(ctx context.Context, tickerID uint) ([]domain.Quote, error) {
	var models []QuoteModel
	err := s.db.WithContext(ctx).
		Where("ticker_id = ?", tickerID).
		Order("time asc").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	quotes := make([]domain.Quote, len(models))
	for i := range models {
		quotes[i] = *toQuote(&models[i])
	}
	return quotes, nil
}

func (s *Store) UpdateQuote(ctx context.Context, quote *domain.Quote) error {
	if quote.ID == 0 {
		return notFoundUnstored("quote")
	}
	db := s.db.WithContext(ctx)
	var existing QuoteModel
	if err := db.First(&existing, quote.ID).Error; err != nil {
		return notFound(err, "quote", quote.ID)
	}
	if err := db.Save(toQuoteModel(quote)).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}

func (s *Store) DeleteQuote(ctx context.Context, id uint) error {
	if err := s.db.WithContext(ctx).Delete(&QuoteModel{}, id).Error; err != nil {
		return insertFailed(err)
	}
	return nil
}

// --- rounding convention ---

// RoundingDigits is total: a missing entry or a failed lookup both fall
// back to the conventional default of 2.
func (s *Store) RoundingDigits(ctx context.Context, currency domain.Currency) int32 {
	var model RoundingDigitsModel
	err := s.db.WithContext(ctx).
		Where("currency = ?", currency.String()).
		First(&model).Error
	if err != nil {
		return 2
	}
	return model.Digits
}

func (s *Store) SetRoundingDigits(ctx context.Context, currency domain.Currency, digits int32) error {
	if digits < 0 {
		return fmt.Errorf("%w: negative digit count %d", domain.ErrInsertFailed, digits)
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "currency"}},
		DoUpdates: clause.AssignmentColumns([]string{"digits"}),
	}).Create(&RoundingDigitsModel{Currency: currency.String(), Digits: digits}).Error
	if err != nil {
		return insertFailed(err)
	}
	return nil
}
