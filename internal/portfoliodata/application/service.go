// Package application exposes the use cases of the portfolio data store:
// entity CRUD with validation, quote recording with event publication, and
// price resolution.
package application

import (
	"context"
	"fmt"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
	"github.com/wyfcoding/portfoliodata/pkg/logger"
)

// QuoteStoredTopic is the broker topic quote events are published to.
const QuoteStoredTopic = "portfoliodata.quote.stored"

// Service is the use-case façade over the storage contracts. All calls are
// synchronous; the service adds validation, logging and event publication
// but no caching and no cross-call atomicity.
type Service struct {
	assets       domain.AssetRepository
	market       domain.MarketDataRepository
	transactions domain.TransactionRepository
	events       domain.EventPublisher
}

// NewService wires the service. events may be nil to disable publication.
func NewService(
	assets domain.AssetRepository,
	market domain.MarketDataRepository,
	transactions domain.TransactionRepository,
	events domain.EventPublisher,
) *Service {
	return &Service{
		assets:       assets,
		market:       market,
		transactions: transactions,
		events:       events,
	}
}

// --- assets ---

func (s *Service) CreateAsset(ctx context.Context, asset *domain.Asset) (uint, error) {
	if err := asset.Validate(); err != nil {
		return 0, err
	}
	id, err := s.assets.InsertAsset(ctx, asset)
	if err != nil {
		return 0, err
	}
	logger.Info(ctx, "asset created", "asset_id", id, "name", asset.Name)
	return id, nil
}

// ResolveAssetID finds a stored asset matching the strongest identifier
// the given asset carries (ISIN, then WKN, then name).
func (s *Service) ResolveAssetID(ctx context.Context, asset *domain.Asset) (uint, bool) {
	return s.assets.FindAssetID(ctx, asset)
}

func (s *Service) GetAsset(ctx context.Context, id uint) (*domain.Asset, error) {
	return s.assets.GetAsset(ctx, id)
}

func (s *Service) ListAssets(ctx context.Context) ([]domain.Asset, error) {
	return s.assets.GetAllAssets(ctx)
}

func (s *Service) UpdateAsset(ctx context.Context, asset *domain.Asset) error {
	if err := asset.Validate(); err != nil {
		return err
	}
	return s.assets.UpdateAsset(ctx, asset)
}

func (s *Service) DeleteAsset(ctx context.Context, id uint) error {
	return s.assets.DeleteAsset(ctx, id)
}

// --- tickers ---

func (s *Service) CreateTicker(ctx context.Context, ticker *domain.Ticker) (uint, error) {
	if err := s.validateTicker(ctx, ticker); err != nil {
		return 0, err
	}
	return s.market.InsertTicker(ctx, ticker)
}

// EnsureTicker registers a ticker unless one of the same name already
// exists, and returns the id either way.
func (s *Service) EnsureTicker(ctx context.Context, ticker *domain.Ticker) (uint, error) {
	if err := s.validateTicker(ctx, ticker); err != nil {
		return 0, err
	}
	return s.market.InsertTickerIfNew(ctx, ticker)
}

func (s *Service) validateTicker(ctx context.Context, ticker *domain.Ticker) error {
	if err := ticker.Validate(); err != nil {
		return err
	}
	if _, err := s.assets.GetAsset(ctx, ticker.AssetID); err != nil {
		return fmt.Errorf("ticker references unknown asset %d: %w", ticker.AssetID, err)
	}
	return nil
}

func (s *Service) GetTicker(ctx context.Context, id uint) (*domain.Ticker, error) {
	return s.market.GetTicker(ctx, id)
}

func (s *Service) ListTickers(ctx context.Context) ([]domain.Ticker, error) {
	return s.market.GetAllTickers(ctx)
}

func (s *Service) ListTickersForSource(ctx context.Context, source string) ([]domain.Ticker, error) {
	return s.market.GetTickersForSource(ctx, source)
}

func (s *Service) ListTickersForAsset(ctx context.Context, assetID uint) ([]domain.Ticker, error) {
	return s.market.GetTickersForAsset(ctx, assetID)
}

func (s *Service) UpdateTicker(ctx context.Context, ticker *domain.Ticker) error {
	if err := ticker.Validate(); err != nil {
		return err
	}
	return s.market.UpdateTicker(ctx, ticker)
}

func (s *Service) DeleteTicker(ctx context.Context, id uint) error {
	return s.market.DeleteTicker(ctx, id)
}

// --- quotes ---

// RecordQuote stores a price observation and, when a publisher is wired,
// emits a QuoteStored event. Publication failures are logged, not
// surfaced: the quote is already durable at that point.
func (s *Service) RecordQuote(ctx context.Context, quote *domain.Quote) (uint, error) {
	if err := quote.Validate(); err != nil {
		return 0, err
	}
	ticker, err := s.market.GetTicker(ctx, quote.TickerID)
	if err != nil {
		return 0, fmt.Errorf("quote references unknown ticker %d: %w", quote.TickerID, err)
	}

	id, err := s.market.InsertQuote(ctx, quote)
	if err != nil {
		return 0, err
	}

	if s.events != nil {
		event := domain.QuoteStored{
			QuoteID:  id,
			TickerID: quote.TickerID,
			Price:    quote.Price.String(),
			Currency: ticker.Currency,
			Time:     quote.Time.UTC(),
		}
		if err := s.events.Publish(ctx, QuoteStoredTopic, ticker.Name, event); err != nil {
			logger.Error(ctx, "quote event publish failed", "quote_id", id, "error", err)
		}
	}
	return id, nil
}

func (s *Service) ListQuotes(ctx context.Context, tickerID uint) ([]domain.Quote, error) {
	return s.market.GetQuotesForTicker(ctx, tickerID)
}

func (s *Service) UpdateQuote(ctx context.Context, quote *domain.Quote) error {
	if err := quote.Validate(); err != nil {
		return err
	}
	return s.market.UpdateQuote(ctx, quote)
}

func (s *Service) DeleteQuote(ctx context.Context, id uint) error {
	return s.market.DeleteQuote(ctx, id)
}

// --- rounding convention ---

func (s *Service) RoundingDigits(ctx context.Context, currency domain.Currency) int32 {
	return s.market.RoundingDigits(ctx, currency)
}

func (s *Service) SetRoundingDigits(ctx context.Context, currency domain.Currency, digits int32) error {
	return s.market.SetRoundingDigits(ctx, currency, digits)
}

// --- transactions ---

func (s *Service) RecordTransaction(ctx context.Context, transaction *domain.Transaction) (uint, error) {
	if err := transaction.Validate(); err != nil {
		return 0, err
	}
	id, err := s.transactions.InsertTransaction(ctx, transaction)
	if err != nil {
		return 0, err
	}
	logger.Info(ctx, "transaction recorded", "transaction_id", id, "kind", transaction.Type.Kind())
	return id, nil
}

func (s *Service) GetTransaction(ctx context.Context, id uint) (*domain.Transaction, error) {
	return s.transactions.GetTransaction(ctx, id)
}

func (s *Service) ListTransactions(ctx context.Context) ([]domain.Transaction, error) {
	return s.transactions.GetAllTransactions(ctx)
}

func (s *Service) UpdateTransaction(ctx context.Context, transaction *domain.Transaction) error {
	if err := transaction.Validate(); err != nil {
		return err
	}
	return s.transactions.UpdateTransaction(ctx, transaction)
}

func (s *Service) DeleteTransaction(ctx context.Context, id uint) error {
	return s.transactions.DeleteTransaction(ctx, id)
}
