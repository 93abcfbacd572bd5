// Package memory provides a map-backed implementation of the storage
// contracts. It backs unit tests and embedded use where no database is
// available, and exercises the same transaction codec as the relational
// adapter.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/infrastructure/persistence"
)

// Store satisfies AssetRepository, MarketDataRepository and
// TransactionRepository entirely in memory.
type Store struct {
	mu sync.RWMutex

	assets       map[uint]domain.Asset
	tickers      map[uint]domain.Ticker
	quotes       map[uint]domain.Quote
	transactions map[uint]persistence.TransactionRecord
	rounding     map[domain.Currency]int32

	nextAssetID       uint
	nextTickerID      uint
	nextQuoteID       uint
	nextTransactionID uint
}

// NewStore returns an empty in-memory store.
func NewStore() *Store {
	return &Store{
		assets:       make(map[uint]domain.Asset),
		tickers:      make(map[uint]domain.Ticker),
		quotes:       make(map[uint]domain.Quote),
		transactions: make(map[uint]persistence.TransactionRecord),
		rounding:     make(map[domain.Currency]int32),
	}
}

// --- AssetRepository ---

func (s *Store) InsertAsset(_ context.Context, asset *domain.Asset) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextAssetID++
	stored := *asset
	stored.ID = s.nextAssetID
	s.assets[stored.ID] = stored
	return stored.ID, nil
}

func (s *Store) FindAssetID(_ context.Context, asset *domain.Asset) (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	match := func(a domain.Asset) bool { return a.Name == asset.Name }
	switch {
	case asset.ISIN != "":
		match = func(a domain.Asset) bool { return a.ISIN == asset.ISIN }
	case asset.WKN != "":
		match = func(a domain.Asset) bool { return a.WKN == asset.WKN }
	}
	for id, a := range s.assets {
		if match(a) {
			return id, true
		}
	}
	return 0, false
}

func (s *Store) GetAsset(_ context.Context, id uint) (*domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	asset, ok := s.assets[id]
	if !ok {
		return nil, fmt.Errorf("%w: asset %d", domain.ErrNotFound, id)
	}
	return &asset, nil
}

func (s *Store) GetAllAssets(_ context.Context) ([]domain.Asset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	assets := make([]domain.Asset, 0, len(s.assets))
	for _, a := range s.assets {
		assets = append(assets, a)
	}
	sort.Slice(assets, func(i, j int) bool { return assets[i].ID < assets[j].ID })
	return assets, nil
}

func (s *Store) UpdateAsset(_ context.Context, asset *domain.Asset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.assets[asset.ID]; asset.ID == 0 || !ok {
		return fmt.Errorf("%w: asset %d not yet stored", domain.ErrNotFound, asset.ID)
	}
	s.assets[asset.ID] = *asset
	return nil
}

func (s *Store) DeleteAsset(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.assets, id)
	return nil
}

// --- MarketDataRepository ---

func (s *Store) InsertTicker(_ context.Context, ticker *domain.Ticker) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertTickerLocked(ticker)
}

func (s *Store) insertTickerLocked(ticker *domain.Ticker) (uint, error) {
	for _, t := range s.tickers {
		if t.Name == ticker.Name {
			return 0, fmt.Errorf("%w: ticker %q already exists", domain.ErrInsertFailed, ticker.Name)
		}
	}
	s.nextTickerID++
	stored := *ticker
	stored.ID = s.nextTickerID
	s.tickers[stored.ID] = stored
	return stored.ID, nil
}

func (s *Store) GetTickerID(_ context.Context, name string) (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for id, t := range s.tickers {
		if t.Name == name {
			return id, true
		}
	}
	return 0, false
}

func (s *Store) InsertTickerIfNew(_ context.Context, ticker *domain.Ticker) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for id, t := range s.tickers {
		if t.Name == ticker.Name {
			return id, nil
		}
	}
	return s.insertTickerLocked(ticker)
}

func (s *Store) GetTicker(_ context.Context, id uint) (*domain.Ticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ticker, ok := s.tickers[id]
	if !ok {
		return nil, fmt.Errorf("%w: ticker %d", domain.ErrNotFound, id)
	}
	return &ticker, nil
}

func (s *Store) GetAllTickers(_ context.Context) ([]domain.Ticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterTickers(func(domain.Ticker) bool { return true }), nil
}

func (s *Store) GetTickersForSource(_ context.Context, source string) ([]domain.Ticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterTickers(func(t domain.Ticker) bool { return t.Source == source }), nil
}

func (s *Store) GetTickersForAsset(_ context.Context, assetID uint) ([]domain.Ticker, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.filterTickers(func(t domain.Ticker) bool { return t.AssetID == assetID }), nil
}

func (s *Store) filterTickers(keep func(domain.Ticker) bool) []domain.Ticker {
	tickers := make([]domain.Ticker, 0)
	for _, t := range s.tickers {
		if keep(t) {
			tickers = append(tickers, t)
		}
	}
	sort.Slice(tickers, func(i, j int) bool { return tickers[i].ID < tickers[j].ID })
	return tickers
}

func (s *Store) UpdateTicker(_ context.Context, ticker *domain.Ticker) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tickers[ticker.ID]; ticker.ID == 0 || !ok {
		return fmt.Errorf("%w: ticker %d not yet stored", domain.ErrNotFound, ticker.ID)
	}
	s.tickers[ticker.ID] = *ticker
	return nil
}

func (s *Store) DeleteTicker(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tickers, id)
	return nil
}

func (s *Store) InsertQuote(_ context.Context, quote *domain.Quote) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextQuoteID++
	stored := *quote
	stored.ID = s.nextQuoteID
	stored.Time = quote.Time.UTC()
	s.quotes[stored.ID] = stored
	return stored.ID, nil
}

func (s *Store) GetQuotesForTicker(_ context.Context, tickerID uint) ([]domain.Quote, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	quotes := make([]domain.Quote, 0)
	for _, q := range s.quotes {
		if q.TickerID == tickerID {
			quotes = append(quotes, q)
		}
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Time.Before(quotes[j].Time) })
	return quotes, nil
}

func (s *Store) UpdateQuote(_ context.Context, quote *domain.Quote) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.quotes[quote.ID]; quote.ID == 0 || !ok {
		return fmt.Errorf("%w: quote %d not yet stored", domain.ErrNotFound, quote.ID)
	}
	stored := *quote
	stored.Time = quote.Time.UTC()
	s.quotes[quote.ID] = stored
	return nil
}

func (s *Store) DeleteQuote(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.quotes, id)
	return nil
}

func (s *Store) RoundingDigits(_ context.Context, currency domain.Currency) int32 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if digits, ok := s.rounding[currency]; ok {
		return digits
	}
	return 2
}

func (s *Store) SetRoundingDigits(_ context.Context, currency domain.Currency, digits int32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if digits < 0 {
		return fmt.Errorf("%w: negative digit count %d", domain.ErrInsertFailed, digits)
	}
	s.rounding[currency] = digits
	return nil
}

// --- TransactionRepository ---

func (s *Store) InsertTransaction(_ context.Context, transaction *domain.Transaction) (uint, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextTransactionID++
	record := persistence.EncodeTransaction(transaction)
	record.ID = s.nextTransactionID
	s.transactions[record.ID] = *record
	return record.ID, nil
}

func (s *Store) GetTransaction(_ context.Context, id uint) (*domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.transactions[id]
	if !ok {
		return nil, fmt.Errorf("%w: transaction %d", domain.ErrNotFound, id)
	}
	return record.Decode()
}

func (s *Store) GetAllTransactions(_ context.Context) ([]domain.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]uint, 0, len(s.transactions))
	for id := range s.transactions {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	transactions := make([]domain.Transaction, 0, len(ids))
	for _, id := range ids {
		record := s.transactions[id]
		t, err := record.Decode()
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, *t)
	}
	return transactions, nil
}

func (s *Store) UpdateTransaction(_ context.Context, transaction *domain.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.transactions[transaction.ID]; transaction.ID == 0 || !ok {
		return fmt.Errorf("%w: transaction %d not yet stored", domain.ErrNotFound, transaction.ID)
	}
	s.transactions[transaction.ID] = *persistence.EncodeTransaction(transaction)
	return nil
}

func (s *Store) DeleteTransaction(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.transactions, id)
	return nil
}
