package application

import (
	"context"
	"fmt"
	"time"

	"github.com/wyfcoding/portfoliodata/internal/portfoliodata/domain"
)

// PriceService resolves the applicable price of an asset at a point in
// time. It is composed purely from storage-contract reads, so it works
// unmodified against any backend adapter.
type PriceService struct {
	assets domain.AssetRepository
	market domain.MarketDataRepository
}

// NewPriceService creates a price resolution service.
func NewPriceService(assets domain.AssetRepository, market domain.MarketDataRepository) *PriceService {
	return &PriceService{assets: assets, market: market}
}

// LatestQuoteBefore resolves the applicable quote for the named asset at
// or before the cutoff, together with the currency of the ticker that
// produced it.
func (s *PriceService) LatestQuoteBefore(ctx context.Context, assetName string, cutoff time.Time) (*domain.Quote, domain.Currency, error) {
	assetID, ok := s.assets.FindAssetID(ctx, &domain.Asset{Name: assetName})
	if !ok {
		return nil, "", fmt.Errorf("%w: asset %q", domain.ErrNotFound, assetName)
	}
	return s.LatestQuoteBeforeByID(ctx, assetID, cutoff)
}

// LatestQuoteBeforeByID resolves the applicable quote for an asset id at
// or before the cutoff. Among all quotes of all tickers of the asset with
// time <= cutoff, the one with the latest time wins; when several tickers
// report a quote at that same time, the highest ticker priority wins.
//
// The reads are not wrapped in a backend transaction, so under concurrent
// writes to the same asset's tickers or quotes the result may reflect a
// partially updated state.
func (s *PriceService) LatestQuoteBeforeByID(ctx context.Context, assetID uint, cutoff time.Time) (*domain.Quote, domain.Currency, error) {
	tickers, err := s.market.GetTickersForAsset(ctx, assetID)
	if err != nil {
		return nil, "", err
	}

	var (
		best         *domain.Quote
		bestPriority int32
		bestCurrency domain.Currency
	)
	for i := range tickers {
		ticker := &tickers[i]
		quotes, err := s.market.GetQuotesForTicker(ctx, ticker.ID)
		if err != nil {
			return nil, "", err
		}
		// Quotes arrive in ascending time order; walk backwards to the
		// latest one at or before the cutoff.
		for j := len(quotes) - 1; j >= 0; j-- {
			q := quotes[j]
			if q.Time.After(cutoff) {
				continue
			}
			switch {
			case best == nil,
				q.Time.After(best.Time),
				q.Time.Equal(best.Time) && ticker.Priority > bestPriority:
				quote := q
				best = &quote
				bestPriority = ticker.Priority
				bestCurrency = ticker.Currency
			}
			break
		}
	}

	if best == nil {
		return nil, "", fmt.Errorf("%w: no quote for asset %d at or before %s",
			domain.ErrNotFound, assetID, cutoff.Format(time.RFC3339))
	}
	return best, bestCurrency, nil
}
