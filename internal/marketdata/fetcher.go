package marketdata

import (
	"context"
	"fmt"
	"time"

	"CoinOracle/internal/model"
)

// Fetcher defines the interface for fetching historical market data.
type Fetcher interface {
	// FetchMarketChart returns the chronological daily price series for the
	// given coin over the last `days` days.
	FetchMarketChart(ctx context.Context, coinID string, days int) (model.PriceSeries, error)
	Name() string
}

// FetchError reports a market data provider failure: network error, bad
// status, malformed body, or an empty price series.
type FetchError struct {
	Provider string
	CoinID   string
	Err      error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: fetch market chart for %q: %v", e.Provider, e.CoinID, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Prices []float64
	Err    error
	Calls  int
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchMarketChart(_ context.Context, coinID string, _ int) (model.PriceSeries, error) {
	m.Calls++
	if m.Err != nil {
		return model.PriceSeries{}, m.Err
	}
	now := time.Now()
	points := make([]model.PricePoint, len(m.Prices))
	for i, p := range m.Prices {
		points[i] = model.PricePoint{
			Timestamp: now.AddDate(0, 0, -(len(m.Prices) - 1 - i)),
			Price:     p,
		}
	}
	return model.PriceSeries{CoinID: coinID, Points: points, FetchedAt: now}, nil
}
