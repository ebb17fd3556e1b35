package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"CoinOracle/internal/calculator"
	"CoinOracle/internal/marketdata"
	"CoinOracle/internal/model"
)

// DefaultChartDays is the history window requested from the provider.
const DefaultChartDays = 30

// ErrInsufficientData is returned when the provider delivers fewer points
// than the indicator window needs.
var ErrInsufficientData = errors.New("insufficient historical data")

// Engine runs the prediction pipeline. It carries no mutable state; calls
// for different coins may run concurrently.
type Engine struct {
	fetcher marketdata.Fetcher
	days    int
}

// New creates an Engine. days <= 0 selects DefaultChartDays.
func New(fetcher marketdata.Fetcher, days int) *Engine {
	if days <= 0 {
		days = DefaultChartDays
	}
	return &Engine{fetcher: fetcher, days: days}
}

// Predict fetches the coin's price history and derives a prediction from it.
// amount and period are part of the public contract but do not influence the
// computation. Fails with a *marketdata.FetchError when the provider cannot
// be reached and with ErrInsufficientData when the series is too short.
func (e *Engine) Predict(ctx context.Context, coinID string, amount, period float64) (*model.Prediction, error) {
	_ = amount
	_ = period

	series, err := e.fetcher.FetchMarketChart(ctx, coinID, e.days)
	if err != nil {
		return nil, err
	}

	prices := series.Prices()
	if len(prices) < calculator.Window {
		return nil, fmt.Errorf("%w: got %d points, need %d", ErrInsufficientData, len(prices), calculator.Window)
	}
	currentPrice := prices[len(prices)-1]

	ind, err := calculator.Indicators(prices)
	if err != nil {
		return nil, fmt.Errorf("compute indicators: %w", err)
	}

	change := predictedChange(ind)
	confidence := confidenceScore(ind)

	risk, err := calculator.RiskMetrics(prices)
	if err != nil {
		return nil, fmt.Errorf("compute risk metrics: %w", err)
	}

	return &model.Prediction{
		ID:              coinID,
		Name:            displayName(coinID),
		Symbol:          displaySymbol(coinID),
		CurrentPrice:    currentPrice,
		PredictedPrice:  predictPrice(currentPrice, change),
		ConfidenceScore: confidence,
		Recommendation:  recommend(change, ind, confidence),
		NewsSentiment:   ind.TrendStrength,
		TechnicalScore:  (ind.RSI/100 + ind.TrendStrength) / 2,
		RiskMetrics:     risk,
		GeneratedAt:     time.Now(),
	}, nil
}

// displayName title-cases the coin identifier. A placeholder, not a
// reference-table lookup.
func displayName(coinID string) string {
	if coinID == "" {
		return ""
	}
	r := []rune(coinID)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}

// displaySymbol upper-cases the first three characters of the identifier.
func displaySymbol(coinID string) string {
	if len(coinID) > 3 {
		return strings.ToUpper(coinID[:3])
	}
	return strings.ToUpper(coinID)
}
