package model

import "time"

// PricePoint is a single row of a provider market chart.
type PricePoint struct {
	Timestamp time.Time
	Price     float64
}

// PriceSeries holds chronological price history (oldest first) for one coin.
// It lives for the duration of a single prediction call and is never persisted
// beyond the transport-level chart cache.
type PriceSeries struct {
	CoinID    string
	Points    []PricePoint
	FetchedAt time.Time
}

// Prices returns the price column, oldest first.
func (s PriceSeries) Prices() []float64 {
	prices := make([]float64, len(s.Points))
	for i, p := range s.Points {
		prices[i] = p.Price
	}
	return prices
}

// Len returns the number of points in the series.
func (s PriceSeries) Len() int { return len(s.Points) }
