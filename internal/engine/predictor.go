package engine

import (
	"math"

	"CoinOracle/internal/model"
)

// Weighted linear combination of the indicator signals into a fractional
// price change.
func predictedChange(ind model.Indicators) float64 {
	trendFactor := ind.TrendStrength * 0.6
	momentumFactor := ind.Momentum / 100 * 0.3
	// The volatility contribution caps at +10% and never pushes the
	// prediction down.
	volatilityFactor := math.Min(ind.Volatility*0.1, 0.1)
	return trendFactor + momentumFactor + volatilityFactor
}

// predictPrice applies the change with no bound: a change of -1 or below
// yields a zero or negative price and is returned as-is.
func predictPrice(currentPrice, change float64) float64 {
	return currentPrice * (1 + change)
}
