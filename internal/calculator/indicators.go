package calculator

import (
	"errors"
	"math"

	"CoinOracle/internal/model"
)

// Window is the trailing lookback used for SMA, momentum and trend strength.
const Window = 14

// TradingDaysPerYear annualizes daily-return statistics.
const TradingDaysPerYear = 252

// ErrNotEnoughData is returned when a series is shorter than Window.
var ErrNotEnoughData = errors.New("not enough data for indicator calculation")

// Indicators computes all technical indicators from a chronological price
// series. Requires at least Window prices. Prices are assumed nonzero; a zero
// price inside the series is the caller's problem.
func Indicators(prices []float64) (model.Indicators, error) {
	if len(prices) < Window {
		return model.Indicators{}, ErrNotEnoughData
	}

	sma := mean(prices[len(prices)-Window:])

	base := prices[len(prices)-Window]
	momentum := (prices[len(prices)-1] - base) / base * 100

	volatility := rmsVolatility(dailyReturns(prices))
	trend := trendStrength(prices)

	return model.Indicators{
		SMA:           sma,
		Momentum:      momentum,
		Volatility:    volatility,
		TrendStrength: trend,
		RSI:           50 + trend*25,
	}, nil
}

// trendStrength counts up-days minus down-days over the trailing window,
// normalized to [-1, 1]. A non-increasing day counts as down.
func trendStrength(prices []float64) float64 {
	steps := Window
	if len(prices)-1 < steps {
		steps = len(prices) - 1
	}
	net := 0
	for i := len(prices) - steps; i < len(prices); i++ {
		if prices[i] > prices[i-1] {
			net++
		} else {
			net--
		}
	}
	return float64(net) / float64(steps)
}

// dailyReturns computes consecutive percentage returns across the entire
// series, not just the trailing window.
func dailyReturns(prices []float64) []float64 {
	returns := make([]float64, 0, len(prices)-1)
	for i := 1; i < len(prices); i++ {
		returns = append(returns, (prices[i]-prices[i-1])/prices[i-1])
	}
	return returns
}

// rmsVolatility annualizes the zero-centered second moment of the returns.
// This is a root-mean-square, not a mean-subtracted standard deviation.
func rmsVolatility(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, r := range returns {
		sumSq += r * r
	}
	return math.Sqrt(sumSq/float64(len(returns))) * math.Sqrt(TradingDaysPerYear)
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
