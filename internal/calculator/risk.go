package calculator

import (
	"errors"
	"math"

	"CoinOracle/internal/model"
)

// minSharpeStd replaces a zero return standard deviation so the Sharpe ratio
// never divides by zero.
const minSharpeStd = 0.01

// RiskMetrics computes volatility, max drawdown and Sharpe ratio from the
// full price series. Requires at least two prices.
func RiskMetrics(prices []float64) (model.RiskMetrics, error) {
	if len(prices) < 2 {
		return model.RiskMetrics{}, errors.New("not enough data for risk metrics")
	}

	returns := dailyReturns(prices)

	// Same RMS formula as the indicator volatility, expressed as a percentage.
	volatility := rmsVolatility(returns) * 100

	maxDrawdown := 0.0
	peak := prices[0]
	for _, price := range prices {
		if price > peak {
			peak = price
		}
		if dd := (peak - price) / peak; dd > maxDrawdown {
			maxDrawdown = dd
		}
	}

	meanReturn := mean(returns)
	stdReturn := populationStd(returns, meanReturn)
	if stdReturn == 0 {
		stdReturn = minSharpeStd
	}
	sharpe := meanReturn / stdReturn * math.Sqrt(TradingDaysPerYear)

	return model.RiskMetrics{
		Volatility:  volatility,
		MaxDrawdown: maxDrawdown * 100,
		SharpeRatio: sharpe,
	}, nil
}

// populationStd is the mean-subtracted standard deviation, unlike the RMS
// used for volatility.
func populationStd(values []float64, mean float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sumSq := 0.0
	for _, v := range values {
		d := v - mean
		sumSq += d * d
	}
	return math.Sqrt(sumSq / float64(len(values)))
}
