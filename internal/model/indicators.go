package model

// Indicators holds all technical indicators derived from the trailing
// 14-price window of a series.
type Indicators struct {
	SMA           float64 // mean of the last 14 prices
	Momentum      float64 // % change over the 14-point lookback
	Volatility    float64 // annualized RMS of daily returns, full series
	TrendStrength float64 // net up/down-day count over the window, in [-1,1]
	RSI           float64 // 50 + TrendStrength*25; a trend proxy, not a true RSI
}
