package model

import "time"

// Recommendation is the discrete trading advice attached to a prediction.
type Recommendation string

const (
	RecommendBuy  Recommendation = "BUY"
	RecommendSell Recommendation = "SELL"
	RecommendHold Recommendation = "HOLD"
)

// RiskMetrics holds the risk profile computed from the full price series.
type RiskMetrics struct {
	Volatility  float64 `json:"volatility"`  // annualized, percent
	MaxDrawdown float64 `json:"maxDrawdown"` // peak-to-trough, percent
	SharpeRatio float64 `json:"sharpeRatio"` // annualized
}

// Prediction is the result record of one predict call. Constructed fresh on
// every call and never mutated afterwards.
type Prediction struct {
	ID              string         `json:"id"`
	Name            string         `json:"name"`
	Symbol          string         `json:"symbol"`
	CurrentPrice    float64        `json:"currentPrice"`
	PredictedPrice  float64        `json:"predictedPrice"`
	ConfidenceScore float64        `json:"confidenceScore"`
	Recommendation  Recommendation `json:"recommendation"`
	NewsSentiment   float64        `json:"newsSentiment"`
	TechnicalScore  float64        `json:"technicalScore"`
	RiskMetrics     RiskMetrics    `json:"riskMetrics"`
	GeneratedAt     time.Time      `json:"generatedAt"`
}
