package engine

import (
	"math"
	"testing"

	"CoinOracle/internal/model"
)

func TestConfidenceScore_KnownValue(t *testing.T) {
	ind := model.Indicators{RSI: 75, Momentum: 20, TrendStrength: 1}
	// (0.5*0.3 + 1*0.3 + 1*0.4) * 100
	want := 85.0
	if got := confidenceScore(ind); math.Abs(got-want) > 1e-9 {
		t.Errorf("expected confidence %v, got %v", want, got)
	}
}

func TestConfidenceScore_Range(t *testing.T) {
	cases := []model.Indicators{
		{RSI: 25, Momentum: -100, TrendStrength: -1},
		{RSI: 75, Momentum: 100, TrendStrength: 1},
		{RSI: 50, Momentum: 0, TrendStrength: 0},
		{RSI: 60, Momentum: 3.7, TrendStrength: 0.2},
	}
	for i, ind := range cases {
		got := confidenceScore(ind)
		if got < 0 || got > 100 {
			t.Errorf("case %d: confidence %v out of [0,100]", i, got)
		}
	}
}

func TestRecommend_LowConfidenceHolds(t *testing.T) {
	// Neutral indicators produce a confidence below the gate even with a
	// large predicted change.
	ind := model.Indicators{RSI: 50, Momentum: 0, TrendStrength: 0}
	if got := recommend(0.5, ind, confidenceScore(ind)); got != model.RecommendHold {
		t.Errorf("expected HOLD, got %s", got)
	}
}

func TestRecommend_GateUsesRawThreshold(t *testing.T) {
	// The gate compares the 0-100 confidence against 0.65, so even a
	// confidence of 1 (1% on the score's own scale) passes through to the
	// signal vote.
	ind := model.Indicators{RSI: 75, Momentum: 10, TrendStrength: 1}
	if got := recommend(0.2, ind, 1.0); got != model.RecommendBuy {
		t.Errorf("expected BUY past the gate at confidence 1.0, got %s", got)
	}
	if got := recommend(0.2, ind, 0.64); got != model.RecommendHold {
		t.Errorf("expected HOLD below the gate, got %s", got)
	}
}

func TestRecommend_BuyVote(t *testing.T) {
	// change > 0.05, momentum > 0, trend > 0.6: three buy signals.
	ind := model.Indicators{RSI: 40, Momentum: 10, TrendStrength: 0.7}
	if got := recommend(0.06, ind, confidenceScore(ind)); got != model.RecommendBuy {
		t.Errorf("expected BUY, got %s", got)
	}
}

func TestRecommend_TwoSignalsHold(t *testing.T) {
	// Only change and momentum vote buy: two signals is not enough.
	ind := model.Indicators{RSI: 40, Momentum: 10, TrendStrength: 0.2}
	if got := recommend(0.06, ind, confidenceScore(ind)); got != model.RecommendHold {
		t.Errorf("expected HOLD on two buy signals, got %s", got)
	}
}

func TestRecommend_SellVote(t *testing.T) {
	// change < -0.05, momentum < 0, trend < -0.6: three sell signals.
	ind := model.Indicators{RSI: 60, Momentum: -10, TrendStrength: -0.7}
	if got := recommend(-0.06, ind, confidenceScore(ind)); got != model.RecommendSell {
		t.Errorf("expected SELL, got %s", got)
	}
}

func TestRecommend_AllFourSellSignals(t *testing.T) {
	ind := model.Indicators{RSI: 72, Momentum: -25, TrendStrength: -0.8}
	if got := recommend(-0.2, ind, confidenceScore(ind)); got != model.RecommendSell {
		t.Errorf("expected SELL, got %s", got)
	}
}
