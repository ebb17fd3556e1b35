package engine

import (
	"math"
	"testing"

	"CoinOracle/internal/model"
)

func TestPredictedChange_Combination(t *testing.T) {
	ind := model.Indicators{TrendStrength: 0.5, Momentum: 10, Volatility: 0.5}
	// 0.5*0.6 + (10/100)*0.3 + min(0.5*0.1, 0.1) = 0.3 + 0.03 + 0.05
	want := 0.38
	if got := predictedChange(ind); math.Abs(got-want) > 1e-12 {
		t.Errorf("expected change %v, got %v", want, got)
	}
}

func TestPredictedChange_VolatilityClamp(t *testing.T) {
	low := predictedChange(model.Indicators{Volatility: 0.5})
	high := predictedChange(model.Indicators{Volatility: 50})
	if math.Abs(low-0.05) > 1e-12 {
		t.Errorf("expected 0.05 below the clamp, got %v", low)
	}
	if math.Abs(high-0.1) > 1e-12 {
		t.Errorf("expected clamp at 0.1, got %v", high)
	}
}

func TestPredictedChange_VolatilityNeverNegative(t *testing.T) {
	// Volatility only ever pushes the prediction up.
	ind := model.Indicators{TrendStrength: -1, Momentum: -50, Volatility: 3}
	withVol := predictedChange(ind)
	ind.Volatility = 0
	withoutVol := predictedChange(ind)
	if withVol < withoutVol {
		t.Errorf("volatility lowered the change: %v < %v", withVol, withoutVol)
	}
}

func TestPredictPrice_Unbounded(t *testing.T) {
	if got := predictPrice(100, 0.1); math.Abs(got-110) > 1e-9 {
		t.Errorf("expected 110, got %v", got)
	}
	// A change at or below -1 yields a zero or negative price; that is the
	// contract, not a bug to patch.
	if got := predictPrice(100, -1); got != 0 {
		t.Errorf("expected 0, got %v", got)
	}
	if got := predictPrice(100, -1.2); got >= 0 {
		t.Errorf("expected negative price, got %v", got)
	}
}
