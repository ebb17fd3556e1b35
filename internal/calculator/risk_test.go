package calculator

import (
	"math"
	"testing"
)

func TestRiskMetrics_MaxDrawdown(t *testing.T) {
	metrics, err := RiskMetrics([]float64{100, 120, 80, 90})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := (120.0 - 80.0) / 120.0 * 100
	if !almostEqual(metrics.MaxDrawdown, want, 1e-9) {
		t.Errorf("expected max drawdown %v, got %v", want, metrics.MaxDrawdown)
	}
}

func TestRiskMetrics_MonotoneRiseHasZeroDrawdown(t *testing.T) {
	metrics, err := RiskMetrics(rampSeries(100, 2, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics.MaxDrawdown != 0 {
		t.Errorf("expected zero drawdown, got %v", metrics.MaxDrawdown)
	}
}

func TestRiskMetrics_ConstantSeriesSharpe(t *testing.T) {
	// Zero returns throughout: the 0.01 stdev floor applies and Sharpe is 0.
	metrics, err := RiskMetrics(constantSeries(100, 14))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if metrics.SharpeRatio != 0 {
		t.Errorf("expected Sharpe 0, got %v", metrics.SharpeRatio)
	}
	if math.IsNaN(metrics.SharpeRatio) || math.IsInf(metrics.SharpeRatio, 0) {
		t.Errorf("Sharpe must be finite, got %v", metrics.SharpeRatio)
	}
	if metrics.Volatility != 0 {
		t.Errorf("expected volatility 0, got %v", metrics.Volatility)
	}
}

func TestRiskMetrics_VolatilityConsistentWithIndicators(t *testing.T) {
	prices := []float64{100, 103, 99, 105, 101, 108, 104, 110, 106, 112, 109, 115, 111, 118, 114, 120}
	ind, err := Indicators(prices)
	if err != nil {
		t.Fatalf("indicators: %v", err)
	}
	metrics, err := RiskMetrics(prices)
	if err != nil {
		t.Fatalf("risk metrics: %v", err)
	}
	if !almostEqual(metrics.Volatility, ind.Volatility*100, 1e-9) {
		t.Errorf("risk volatility %v must equal indicator volatility x100 (%v)",
			metrics.Volatility, ind.Volatility*100)
	}
}

func TestRiskMetrics_SharpeSign(t *testing.T) {
	up, err := RiskMetrics(rampSeries(100, 1, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if up.SharpeRatio <= 0 {
		t.Errorf("expected positive Sharpe for rising series, got %v", up.SharpeRatio)
	}
	down, err := RiskMetrics(rampSeries(100, -1, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if down.SharpeRatio >= 0 {
		t.Errorf("expected negative Sharpe for falling series, got %v", down.SharpeRatio)
	}
}

func TestRiskMetrics_NotEnoughData(t *testing.T) {
	if _, err := RiskMetrics([]float64{100}); err == nil {
		t.Fatal("expected error for single-point series")
	}
}
