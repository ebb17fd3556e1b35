package engine

import (
	"context"
	"errors"
	"math"
	"testing"

	"CoinOracle/internal/calculator"
	"CoinOracle/internal/marketdata"
	"CoinOracle/internal/model"
)

func risingPrices(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 100 + float64(i)
	}
	return prices
}

func fallingPrices(n int) []float64 {
	prices := make([]float64, n)
	for i := range prices {
		prices[i] = 200 - float64(i)
	}
	return prices
}

func TestPredict_RisingSeries(t *testing.T) {
	eng := New(&marketdata.MockFetcher{Prices: risingPrices(30)}, 30)

	pred, err := eng.Predict(context.Background(), "bitcoin", 1000, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.ID != "bitcoin" || pred.Name != "Bitcoin" || pred.Symbol != "BIT" {
		t.Errorf("unexpected identity: %s/%s/%s", pred.ID, pred.Name, pred.Symbol)
	}
	if pred.CurrentPrice != 129 {
		t.Errorf("expected current price 129, got %v", pred.CurrentPrice)
	}
	if pred.PredictedPrice <= pred.CurrentPrice {
		t.Errorf("expected upward prediction, got %v <= %v", pred.PredictedPrice, pred.CurrentPrice)
	}
	if pred.Recommendation != model.RecommendBuy {
		t.Errorf("expected BUY for a strictly rising series, got %s", pred.Recommendation)
	}
	if pred.ConfidenceScore < 0 || pred.ConfidenceScore > 100 {
		t.Errorf("confidence %v out of [0,100]", pred.ConfidenceScore)
	}
}

func TestPredict_FallingSeries(t *testing.T) {
	eng := New(&marketdata.MockFetcher{Prices: fallingPrices(30)}, 30)

	pred, err := eng.Predict(context.Background(), "bitcoin", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.Recommendation != model.RecommendSell {
		t.Errorf("expected SELL for a strictly falling series, got %s", pred.Recommendation)
	}
	if pred.PredictedPrice >= pred.CurrentPrice {
		t.Errorf("expected downward prediction, got %v >= %v", pred.PredictedPrice, pred.CurrentPrice)
	}
}

func TestPredict_Deterministic(t *testing.T) {
	prices := []float64{100, 103, 99, 105, 101, 108, 104, 110, 106, 112, 109, 115, 111, 118, 114, 120}
	eng := New(&marketdata.MockFetcher{Prices: prices}, 30)

	first, err := eng.Predict(context.Background(), "ethereum", 500, 14)
	if err != nil {
		t.Fatalf("first predict: %v", err)
	}
	second, err := eng.Predict(context.Background(), "ethereum", 500, 14)
	if err != nil {
		t.Fatalf("second predict: %v", err)
	}

	first.GeneratedAt = second.GeneratedAt
	if *first != *second {
		t.Errorf("same series produced different predictions:\n%+v\n%+v", first, second)
	}
}

func TestPredict_AmountAndPeriodIgnored(t *testing.T) {
	prices := risingPrices(30)
	eng := New(&marketdata.MockFetcher{Prices: prices}, 30)

	a, err := eng.Predict(context.Background(), "bitcoin", 100, 7)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	b, err := eng.Predict(context.Background(), "bitcoin", 1_000_000, 365)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	a.GeneratedAt = b.GeneratedAt
	if *a != *b {
		t.Error("amount/period changed the prediction")
	}
}

func TestPredict_FieldDerivation(t *testing.T) {
	prices := risingPrices(30)
	eng := New(&marketdata.MockFetcher{Prices: prices}, 30)

	pred, err := eng.Predict(context.Background(), "bitcoin", 0, 0)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	ind, err := calculator.Indicators(prices)
	if err != nil {
		t.Fatalf("indicators: %v", err)
	}
	if pred.NewsSentiment != ind.TrendStrength {
		t.Errorf("news sentiment must alias trend strength: %v != %v", pred.NewsSentiment, ind.TrendStrength)
	}
	wantTech := (ind.RSI/100 + ind.TrendStrength) / 2
	if math.Abs(pred.TechnicalScore-wantTech) > 1e-12 {
		t.Errorf("expected technical score %v, got %v", wantTech, pred.TechnicalScore)
	}

	risk, err := calculator.RiskMetrics(prices)
	if err != nil {
		t.Fatalf("risk metrics: %v", err)
	}
	if pred.RiskMetrics != risk {
		t.Errorf("expected risk metrics %+v, got %+v", risk, pred.RiskMetrics)
	}
}

func TestPredict_InsufficientData(t *testing.T) {
	eng := New(&marketdata.MockFetcher{Prices: risingPrices(13)}, 30)

	_, err := eng.Predict(context.Background(), "bitcoin", 0, 0)
	if !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestPredict_FetchErrorPassthrough(t *testing.T) {
	fetchErr := &marketdata.FetchError{Provider: "mock", CoinID: "bitcoin", Err: errors.New("connection refused")}
	eng := New(&marketdata.MockFetcher{Err: fetchErr}, 30)

	_, err := eng.Predict(context.Background(), "bitcoin", 0, 0)
	var got *marketdata.FetchError
	if !errors.As(err, &got) {
		t.Fatalf("expected *marketdata.FetchError, got %v", err)
	}
	if errors.Is(err, ErrInsufficientData) {
		t.Error("fetch error must stay distinct from insufficient data")
	}
}

func TestDisplayIdentity(t *testing.T) {
	tests := []struct {
		coinID string
		name   string
		symbol string
	}{
		{"bitcoin", "Bitcoin", "BIT"},
		{"ethereum", "Ethereum", "ETH"},
		{"dogecoin", "Dogecoin", "DOG"},
		{"sol", "Sol", "SOL"},
		{"xr", "Xr", "XR"},
	}
	for _, tt := range tests {
		if got := displayName(tt.coinID); got != tt.name {
			t.Errorf("displayName(%q): expected %q, got %q", tt.coinID, tt.name, got)
		}
		if got := displaySymbol(tt.coinID); got != tt.symbol {
			t.Errorf("displaySymbol(%q): expected %q, got %q", tt.coinID, tt.symbol, got)
		}
	}
}
