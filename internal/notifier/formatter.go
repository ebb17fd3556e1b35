package notifier

import (
	"fmt"
	"strings"

	"CoinOracle/internal/model"
)

// FormatPrediction formats a prediction into a Telegram HTML message.
func FormatPrediction(p *model.Prediction) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("%s <b>%s (%s)</b> | %s\n\n",
		recommendationEmoji(p.Recommendation), p.Name, p.Symbol,
		p.GeneratedAt.Format("2006-01-02 15:04")))

	b.WriteString(fmt.Sprintf("Current price: $%.2f\n", p.CurrentPrice))
	b.WriteString(fmt.Sprintf("Predicted price: $%.2f (%+.1f%%)\n",
		p.PredictedPrice, changePercent(p)))
	b.WriteString(fmt.Sprintf("Recommendation: <b>%s</b>\n", p.Recommendation))
	b.WriteString(fmt.Sprintf("Confidence: %.1f/100\n\n", p.ConfidenceScore))

	b.WriteString("<b>Risk profile:</b>\n")
	b.WriteString(fmt.Sprintf("  Volatility: %.1f%%\n", p.RiskMetrics.Volatility))
	b.WriteString(fmt.Sprintf("  Max drawdown: %.1f%%\n", p.RiskMetrics.MaxDrawdown))
	b.WriteString(fmt.Sprintf("  Sharpe ratio: %.2f\n", p.RiskMetrics.SharpeRatio))

	return b.String()
}

// FormatWatchAlert wraps a prediction report with an alert header for
// non-HOLD watchlist hits.
func FormatWatchAlert(p *model.Prediction) string {
	return fmt.Sprintf("🔔 <b>Watchlist alert</b>\n\n%s", FormatPrediction(p))
}

func recommendationEmoji(r model.Recommendation) string {
	switch r {
	case model.RecommendBuy:
		return "📈"
	case model.RecommendSell:
		return "📉"
	default:
		return "⏸"
	}
}

func changePercent(p *model.Prediction) float64 {
	if p.CurrentPrice == 0 {
		return 0
	}
	return (p.PredictedPrice - p.CurrentPrice) / p.CurrentPrice * 100
}
