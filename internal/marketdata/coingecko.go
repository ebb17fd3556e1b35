package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"CoinOracle/internal/model"
)

const coinGeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoFetcher implements Fetcher using the CoinGecko public API.
type CoinGeckoFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewCoinGeckoFetcher creates a CoinGecko fetcher with optional demo API key
// and proxy support.
func NewCoinGeckoFetcher(apiKey, proxyURL string) *CoinGeckoFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &CoinGeckoFetcher{
		BaseURL: coinGeckoBaseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *CoinGeckoFetcher) Name() string { return "coingecko" }

// marketChart is the response structure of the CoinGecko market_chart
// endpoint. Rows are [unix-ms, value] pairs; only the price column is used.
type marketChart struct {
	Prices [][2]float64 `json:"prices"`
}

func (f *CoinGeckoFetcher) FetchMarketChart(ctx context.Context, coinID string, days int) (model.PriceSeries, error) {
	u := fmt.Sprintf("%s/coins/%s/market_chart?vs_currency=usd&days=%d&interval=daily",
		f.BaseURL, url.PathEscape(coinID), days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.PriceSeries{}, f.fetchErr(coinID, err)
	}
	req.Header.Set("Accept", "application/json")
	if f.APIKey != "" {
		req.Header.Set("x-cg-demo-api-key", f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, f.fetchErr(coinID, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, f.fetchErr(coinID, fmt.Errorf("read body: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, f.fetchErr(coinID, fmt.Errorf("status %d: %s", resp.StatusCode, string(body)))
	}

	var chart marketChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return model.PriceSeries{}, f.fetchErr(coinID, fmt.Errorf("decode: %w", err))
	}
	if len(chart.Prices) == 0 {
		return model.PriceSeries{}, f.fetchErr(coinID, fmt.Errorf("provider returned empty price series"))
	}

	points := make([]model.PricePoint, 0, len(chart.Prices))
	for _, row := range chart.Prices {
		points = append(points, model.PricePoint{
			Timestamp: time.UnixMilli(int64(row[0])),
			Price:     row[1],
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	return model.PriceSeries{CoinID: coinID, Points: points, FetchedAt: time.Now()}, nil
}

func (f *CoinGeckoFetcher) fetchErr(coinID string, err error) error {
	return &FetchError{Provider: f.Name(), CoinID: coinID, Err: err}
}
