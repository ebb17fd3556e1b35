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

// ProxyFetcher implements Fetcher against a self-hosted chart proxy, for
// deployments that cannot reach CoinGecko directly or mirror its data.
type ProxyFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewProxyFetcher creates a chart-proxy fetcher with optional proxy support.
func NewProxyFetcher(baseURL, apiKey, proxyURL string) *ProxyFetcher {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &ProxyFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
	}
}

func (f *ProxyFetcher) Name() string { return "chart-proxy" }

// chartRow is the expected JSON shape from the proxy API.
type chartRow struct {
	Timestamp int64   `json:"timestamp"` // unix milliseconds
	Price     float64 `json:"price"`
}

func (f *ProxyFetcher) FetchMarketChart(ctx context.Context, coinID string, days int) (model.PriceSeries, error) {
	endpoint := fmt.Sprintf("%s/api/v1/market_chart?coin=%s&days=%d",
		f.BaseURL, url.QueryEscape(coinID), days)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return model.PriceSeries{}, &FetchError{Provider: f.Name(), CoinID: coinID, Err: err}
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}

	resp, err := f.Client.Do(req)
	if err != nil {
		return model.PriceSeries{}, &FetchError{Provider: f.Name(), CoinID: coinID, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.PriceSeries{}, &FetchError{Provider: f.Name(), CoinID: coinID, Err: fmt.Errorf("read body: %w", err)}
	}
	if resp.StatusCode != http.StatusOK {
		return model.PriceSeries{}, &FetchError{Provider: f.Name(), CoinID: coinID, Err: fmt.Errorf("status %d: %s", resp.StatusCode, string(body))}
	}

	var rows []chartRow
	if err := json.Unmarshal(body, &rows); err != nil {
		return model.PriceSeries{}, &FetchError{Provider: f.Name(), CoinID: coinID, Err: fmt.Errorf("decode: %w", err)}
	}
	if len(rows) == 0 {
		return model.PriceSeries{}, &FetchError{Provider: f.Name(), CoinID: coinID, Err: fmt.Errorf("provider returned empty price series")}
	}

	points := make([]model.PricePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, model.PricePoint{
			Timestamp: time.UnixMilli(row.Timestamp),
			Price:     row.Price,
		})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })

	return model.PriceSeries{CoinID: coinID, Points: points, FetchedAt: time.Now()}, nil
}
