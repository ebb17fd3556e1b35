package marketdata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"CoinOracle/internal/model"
)

// ChartCache stores provider chart responses so repeated predictions for the
// same coin do not hammer the provider. Only fresh entries are served; a
// failed fetch is never papered over with a stale one.
type ChartCache interface {
	Get(coinID string, days int, maxAge time.Duration) (model.PriceSeries, bool)
	Put(series model.PriceSeries, days int) error
	Close() error
}

// NoopCache is used when no cache path is configured.
type NoopCache struct{}

func NewNoopCache() *NoopCache { return &NoopCache{} }

func (n *NoopCache) Get(string, int, time.Duration) (model.PriceSeries, bool) {
	return model.PriceSeries{}, false
}
func (n *NoopCache) Put(model.PriceSeries, int) error { return nil }
func (n *NoopCache) Close() error                     { return nil }

// SQLiteCache persists chart responses to a SQLite database.
type SQLiteCache struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteCache opens (or creates) the SQLite database and runs migrations.
func NewSQLiteCache(dbPath string) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so API reads are not blocked by scheduler writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	c := &SQLiteCache{db: db}
	if err := c.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite chart cache opened: %s", dbPath)
	return c, nil
}

func (c *SQLiteCache) migrate() error {
	_, err := c.db.Exec(`CREATE TABLE IF NOT EXISTS chart_cache (
		coin_id    TEXT    NOT NULL,
		days       INTEGER NOT NULL,
		fetched_at INTEGER NOT NULL,
		points     TEXT    NOT NULL,
		PRIMARY KEY (coin_id, days)
	)`)
	return err
}

func (c *SQLiteCache) Get(coinID string, days int, maxAge time.Duration) (model.PriceSeries, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fetchedAt int64
	var raw string
	err := c.db.QueryRow(
		`SELECT fetched_at, points FROM chart_cache WHERE coin_id = ? AND days = ?`,
		coinID, days,
	).Scan(&fetchedAt, &raw)
	if err != nil {
		if err != sql.ErrNoRows {
			log.Printf("[WARN] chart cache read: %v", err)
		}
		return model.PriceSeries{}, false
	}

	fetched := time.Unix(fetchedAt, 0)
	if time.Since(fetched) > maxAge {
		return model.PriceSeries{}, false
	}

	var rows [][2]float64
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		log.Printf("[WARN] chart cache decode: %v", err)
		return model.PriceSeries{}, false
	}

	points := make([]model.PricePoint, 0, len(rows))
	for _, row := range rows {
		points = append(points, model.PricePoint{
			Timestamp: time.UnixMilli(int64(row[0])),
			Price:     row[1],
		})
	}
	return model.PriceSeries{CoinID: coinID, Points: points, FetchedAt: fetched}, true
}

func (c *SQLiteCache) Put(series model.PriceSeries, days int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	rows := make([][2]float64, 0, len(series.Points))
	for _, p := range series.Points {
		rows = append(rows, [2]float64{float64(p.Timestamp.UnixMilli()), p.Price})
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return fmt.Errorf("encode points: %w", err)
	}

	_, err = c.db.Exec(`INSERT INTO chart_cache (coin_id, days, fetched_at, points)
		VALUES (?,?,?,?)
		ON CONFLICT(coin_id, days) DO UPDATE SET fetched_at=excluded.fetched_at, points=excluded.points`,
		series.CoinID, days, series.FetchedAt.Unix(), string(raw),
	)
	return err
}

func (c *SQLiteCache) Close() error {
	log.Println("[INFO] closing sqlite chart cache")
	return c.db.Close()
}

// CachingFetcher decorates a Fetcher with a ChartCache. The cache is
// consulted before the provider only; provider failures propagate untouched.
type CachingFetcher struct {
	Next  Fetcher
	Cache ChartCache
	TTL   time.Duration
}

func NewCachingFetcher(next Fetcher, cache ChartCache, ttl time.Duration) *CachingFetcher {
	return &CachingFetcher{Next: next, Cache: cache, TTL: ttl}
}

func (f *CachingFetcher) Name() string { return f.Next.Name() }

func (f *CachingFetcher) FetchMarketChart(ctx context.Context, coinID string, days int) (model.PriceSeries, error) {
	if series, ok := f.Cache.Get(coinID, days, f.TTL); ok {
		return series, nil
	}

	series, err := f.Next.FetchMarketChart(ctx, coinID, days)
	if err != nil {
		return model.PriceSeries{}, err
	}

	if err := f.Cache.Put(series, days); err != nil {
		log.Printf("[WARN] chart cache write for %s: %v", coinID, err)
	}
	return series, nil
}
