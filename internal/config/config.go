package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	DataSource struct {
		BaseURL string `yaml:"base_url"` // empty selects CoinGecko
		APIKey  string `yaml:"api_key"`
		Days    int    `yaml:"days"`
	} `yaml:"data_source"`
	Cache struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables caching
		TTLMinutes int    `yaml:"ttl_minutes"`
	} `yaml:"cache"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Watch struct {
		Coins []string `yaml:"coins"`
		Cron  string   `yaml:"cron"`
	} `yaml:"watch"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Port = v
	}
	if v := os.Getenv("CHART_PROXY_URL"); v != "" {
		cfg.DataSource.BaseURL = v
	}
	if v := os.Getenv("MARKET_DATA_API_KEY"); v != "" {
		cfg.DataSource.APIKey = v
	}
	if v := os.Getenv("CHART_DAYS"); v != "" {
		if days, err := strconv.Atoi(v); err == nil {
			cfg.DataSource.Days = days
		}
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Cache.SQLitePath = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("WATCH_COINS"); v != "" {
		cfg.Watch.Coins = splitList(v)
	}
	if v := os.Getenv("WATCH_CRON"); v != "" {
		cfg.Watch.Cron = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}

	// Defaults
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.DataSource.Days == 0 {
		cfg.DataSource.Days = 30
	}
	if cfg.Cache.TTLMinutes == 0 {
		cfg.Cache.TTLMinutes = 10
	}
	if cfg.Watch.Cron == "" {
		cfg.Watch.Cron = "0 0 * * * *"
	}

	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.DataSource.Days < 14 {
		return fmt.Errorf("data_source.days must be at least 14, got %d", c.DataSource.Days)
	}
	if c.Cache.TTLMinutes < 0 {
		return fmt.Errorf("cache.ttl_minutes must not be negative")
	}
	if len(c.Watch.Coins) > 0 {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when watch.coins is set")
		}
		if c.Telegram.ChatID == "" {
			return fmt.Errorf("telegram.chat_id is required when watch.coins is set")
		}
	}
	return nil
}

// WatchEnabled reports whether the watchlist scheduler should run.
func (c *Config) WatchEnabled() bool {
	return len(c.Watch.Coins) > 0 && c.Telegram.BotToken != ""
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
