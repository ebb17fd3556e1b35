package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"CoinOracle/internal/config"
	"CoinOracle/internal/engine"
	"CoinOracle/internal/marketdata"
	"CoinOracle/internal/notifier"
	"CoinOracle/internal/scheduler"
	"CoinOracle/internal/server"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] CoinOracle starting...")

	// Load config
	cfgPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("[FATAL] load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("[FATAL] config validation: %v", err)
	}

	// Init fetcher
	var fetcher marketdata.Fetcher
	if cfg.DataSource.BaseURL != "" {
		fetcher = marketdata.NewProxyFetcher(cfg.DataSource.BaseURL, cfg.DataSource.APIKey, cfg.Proxy)
	} else {
		fetcher = marketdata.NewCoinGeckoFetcher(cfg.DataSource.APIKey, cfg.Proxy)
	}
	log.Printf("[INFO] data source: %s", fetcher.Name())

	// Init chart cache
	var cache marketdata.ChartCache
	if cfg.Cache.SQLitePath != "" {
		sc, err := marketdata.NewSQLiteCache(cfg.Cache.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite cache failed, using noop: %v", err)
			cache = marketdata.NewNoopCache()
		} else {
			cache = sc
			defer sc.Close()
		}
	} else {
		cache = marketdata.NewNoopCache()
	}
	cached := marketdata.NewCachingFetcher(fetcher, cache, time.Duration(cfg.Cache.TTLMinutes)*time.Minute)

	eng := engine.New(cached, cfg.DataSource.Days)

	// Context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Watchlist scheduler and Telegram polling
	if cfg.WatchEnabled() {
		tn := notifier.NewTelegramNotifier(cfg.Telegram.BotToken, cfg.Telegram.ChatID, cfg.Proxy)
		sched := scheduler.NewScheduler(ctx, eng, tn, cfg.Watch.Coins)
		if err := sched.Register(cfg.Watch.Cron); err != nil {
			log.Fatalf("[FATAL] register cron tasks: %v", err)
		}
		sched.Start()
		defer sched.Stop()

		go tn.StartPolling(ctx, sched.HandleCommand)
		log.Println("[INFO] Telegram polling started")

		if os.Getenv("RUN_ON_START") == "true" {
			log.Println("[INFO] RUN_ON_START enabled, executing watchlist sweep now")
			go sched.RunWatchNow()
		}
	} else {
		log.Println("[INFO] watchlist disabled (no coins or no Telegram token)")
	}

	// HTTP API
	app := server.New(eng)
	go func() {
		if err := app.Listen(":" + cfg.Server.Port); err != nil {
			log.Fatalf("[FATAL] start server: %v", err)
		}
	}()
	log.Printf("[INFO] CoinOracle API listening on port %s. Press Ctrl+C to stop.", cfg.Server.Port)

	// Wait for shutdown signal
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("[ERROR] server shutdown: %v", err)
	}
	log.Println("[INFO] CoinOracle stopped")
}
