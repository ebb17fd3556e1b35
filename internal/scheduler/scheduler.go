package scheduler

import (
	"context"
	"fmt"
	"log"
	"strings"

	"CoinOracle/internal/engine"
	"CoinOracle/internal/model"
	"CoinOracle/internal/notifier"

	"github.com/robfig/cron/v3"
)

// Scheduler runs the watchlist sweep on a cron schedule and answers
// Telegram commands.
type Scheduler struct {
	Cron     *cron.Cron
	Engine   *engine.Engine
	Notifier *notifier.TelegramNotifier
	Coins    []string
	Ctx      context.Context
}

// NewScheduler creates a new Scheduler.
func NewScheduler(ctx context.Context, eng *engine.Engine, tn *notifier.TelegramNotifier, coins []string) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		Engine:   eng,
		Notifier: tn,
		Coins:    coins,
		Ctx:      ctx,
	}
}

// Register registers the watchlist task.
func (s *Scheduler) Register(watchCron string) error {
	if _, err := s.Cron.AddFunc(watchCron, s.watchTask); err != nil {
		return fmt.Errorf("register watch task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	log.Println("[INFO] scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	log.Println("[INFO] scheduler stopped")
}

// RunWatchNow executes the watchlist sweep immediately (for manual trigger / RUN_ON_START).
func (s *Scheduler) RunWatchNow() {
	s.watchTask()
}

func (s *Scheduler) watchTask() {
	log.Printf("[INFO] running watchlist sweep over %d coins", len(s.Coins))
	for _, coinID := range s.Coins {
		pred, err := s.Engine.Predict(s.Ctx, coinID, 0, 0)
		if err != nil {
			log.Printf("[ERROR] watch predict %s: %v", coinID, err)
			s.trySend(fmt.Sprintf("❌ Watchlist check failed for <b>%s</b>: %v", coinID, err))
			continue
		}
		log.Printf("[INFO] %s: %s (confidence %.1f)", coinID, pred.Recommendation, pred.ConfidenceScore)

		// Only non-HOLD outcomes are worth an alert.
		if pred.Recommendation == model.RecommendHold {
			continue
		}
		s.trySend(notifier.FormatWatchAlert(pred))
	}
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(ctx context.Context, command string) string {
	switch {
	case strings.HasPrefix(command, "/predict"):
		coinID := strings.TrimSpace(strings.TrimPrefix(command, "/predict"))
		if coinID == "" {
			return "Usage: /predict &lt;coin-id&gt;, e.g. /predict bitcoin"
		}
		pred, err := s.Engine.Predict(ctx, coinID, 0, 0)
		if err != nil {
			return fmt.Sprintf("❌ Prediction for <b>%s</b> failed: %v", coinID, err)
		}
		return notifier.FormatPrediction(pred)
	case command == "/watch":
		go s.watchTask()
		return fmt.Sprintf("Running watchlist sweep over %d coins...", len(s.Coins))
	case command == "/list":
		if len(s.Coins) == 0 {
			return "Watchlist is empty."
		}
		return "Watchlist:\n• " + strings.Join(s.Coins, "\n• ")
	default:
		return "Available commands:\n• /predict &lt;coin-id&gt;\n• /watch\n• /list"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.Notifier.SendWithRetry(s.Ctx, text, 3); err != nil {
		log.Printf("[ERROR] send notification: %v", err)
	}
}
