package workers

import (
	"context"
	"time"

	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/service"
)

// SweepWorker periodically runs the auto-archive sweep in-process. It is
// an alternative to the external cron endpoint for deployments without a
// scheduler.
type SweepWorker struct {
	reminders service.ReminderService
	interval  time.Duration
	logger    *logger.Logger
}

// NewSweepWorker constructs a [SweepWorker] sweeping every interval.
// A non-positive interval defaults to one hour.
func NewSweepWorker(reminders service.ReminderService, interval time.Duration, logger *logger.Logger) *SweepWorker {
	if interval <= 0 {
		interval = time.Hour
	}

	return &SweepWorker{reminders: reminders, interval: interval, logger: logger}
}

// Run implements [Worker]. It spawns the sweep loop and returns
// immediately.
func (w *SweepWorker) Run() {
	go w.loop(context.Background())
}

func (w *SweepWorker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.sweep(ctx)
		}
	}
}

func (w *SweepWorker) sweep(ctx context.Context) {
	result, err := w.reminders.RunAutoArchiveSweep(ctx)
	if err != nil {
		w.logger.Err(err).Str("func", "SweepWorker.sweep").Msg("auto-archive sweep failed")
		return
	}

	w.logger.Info().
		Str("func", "SweepWorker.sweep").
		Int("users", result.UsersProcessed).
		Int("archived", result.Archived).
		Msg("auto-archive sweep finished")
}
