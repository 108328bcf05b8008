package cleanup

import (
	"context"
	"log/slog"
	"time"
)

// IdleSweeper is the part of the session manager the worker drives.
type IdleSweeper interface {
	CleanupIdleSessions(maxIdle time.Duration) int
}

type Worker struct {
	Sessions IdleSweeper
	MaxIdle  time.Duration
	Interval time.Duration
}

func NewWorker(sessions IdleSweeper, maxIdle, interval time.Duration) *Worker {
	return &Worker{Sessions: sessions, MaxIdle: maxIdle, Interval: interval}
}

// Start runs one sweep right away and then one per Interval until ctx is done.
// The returned channel is closed once the worker has stopped.
func (w *Worker) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})

	go func() {
		defer close(done)

		w.runCleanup()

		ticker := time.NewTicker(w.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				slog.Info("[CLEANUP] Background worker stopped")
				return
			case <-ticker.C:
				w.runCleanup()
			}
		}
	}()

	slog.Info("[CLEANUP] Background worker started", "interval", w.Interval.String(), "max_idle", w.MaxIdle.String())
	return done
}

func (w *Worker) runCleanup() {
	slog.Debug("[CLEANUP] Starting scheduled cleanup task...")

	if removed := w.Sessions.CleanupIdleSessions(w.MaxIdle); removed > 0 {
		slog.Info("[CLEANUP] Removed idle sessions", "count", removed)
	}
}
