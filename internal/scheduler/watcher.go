package scheduler

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pagewatch/internal/domain"
)

// CycleRunner is what the watcher drives once per tick.
type CycleRunner interface {
	RunCheck(ctx context.Context) []domain.CheckResult
}

// Watcher runs check cycles on a fixed interval. Cycles execute inline in
// the loop, one at a time: this is what guarantees the snapshot store never
// sees two overlapping cycles.
type Watcher struct {
	Logger   *zap.Logger
	Runner   CycleRunner
	Interval time.Duration
}

func NewWatcher(logger *zap.Logger, runner CycleRunner, interval time.Duration) *Watcher {
	if interval < 0 {
		interval = 0
	}
	return &Watcher{Logger: logger, Runner: runner, Interval: interval}
}

// Run starts the loop. It does an immediate pass, then runs each tick.
// Stops when ctx is cancelled. Interval 0 disables the watcher.
func (w *Watcher) Run(ctx context.Context) {
	if w.Interval == 0 {
		w.Logger.Info("watcher_disabled")
		return
	}
	t := time.NewTicker(w.Interval)
	defer t.Stop()

	w.runOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.Logger.Info("watcher_stopped")
			return
		case <-t.C:
			w.runOnce(ctx)
		}
	}
}

func (w *Watcher) runOnce(ctx context.Context) {
	start := time.Now()
	results := w.Runner.RunCheck(ctx)

	var errs, changes int
	for _, r := range results {
		switch r.Status {
		case domain.StatusError:
			errs++
		case domain.StatusKeywordChange, domain.StatusChangedNoKeywords:
			changes++
		}
	}
	w.Logger.Info("cycle_done",
		zap.Int("targets", len(results)),
		zap.Int("changed", changes),
		zap.Int("errors", errs),
		zap.Duration("took", time.Since(start)),
	)
}
