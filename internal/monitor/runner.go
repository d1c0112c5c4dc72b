// Package monitor drives the check cycle: fetch every registered page,
// extract its text, classify the transition against the stored snapshot, and
// record the outcome.
package monitor

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/pagewatch/internal/domain"
	"github.com/hamed0406/pagewatch/internal/eventlog"
	"github.com/hamed0406/pagewatch/internal/extract"
	"github.com/hamed0406/pagewatch/internal/fetch"
	"github.com/hamed0406/pagewatch/internal/notify"
	"github.com/hamed0406/pagewatch/internal/registry"
	"github.com/hamed0406/pagewatch/internal/snapshot"
)

// Runner orchestrates one cycle over all targets.
//
// Cycles against the same snapshot store must not overlap. Because this
// process has two trigger paths (the background watcher and the API's manual
// check), RunCheck serializes itself; deployments sharing one store across
// processes still need an external scheduler to keep cycles disjoint.
type Runner struct {
	runMu sync.Mutex

	Logger      *zap.Logger
	Registry    registry.Registry
	Store       snapshot.Store
	Fetcher     fetch.Fetcher
	Events      *eventlog.Log
	Notifier    notify.Notifier // optional, keyword-change alerts
	Concurrency int
}

func NewRunner(
	logger *zap.Logger,
	reg registry.Registry,
	store snapshot.Store,
	fetcher fetch.Fetcher,
	events *eventlog.Log,
	notifier notify.Notifier,
	concurrency int,
) *Runner {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Runner{
		Logger:      logger,
		Registry:    reg,
		Store:       store,
		Fetcher:     fetcher,
		Events:      events,
		Notifier:    notifier,
		Concurrency: concurrency,
	}
}

// RunCheck processes every registered target and returns one result per
// target, in registry order regardless of completion order. One target's
// failure never aborts the cycle.
func (r *Runner) RunCheck(ctx context.Context) []domain.CheckResult {
	r.runMu.Lock()
	defer r.runMu.Unlock()

	targets, err := r.Registry.Load(ctx)
	if err != nil {
		r.Logger.Warn("registry_load_error", zap.Error(err))
		return []domain.CheckResult{}
	}
	if len(targets) == 0 {
		return []domain.CheckResult{}
	}

	results := make([]domain.CheckResult, len(targets))
	sem := make(chan struct{}, r.Concurrency)
	var wg sync.WaitGroup

	for i, tgt := range targets {
		i, tgt := i, tgt
		sem <- struct{}{}
		wg.Add(1)
		go func() {
			defer func() { <-sem }()
			defer wg.Done()
			results[i] = r.checkOne(ctx, tgt)
		}()
	}
	wg.Wait()

	if n := r.Events.Warnings(); n > 0 {
		r.Logger.Warn("event_log_degraded", zap.Int("failed_appends", n))
	}
	return results
}

func (r *Runner) checkOne(ctx context.Context, tgt domain.Target) domain.CheckResult {
	now := time.Now().UTC()

	page, err := r.Fetcher.Fetch(ctx, tgt.URL)
	if err != nil {
		// Fetch failure short-circuits: no snapshot interaction at all.
		r.event(fmt.Sprintf("ERROR | %s | %s", tgt.URL, err))
		return domain.CheckResult{
			URL: tgt.URL, Status: domain.StatusError,
			Details: err.Error(), CheckedAt: now,
		}
	}

	text := extract.Text(page.Body)
	key := snapshot.Key(tgt.URL)

	prior, err := r.Store.Load(ctx, key)
	if err != nil {
		r.event(fmt.Sprintf("ERROR | %s | %s", tgt.URL, err))
		return domain.CheckResult{
			URL: tgt.URL, Status: domain.StatusError,
			Details: err.Error(), CheckedAt: now,
		}
	}

	d := Classify(text, prior, tgt.Keywords)

	if d.WriteSnapshot {
		if err := r.Store.Save(ctx, key, text); err != nil {
			// A state we failed to persist is not reported as durable; the
			// target degrades to an error for this cycle.
			r.event(fmt.Sprintf("ERROR | %s | %s", tgt.URL, err))
			return domain.CheckResult{
				URL: tgt.URL, Status: domain.StatusError,
				Details: err.Error(), CheckedAt: now,
			}
		}
	}

	switch d.Status {
	case domain.StatusInitialized:
		r.event(fmt.Sprintf("INIT | %s", tgt.URL))
	case domain.StatusNoChange:
		r.event(fmt.Sprintf("NO CHANGE | %s", tgt.URL))
	case domain.StatusKeywordChange:
		r.event(fmt.Sprintf("KEYWORD CHANGE | %s | keywords: [%s]",
			tgt.URL, strings.Join(d.Matched, ", ")))
		r.alert(ctx, tgt.URL, d.Matched)
	case domain.StatusChangedNoKeywords:
		r.event(fmt.Sprintf("CHANGE BUT NO KEYWORDS | %s", tgt.URL))
	}

	r.Logger.Debug("target_checked",
		zap.String("url", tgt.URL),
		zap.String("status", string(d.Status)),
		zap.Strings("matched_keywords", d.Matched),
	)

	return domain.CheckResult{
		URL:             tgt.URL,
		Status:          d.Status,
		MatchedKeywords: d.Matched,
		CheckedAt:       now,
	}
}

// event appends to the domain log. A broken sink degrades the cycle, it does
// not stop it.
func (r *Runner) event(message string) {
	if err := r.Events.Append(message); err != nil {
		r.Logger.Warn("event_append_error", zap.Error(err))
	}
}

func (r *Runner) alert(ctx context.Context, url string, matched []string) {
	if r.Notifier == nil {
		return
	}
	text := fmt.Sprintf("URL: %s\nKeywords: %s", url, strings.Join(matched, ", "))
	if err := r.Notifier.Send(ctx, "Keyword change detected", text); err != nil {
		r.Logger.Warn("notify_error", zap.String("url", url), zap.Error(err))
	}
}
