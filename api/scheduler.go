/*
scheduler.go - Calculation history retention

PURPOSE:
  Periodically deletes saved calculations older than the retention period
  so the history store does not grow without bound.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - Prunes once immediately on start, then on every tick
  - A zero or negative retention disables pruning entirely
  - Pruned counts are logged and exported as a metric

CONFIGURATION:
  - Retention: How old a record must be to go (default: 90 days)
  - Interval:  How often to check (default: 1 hour)

USAGE:
  pruner := NewHistoryPruner(store, 90*24*time.Hour, time.Hour, logger, metrics)
  pruner.Start()
  // ... later
  pruner.Stop()

SEE ALSO:
  - history/history.go: Store.DeleteBefore
*/
package api

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/warp/award-engine/history"
	"github.com/warp/award-engine/observability"
)

// HistoryPruner removes expired calculation records.
type HistoryPruner struct {
	Store     history.Store
	Retention time.Duration
	Interval  time.Duration
	Logger    *zap.Logger
	Metrics   *observability.Metrics

	now    func() time.Time
	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// NewHistoryPruner creates a pruner. Logger and metrics may be nil.
func NewHistoryPruner(store history.Store, retention, interval time.Duration, logger *zap.Logger, metrics *observability.Metrics) *HistoryPruner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if interval <= 0 {
		interval = time.Hour
	}
	return &HistoryPruner{
		Store:     store,
		Retention: retention,
		Interval:  interval,
		Logger:    logger,
		Metrics:   metrics,
		now:       time.Now,
	}
}

// Enabled reports whether the pruner will delete anything.
func (p *HistoryPruner) Enabled() bool {
	return p.Retention > 0
}

// Start begins the pruner. Calling Start on a running or disabled pruner
// does nothing.
func (p *HistoryPruner) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.Enabled() {
		p.Logger.Info("history pruning disabled")
		return
	}
	if p.ticker != nil {
		return
	}

	p.ticker = time.NewTicker(p.Interval)
	p.stop = make(chan struct{})
	p.wg.Add(1)
	go p.run()

	p.Logger.Info("history pruner started",
		zap.Duration("retention", p.Retention),
		zap.Duration("interval", p.Interval),
	)
}

// Stop stops the pruner and waits for an in-flight run to finish.
func (p *HistoryPruner) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ticker == nil {
		return
	}
	p.ticker.Stop()
	close(p.stop)
	p.wg.Wait()
	p.ticker = nil
	p.Logger.Info("history pruner stopped")
}

func (p *HistoryPruner) run() {
	defer p.wg.Done()

	// Run immediately on start
	p.RunNow(context.Background())

	for {
		select {
		case <-p.ticker.C:
			p.RunNow(context.Background())
		case <-p.stop:
			return
		}
	}
}

// RunNow prunes once and returns the number of records removed.
func (p *HistoryPruner) RunNow(ctx context.Context) (int, error) {
	if !p.Enabled() {
		return 0, nil
	}
	cutoff := p.now().Add(-p.Retention)
	n, err := p.Store.DeleteBefore(ctx, cutoff)
	if err != nil {
		p.Logger.Error("history pruning failed", zap.Time("cutoff", cutoff), zap.Error(err))
		return 0, err
	}
	p.Metrics.AddPruned(n)
	if n > 0 {
		p.Logger.Info("pruned calculation history", zap.Int("removed", n), zap.Time("cutoff", cutoff))
	}
	return n, nil
}

// NextRunTime estimates when the next prune will happen.
func (p *HistoryPruner) NextRunTime() time.Time {
	return p.now().Add(p.Interval)
}
