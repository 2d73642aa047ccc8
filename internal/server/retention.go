package server

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pairlane/waypoint/internal/store"
)

// Pruner periodically deletes updates older than the retention window.
type Pruner struct {
	store     store.Store
	retention time.Duration
	interval  time.Duration
	logger    *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewPruner creates a pruner that removes updates emitted more than
// retention ago, checking every interval.
func NewPruner(s store.Store, retention, interval time.Duration, logger *slog.Logger) *Pruner {
	return &Pruner{
		store:     s,
		retention: retention,
		interval:  interval,
		logger:    logger,
	}
}

// Start begins the prune loop. The first prune runs immediately.
func (p *Pruner) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		p.run(ctx)
	}()
}

// Stop cancels the loop and waits for a prune in progress to finish.
func (p *Pruner) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

func (p *Pruner) run(ctx context.Context) {
	p.pruneOnce(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.pruneOnce(ctx)
		}
	}
}

func (p *Pruner) pruneOnce(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-p.retention)
	n, err := p.store.PruneUpdates(ctx, cutoff)
	if err != nil {
		p.logger.Error("prune failed", "err", err)
		return
	}
	if n > 0 {
		p.logger.Info("pruned old updates", "removed", n, "cutoff", cutoff)
	}
}
