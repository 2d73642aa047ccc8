package export

import (
	"bytes"
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/pairlane/waypoint/internal/store"
)

// Destination receives the JSONL history snapshot produced by an export run.
type Destination interface {
	Write(ctx context.Context, snapshot []byte) error
}

// Scheduler periodically snapshots the update history and pushes it to every
// configured destination. Destinations fail independently; one broken target
// does not block the others.
type Scheduler struct {
	store        store.Store
	destinations []Destination
	interval     time.Duration
	logger       *slog.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewScheduler(s store.Store, destinations []Destination, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		store:        s,
		destinations: destinations,
		interval:     interval,
		logger:       logger,
	}
}

// Start runs one export immediately, then one per interval until Stop.
func (s *Scheduler) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.run(ctx)
	}()
}

// Stop cancels the schedule and waits for an in-progress export to finish.
func (s *Scheduler) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *Scheduler) run(ctx context.Context) {
	s.exportOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.exportOnce(ctx)
		}
	}
}

func (s *Scheduler) exportOnce(ctx context.Context) {
	var buf bytes.Buffer
	if err := ExportJSONL(ctx, s.store, &buf); err != nil {
		s.logger.Error("export: building history snapshot failed", "error", err)
		return
	}
	snapshot := buf.Bytes()

	for i, dest := range s.destinations {
		if err := dest.Write(ctx, snapshot); err != nil {
			s.logger.Error("export: destination write failed", "destination", i, "error", err)
		}
	}

	s.logger.Info("export: history snapshot written",
		"destinations", len(s.destinations), "bytes", len(snapshot))
}
