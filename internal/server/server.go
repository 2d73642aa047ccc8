package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pairlane/waypoint/internal/events"
	"github.com/pairlane/waypoint/internal/gate"
	"github.com/pairlane/waypoint/internal/model"
	"github.com/pairlane/waypoint/internal/store"
)

// Server exposes the gate and the update history over HTTP. It is also the
// gate's sink: every emitted update flows through Publish into the store and
// onto the event bus.
type Server struct {
	store     store.Store
	publisher events.Publisher
	gate      *gate.Gate
	logger    *slog.Logger
}

// NewServer returns a Server backed by the given store and publisher. The
// gate is attached separately because it needs the server as its sink.
func NewServer(s store.Store, p events.Publisher, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		store:     s,
		publisher: p,
		logger:    logger,
	}
}

// AttachGate wires the gate the trigger endpoints drive. Must be called
// before the handler serves requests.
func (s *Server) AttachGate(g *gate.Gate) {
	s.gate = g
}

// Publish implements gate.Sink. The update is persisted and then fanned out
// to the event bus. Bus publish failures are logged, not surfaced; a store
// failure is returned so the caller can log it, but the update is still
// considered emitted.
func (s *Server) Publish(ctx context.Context, update *model.LocationUpdate) error {
	if err := model.ValidateUpdate(update); err != nil {
		return err
	}

	var errs []error
	if err := s.store.RecordUpdate(ctx, update); err != nil {
		s.logger.Warn("failed to record update", "update_id", update.ID, "error", err)
		errs = append(errs, fmt.Errorf("record update: %w", err))
	}
	if err := s.publisher.Publish(ctx, events.TopicLocationUpdated, events.LocationUpdated{Update: update}); err != nil {
		s.logger.Warn("failed to publish update", "update_id", update.ID, "error", err)
		errs = append(errs, fmt.Errorf("publish update: %w", err))
	}
	return errors.Join(errs...)
}

// publishSkip emits a waypoint.location.skipped event. Best-effort.
func (s *Server) publishSkip(ctx context.Context, trigger model.Trigger, reason string) {
	if err := s.publisher.Publish(ctx, events.TopicLocationSkipped, events.LocationSkipped{
		Trigger: trigger,
		Reason:  reason,
	}); err != nil {
		s.logger.Warn("failed to publish skip", "trigger", trigger, "reason", reason, "error", err)
	}
}
