package store

import (
	"context"
	"time"

	"github.com/pairlane/waypoint/internal/model"
)

// Store defines the persistence interface for the update history.
type Store interface {
	// RecordUpdate persists an emitted location update.
	RecordUpdate(ctx context.Context, update *model.LocationUpdate) error

	// LatestUpdate returns the most recently emitted update, or nil when
	// the history is empty.
	LatestUpdate(ctx context.Context) (*model.LocationUpdate, error)

	// ListUpdates returns matching updates (newest first) and the total
	// count before limit/offset are applied.
	ListUpdates(ctx context.Context, filter model.UpdateFilter) ([]*model.LocationUpdate, int, error)

	// PruneUpdates deletes updates emitted before the cutoff and returns
	// how many rows were removed.
	PruneUpdates(ctx context.Context, before time.Time) (int64, error)

	// Lifecycle
	Close() error
}
