// Package client provides a transport-agnostic interface for the waypoint
// service and an HTTP/JSON implementation that talks to the waypoint REST API.
package client

import (
	"context"
	"time"

	"github.com/pairlane/waypoint/internal/gate"
	"github.com/pairlane/waypoint/internal/model"
)

// WaypointClient is the interface that all waypoint CLI commands use to
// communicate with the server. It is implemented by HTTPClient (default)
// and can be backed by any transport.
type WaypointClient interface {
	// Triggers
	TriggerManual(ctx context.Context, requestedBy string) (*model.LocationUpdate, error)
	TriggerForeground(ctx context.Context) error
	TriggerStart(ctx context.Context) error

	// Gate
	GateStatus(ctx context.Context) (*gate.Snapshot, error)

	// History
	ListUpdates(ctx context.Context, req *ListUpdatesRequest) (*ListUpdatesResponse, error)
	LatestUpdate(ctx context.Context) (*model.LocationUpdate, error)

	// Health
	Health(ctx context.Context) (string, error)

	// Lifecycle
	Close() error
}

// ListUpdatesRequest holds parameters for listing updates.
type ListUpdatesRequest struct {
	Trigger string     `json:"trigger,omitempty"`
	Since   *time.Time `json:"since,omitempty"`
	Until   *time.Time `json:"until,omitempty"`
	Limit   int        `json:"limit,omitempty"`
	Offset  int        `json:"offset,omitempty"`
}

// ListUpdatesResponse is the response from ListUpdates.
type ListUpdatesResponse struct {
	Updates []*model.LocationUpdate `json:"updates"`
	Total   int                     `json:"total"`
}
