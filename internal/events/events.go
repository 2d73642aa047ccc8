// Package events defines the event bus contract used to fan location
// updates out to downstream consumers (backend sync, live watchers).
package events

import (
	"context"

	"github.com/pairlane/waypoint/internal/model"
)

// Event topic constants
const (
	TopicLocationUpdated = "waypoint.location.updated"
	TopicLocationSkipped = "waypoint.location.skipped"
	TopicTriggerManual   = "waypoint.trigger.manual"
)

// Event types

type LocationUpdated struct {
	Update *model.LocationUpdate `json:"update"`
}

// LocationSkipped records a decision cycle that ended without an emission.
type LocationSkipped struct {
	Trigger model.Trigger `json:"trigger"`
	Reason  string        `json:"reason"` // "throttled" | "in_flight" | "network_unreachable" | "provider_error"
}

// TriggerManual records an explicit manual refresh request reaching the server.
type TriggerManual struct {
	RequestedBy string `json:"requested_by,omitempty"`
}

// Publisher is the interface for emitting events.
type Publisher interface {
	Publish(ctx context.Context, topic string, event any) error
	Close() error
}
