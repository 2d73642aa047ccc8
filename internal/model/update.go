package model

import (
	"fmt"
	"time"
)

// Trigger identifies which path initiated a location refresh.
type Trigger string

const (
	TriggerInitial  Trigger = "initial"   // app start, after the initial delay
	TriggerAppState Trigger = "app_state" // app foreground transition, debounced
	TriggerManual   Trigger = "manual"    // explicit user/developer request
)

// Valid reports whether t is a known trigger value.
func (t Trigger) Valid() bool {
	switch t {
	case TriggerInitial, TriggerAppState, TriggerManual:
		return true
	}
	return false
}

// LocationUpdate is the event emitted once per accepted decision cycle.
// It is persisted to the update history and published to the event bus.
type LocationUpdate struct {
	ID         string    `json:"id"`
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Place      string    `json:"place,omitempty"` // reverse-geocoded description, empty when unavailable
	Trigger    Trigger   `json:"trigger"`
	CapturedAt time.Time `json:"captured_at"`
	EmittedAt  time.Time `json:"emitted_at"`
}

// GeocodeKey returns the coarse cache key for a coordinate pair, rounding to
// the given number of decimal places so near-identical fixes share a key.
// Four decimal places is roughly 11 meters at the equator.
func GeocodeKey(lat, lon float64, precision int) string {
	return fmt.Sprintf("%.*f,%.*f", precision, lat, precision, lon)
}
