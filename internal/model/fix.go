package model

import "time"

// Fix is a single reported device location: coordinates plus capture time.
// Fixes are immutable once captured and are not retained beyond the
// evaluation cycle that consumed them.
type Fix struct {
	Latitude   float64   `json:"latitude"`
	Longitude  float64   `json:"longitude"`
	Accuracy   float64   `json:"accuracy,omitempty"` // meters, 0 = unknown
	CapturedAt time.Time `json:"captured_at"`
}
