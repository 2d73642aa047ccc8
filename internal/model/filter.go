package model

import "time"

// UpdateFilter holds criteria for querying the update history.
type UpdateFilter struct {
	Trigger Trigger   `json:"trigger,omitempty"` // empty = all triggers
	Since   time.Time `json:"since,omitempty"`   // zero = unbounded
	Until   time.Time `json:"until,omitempty"`   // zero = unbounded
	Limit   int       `json:"limit,omitempty"`   // 0 = server default
	Offset  int       `json:"offset,omitempty"`
}
