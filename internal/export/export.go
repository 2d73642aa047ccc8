package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pairlane/waypoint/internal/model"
	"github.com/pairlane/waypoint/internal/store"
)

// pageSize is how many updates are fetched from the store per query
// while streaming an export.
const pageSize = 500

// header is the first JSONL record written by ExportJSONL.
type header struct {
	Version     string    `json:"version"`
	Type        string    `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	UpdateCount int       `json:"update_count"`
}

// record wraps a single JSONL line with a type discriminator.
type record struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// ExportJSONL writes all location updates from the store as JSONL to w.
// Updates are ordered newest first, matching the store's list order.
func ExportJSONL(ctx context.Context, s store.Store, w io.Writer) error {
	var updates []*model.LocationUpdate
	offset := 0
	for {
		page, total, err := s.ListUpdates(ctx, model.UpdateFilter{Limit: pageSize, Offset: offset})
		if err != nil {
			return fmt.Errorf("list updates: %w", err)
		}
		updates = append(updates, page...)
		offset += len(page)
		if len(page) == 0 || offset >= total {
			break
		}
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	if err := enc.Encode(header{
		Version:     "1",
		Type:        "header",
		Timestamp:   time.Now().UTC(),
		UpdateCount: len(updates),
	}); err != nil {
		return fmt.Errorf("encode header: %w", err)
	}

	for _, u := range updates {
		if err := enc.Encode(record{Type: "update", Data: u}); err != nil {
			return fmt.Errorf("encode update %s: %w", u.ID, err)
		}
	}

	return nil
}
