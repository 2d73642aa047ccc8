package export

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pairlane/waypoint/internal/model"
)

// mockStore is a minimal in-memory store for export tests.
type mockStore struct {
	mu      sync.Mutex
	updates map[string]*model.LocationUpdate
}

func newMockStore() *mockStore {
	return &mockStore{updates: make(map[string]*model.LocationUpdate)}
}

func (m *mockStore) RecordUpdate(_ context.Context, u *model.LocationUpdate) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updates[u.ID] = u
	return nil
}

func (m *mockStore) LatestUpdate(_ context.Context) (*model.LocationUpdate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var latest *model.LocationUpdate
	for _, u := range m.updates {
		if latest == nil || u.EmittedAt.After(latest.EmittedAt) {
			latest = u
		}
	}
	return latest, nil
}

func (m *mockStore) ListUpdates(_ context.Context, filter model.UpdateFilter) ([]*model.LocationUpdate, int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var all []*model.LocationUpdate
	for _, u := range m.updates {
		all = append(all, u)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].EmittedAt.After(all[j].EmittedAt)
	})
	total := len(all)

	if filter.Offset > 0 {
		if filter.Offset >= len(all) {
			all = nil
		} else {
			all = all[filter.Offset:]
		}
	}
	if filter.Limit > 0 && len(all) > filter.Limit {
		all = all[:filter.Limit]
	}
	return all, total, nil
}

func (m *mockStore) PruneUpdates(_ context.Context, before time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int64
	for id, u := range m.updates {
		if u.EmittedAt.Before(before) {
			delete(m.updates, id)
			n++
		}
	}
	return n, nil
}

func (m *mockStore) Close() error { return nil }
