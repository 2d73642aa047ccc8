package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pairlane/waypoint/internal/model"
)

func TestTriggerManual(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/triggers/manual" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["requested_by"] != "alice" {
			t.Errorf("requested_by = %q, want alice", body["requested_by"])
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(model.LocationUpdate{
			ID: "loc-1", Latitude: 40.7, Longitude: -74.0, Place: "NYC", Trigger: model.TriggerManual,
		})
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	update, err := c.TriggerManual(context.Background(), "alice")
	if err != nil {
		t.Fatalf("TriggerManual error: %v", err)
	}
	if update.ID != "loc-1" || update.Place != "NYC" {
		t.Errorf("unexpected update: %+v", update)
	}
}

func TestTriggerManual_Throttled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":"update throttled"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	_, err := c.TriggerManual(context.Background(), "")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusTooManyRequests || apiErr.Message != "update throttled" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestTriggerForeground(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/triggers/foreground" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.WriteHeader(http.StatusAccepted)
		w.Write([]byte(`{"status":"scheduled"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	if err := c.TriggerForeground(context.Background()); err != nil {
		t.Fatalf("TriggerForeground error: %v", err)
	}
}

func TestGateStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/gate" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"last_update_at":"2026-01-15T12:00:00Z","timer_pending":true,"request_in_flight":false}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	snap, err := c.GateStatus(context.Background())
	if err != nil {
		t.Fatalf("GateStatus error: %v", err)
	}
	if snap.LastUpdateAt == nil || !snap.TimerPending || snap.RequestInFlight {
		t.Errorf("unexpected snapshot: %+v", snap)
	}
}

func TestListUpdates_QueryEncoding(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"updates":[],"total":0}`))
	}))
	defer srv.Close()

	since := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c := NewHTTPClient(srv.URL, "")
	resp, err := c.ListUpdates(context.Background(), &ListUpdatesRequest{
		Trigger: "manual",
		Since:   &since,
		Limit:   10,
		Offset:  20,
	})
	if err != nil {
		t.Fatalf("ListUpdates error: %v", err)
	}
	if resp.Total != 0 || len(resp.Updates) != 0 {
		t.Errorf("unexpected response: %+v", resp)
	}

	q := map[string]string{
		"trigger": "manual",
		"since":   "2026-01-01T00:00:00Z",
		"limit":   "10",
		"offset":  "20",
	}
	for k, want := range q {
		req := httptest.NewRequest(http.MethodGet, "/?"+gotQuery, nil)
		if got := req.URL.Query().Get(k); got != want {
			t.Errorf("query %s = %q, want %q", k, got, want)
		}
	}
}

func TestLatestUpdate_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"no updates recorded"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	_, err := c.LatestUpdate(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404 APIError, got %v", err)
	}
}

func TestAuthHeader(t *testing.T) {
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "tok123")
	if _, err := c.Health(context.Background()); err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if gotAuth != "Bearer tok123" {
		t.Errorf("Authorization = %q, want Bearer tok123", gotAuth)
	}
}

func TestHealth(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":"ok"}`))
	}))
	defer srv.Close()

	c := NewHTTPClient(srv.URL, "")
	status, err := c.Health(context.Background())
	if err != nil {
		t.Fatalf("Health error: %v", err)
	}
	if status != "ok" {
		t.Errorf("status = %q, want ok", status)
	}
}
