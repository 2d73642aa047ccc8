package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/pairlane/waypoint/internal/events"
	"github.com/pairlane/waypoint/internal/gate"
	"github.com/pairlane/waypoint/internal/model"
)

// NewHTTPHandler returns an http.Handler with all routes registered.
// When authToken is non-empty, requests (except GET /v1/health) must include
// a valid Authorization: Bearer <token> header.
func (s *Server) NewHTTPHandler(authToken string) http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /v1/triggers/manual", s.handleTriggerManual)
	mux.HandleFunc("POST /v1/triggers/foreground", s.handleTriggerForeground)
	mux.HandleFunc("POST /v1/triggers/start", s.handleTriggerStart)
	mux.HandleFunc("GET /v1/gate", s.handleGateStatus)
	mux.HandleFunc("GET /v1/updates", s.handleListUpdates)
	mux.HandleFunc("GET /v1/updates/latest", s.handleLatestUpdate)
	mux.HandleFunc("GET /v1/health", s.handleHealth)
	return AuthMiddleware(authToken, mux)
}

// handleTriggerManual handles POST /v1/triggers/manual. A manual request
// evaluates immediately; the response carries the emitted update or the
// reason it was rejected.
func (s *Server) handleTriggerManual(w http.ResponseWriter, r *http.Request) {
	var in struct {
		RequestedBy string `json:"requested_by"`
	}
	if r.Body != nil && r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
	}

	ctx := r.Context()
	if err := s.publisher.Publish(ctx, events.TopicTriggerManual, events.TriggerManual{RequestedBy: in.RequestedBy}); err != nil {
		s.logger.Warn("failed to publish manual trigger", "error", err)
	}

	update, err := s.gate.OnManualRequest(ctx)
	if err != nil {
		status, reason := triggerErrorStatus(err)
		s.publishSkip(ctx, model.TriggerManual, reason)
		writeError(w, status, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, update)
}

// handleTriggerForeground handles POST /v1/triggers/foreground. The gate
// only schedules a debounced evaluation, so the response is always 202.
func (s *Server) handleTriggerForeground(w http.ResponseWriter, r *http.Request) {
	s.gate.OnAppForeground()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// handleTriggerStart handles POST /v1/triggers/start.
func (s *Server) handleTriggerStart(w http.ResponseWriter, r *http.Request) {
	s.gate.OnAppStart()
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "scheduled"})
}

// handleGateStatus handles GET /v1/gate.
func (s *Server) handleGateStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.gate.Snapshot())
}

// handleListUpdates handles GET /v1/updates.
func (s *Server) handleListUpdates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.UpdateFilter{}

	if v := q.Get("trigger"); v != "" {
		t := model.Trigger(v)
		if !t.Valid() {
			writeError(w, http.StatusBadRequest, "invalid trigger")
			return
		}
		filter.Trigger = t
	}
	if v := q.Get("since"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid since timestamp")
			return
		}
		filter.Since = ts
	}
	if v := q.Get("until"); v != "" {
		ts, err := time.Parse(time.RFC3339, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid until timestamp")
			return
		}
		filter.Until = ts
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		filter.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "invalid offset")
			return
		}
		filter.Offset = n
	}

	updates, total, err := s.store.ListUpdates(r.Context(), filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list updates")
		return
	}

	// Ensure updates is never null in JSON output.
	if updates == nil {
		updates = []*model.LocationUpdate{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"updates": updates,
		"total":   total,
	})
}

// handleLatestUpdate handles GET /v1/updates/latest.
func (s *Server) handleLatestUpdate(w http.ResponseWriter, r *http.Request) {
	update, err := s.store.LatestUpdate(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to load latest update")
		return
	}
	if update == nil {
		writeError(w, http.StatusNotFound, "no updates recorded")
		return
	}
	writeJSON(w, http.StatusOK, update)
}

// handleHealth handles GET /v1/health.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// triggerErrorStatus maps a gate rejection to an HTTP status and a skip
// reason for the event bus.
func triggerErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, gate.ErrThrottled):
		return http.StatusTooManyRequests, "throttled"
	case errors.Is(err, gate.ErrRequestInFlight):
		return http.StatusConflict, "in_flight"
	case errors.Is(err, gate.ErrNetworkUnreachable):
		return http.StatusServiceUnavailable, "network_unreachable"
	default:
		return http.StatusBadGateway, "provider_error"
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
