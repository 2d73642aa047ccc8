package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pairlane/waypoint/internal/gate"
	"github.com/pairlane/waypoint/internal/model"
)

// HTTPClient implements WaypointClient using the waypoint HTTP/JSON REST API.
type HTTPClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

// NewHTTPClient creates a new HTTP client targeting the given base URL
// (e.g. "http://localhost:8080"). When token is non-empty, an Authorization
// header is set on every request.
func NewHTTPClient(baseURL, token string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{},
	}
}

// Close is a no-op for the HTTP client.
func (c *HTTPClient) Close() error { return nil }

// --- Triggers ---

func (c *HTTPClient) TriggerManual(ctx context.Context, requestedBy string) (*model.LocationUpdate, error) {
	body := map[string]string{}
	if requestedBy != "" {
		body["requested_by"] = requestedBy
	}
	var update model.LocationUpdate
	if err := c.doJSON(ctx, http.MethodPost, "/v1/triggers/manual", body, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

func (c *HTTPClient) TriggerForeground(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/triggers/foreground", nil, nil)
}

func (c *HTTPClient) TriggerStart(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/v1/triggers/start", nil, nil)
}

// --- Gate ---

func (c *HTTPClient) GateStatus(ctx context.Context) (*gate.Snapshot, error) {
	var snap gate.Snapshot
	if err := c.doJSON(ctx, http.MethodGet, "/v1/gate", nil, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}

// --- History ---

func (c *HTTPClient) ListUpdates(ctx context.Context, req *ListUpdatesRequest) (*ListUpdatesResponse, error) {
	q := url.Values{}
	if req.Trigger != "" {
		q.Set("trigger", req.Trigger)
	}
	if req.Since != nil {
		q.Set("since", req.Since.Format(time.RFC3339))
	}
	if req.Until != nil {
		q.Set("until", req.Until.Format(time.RFC3339))
	}
	if req.Limit > 0 {
		q.Set("limit", fmt.Sprintf("%d", req.Limit))
	}
	if req.Offset > 0 {
		q.Set("offset", fmt.Sprintf("%d", req.Offset))
	}

	path := "/v1/updates"
	if len(q) > 0 {
		path += "?" + q.Encode()
	}

	var resp ListUpdatesResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *HTTPClient) LatestUpdate(ctx context.Context) (*model.LocationUpdate, error) {
	var update model.LocationUpdate
	if err := c.doJSON(ctx, http.MethodGet, "/v1/updates/latest", nil, &update); err != nil {
		return nil, err
	}
	return &update, nil
}

// --- Health ---

func (c *HTTPClient) Health(ctx context.Context) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/v1/health", nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// APIError is an error returned by the waypoint API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// doJSON performs an HTTP request with optional JSON body and decodes the JSON response.
// If result is nil, the response body is discarded (for 202/204 responses).
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body any, result any) error {
	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	// 204 No Content — success with no body.
	if resp.StatusCode == http.StatusNoContent {
		return nil
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}

	if resp.StatusCode >= 400 {
		var errResp struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(respBody, &errResp) == nil && errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		return &APIError{StatusCode: resp.StatusCode, Message: string(respBody)}
	}

	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
