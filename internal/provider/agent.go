// Package provider implements the gate's collaborators against real
// endpoints: a device agent for position fixes, an HTTP probe for
// connectivity checks, and a Nominatim-style reverse geocoder.
package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pairlane/waypoint/internal/model"
)

// AgentProvider fetches position fixes from a local device agent over
// HTTP/JSON.
type AgentProvider struct {
	baseURL    string
	httpClient *http.Client
}

// NewAgentProvider creates a provider targeting the given agent base URL
// (e.g. "http://127.0.0.1:7700").
func NewAgentProvider(baseURL string) *AgentProvider {
	return &AgentProvider{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// RequestFix asks the agent for its current position. The accuracy hint is
// forwarded as a query parameter so the agent can trade precision for power.
func (p *AgentProvider) RequestFix(ctx context.Context, accuracyHint string) (model.Fix, error) {
	u := p.baseURL + "/fix"
	if accuracyHint != "" {
		u += "?accuracy=" + url.QueryEscape(accuracyHint)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return model.Fix{}, fmt.Errorf("creating request: %w", err)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return model.Fix{}, fmt.Errorf("performing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return model.Fix{}, fmt.Errorf("agent returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var fix model.Fix
	if err := json.NewDecoder(resp.Body).Decode(&fix); err != nil {
		return model.Fix{}, fmt.Errorf("decoding response: %w", err)
	}
	if fix.CapturedAt.IsZero() {
		fix.CapturedAt = time.Now().UTC()
	}
	return fix, nil
}
