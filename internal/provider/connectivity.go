package provider

import (
	"context"
	"net/http"
	"time"
)

// HTTPConnectivity checks network reachability by issuing a HEAD request
// against a probe URL.
type HTTPConnectivity struct {
	probeURL   string
	httpClient *http.Client
}

// NewHTTPConnectivity creates a connectivity checker. probeURL should point
// at a cheap, highly available endpoint.
func NewHTTPConnectivity(probeURL string) *HTTPConnectivity {
	return &HTTPConnectivity{
		probeURL:   probeURL,
		httpClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// Reachable reports whether the probe URL answered at all. Any transport
// error counts as unreachable; the status code does not matter.
func (c *HTTPConnectivity) Reachable(ctx context.Context) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.probeURL, nil)
	if err != nil {
		return false, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, nil
	}
	resp.Body.Close()
	return true, nil
}
