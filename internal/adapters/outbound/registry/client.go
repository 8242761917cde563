// Package registry implements domain.ProductionRegistry against the
// deployment registry's REST API.
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/releasegate/releasegate/internal/domain"
)

// Client is an HTTP client for the production deployment registry.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func New(endpoint domain.Endpoint, timeout time.Duration) *Client {
	return &Client{
		baseURL: endpoint.BaseURL,
		token:   endpoint.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

type versionResponse struct {
	Version string `json:"version"`
}

// ProductionVersion returns the currently deployed version of a component.
// A 404 means the component was never deployed; that is found=false, not an
// error, since first deployments are a normal NEW classification.
func (c *Client) ProductionVersion(ctx context.Context, component string) (string, bool, error) {
	endpoint := fmt.Sprintf("%s/components/%s/production-version", c.baseURL, url.PathEscape(component))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", false, fmt.Errorf("building registry request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", false, fmt.Errorf("looking up %s: %w", component, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", false, nil
	case resp.StatusCode != http.StatusOK:
		return "", false, fmt.Errorf("registry returned status %d for %s", resp.StatusCode, component)
	}

	var body versionResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", false, fmt.Errorf("decoding registry response: %w", err)
	}
	if body.Version == "" {
		return "", false, nil
	}
	return body.Version, true, nil
}
