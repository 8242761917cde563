// Package architecture implements domain.ArchitectureSource against the
// technical-vision service's REST API.
package architecture

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/releasegate/releasegate/internal/domain"
)

// Client is an HTTP client for the technical-vision service.
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

type elementsResponse struct {
	Elements []struct {
		Name       string `json:"name"`
		Kind       string `json:"kind"`
		Stereotype string `json:"stereotype"`
	} `json:"elements"`
}

// ModelElements returns the modeled elements of the vision linked to the
// ticket. Unknown stereotypes are kept as UNDEFINED, never dropped.
func (c *Client) ModelElements(ctx context.Context, ticketID string) ([]domain.ArchitectureElement, error) {
	var body elementsResponse
	if err := c.get(ctx, fmt.Sprintf("/visions/%s/elements", url.PathEscape(ticketID)), &body); err != nil {
		return nil, err
	}

	elements := make([]domain.ArchitectureElement, 0, len(body.Elements))
	for _, el := range body.Elements {
		elements = append(elements, domain.ArchitectureElement{
			Name:       el.Name,
			Kind:       el.Kind,
			Stereotype: domain.ParseStereotype(el.Stereotype),
		})
	}
	return elements, nil
}

type approvedResponse struct {
	Approved []string `json:"approved"`
}

// ApprovedComponents returns the component names approved for the ticket's
// change. A ticket with no linked vision maps to domain.ErrNotFound.
func (c *Client) ApprovedComponents(ctx context.Context, ticketID string) ([]string, error) {
	var body approvedResponse
	if err := c.get(ctx, fmt.Sprintf("/visions/%s/approved", url.PathEscape(ticketID)), &body); err != nil {
		return nil, err
	}
	return body.Approved, nil
}

func (c *Client) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("building vision request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("fetching %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("vision service returned status %d for %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding vision response: %w", err)
	}
	return nil
}
