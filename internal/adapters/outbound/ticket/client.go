// Package ticket implements domain.TicketSource against the ticket
// service's REST API.
package ticket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/releasegate/releasegate/internal/domain"
)

// Client is an HTTP client for the ticket service.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

// New creates a ticket client. The timeout bounds every request.
func New(endpoint domain.Endpoint, timeout time.Duration) *Client {
	return &Client{
		baseURL: endpoint.BaseURL,
		token:   endpoint.Token,
		http:    &http.Client{Timeout: timeout},
	}
}

type ticketResponse struct {
	TicketID   string `json:"ticket_id"`
	Components []struct {
		Name          string `json:"name"`
		Version       string `json:"version"`
		RepositoryURL string `json:"repository_url"`
	} `json:"components"`
	RawText string `json:"raw_text"`
}

// TicketComponents returns the ticket's declared component list.
// A missing ticket maps to domain.ErrNotFound.
func (c *Client) TicketComponents(ctx context.Context, ticketID string) (*domain.TicketInfo, error) {
	endpoint := fmt.Sprintf("%s/tickets/%s/components", c.baseURL, url.PathEscape(ticketID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("building ticket request: %w", err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching ticket %s: %w", ticketID, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("ticket %s: %w", ticketID, domain.ErrNotFound)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("ticket service returned status %d", resp.StatusCode)
	}

	var body ticketResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding ticket response: %w", err)
	}

	info := &domain.TicketInfo{TicketID: ticketID, RawText: body.RawText}
	for _, comp := range body.Components {
		info.Components = append(info.Components, domain.Component{
			Name:          comp.Name,
			Version:       comp.Version,
			RepositoryURL: comp.RepositoryURL,
		})
	}
	return info, nil
}
