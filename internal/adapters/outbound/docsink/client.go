// Package docsink implements domain.DocumentationSink against the
// documentation service's REST API. Record ids are opaque to the pipeline.
package docsink

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/releasegate/releasegate/internal/domain"
)

// Client is an HTTP client for the documentation sink.
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

type createRecordRequest struct {
	TicketID   string             `json:"ticket_id"`
	Evaluator  string             `json:"evaluator"`
	Components []domain.Component `json:"components"`
}

type createRecordResponse struct {
	RecordID string `json:"record_id"`
}

// CreateRecord opens a new validation record seeded with the ticket id,
// evaluator, and component list.
func (c *Client) CreateRecord(ctx context.Context, ticketID, evaluator string, components []domain.Component) (string, error) {
	payload := createRecordRequest{TicketID: ticketID, Evaluator: evaluator, Components: components}

	var body createRecordResponse
	if err := c.post(ctx, "/records", payload, &body); err != nil {
		return "", err
	}
	if body.RecordID == "" {
		return "", fmt.Errorf("documentation sink returned empty record id")
	}
	return body.RecordID, nil
}

// AppendVersionChanges appends the classified version changes to a record.
func (c *Client) AppendVersionChanges(ctx context.Context, recordID string, changes []domain.VersionChange) error {
	path := fmt.Sprintf("/records/%s/version-changes", url.PathEscape(recordID))
	return c.post(ctx, path, changes, nil)
}

// AppendChecklist appends the consolidated checklist to a record.
func (c *Client) AppendChecklist(ctx context.Context, recordID string, entries []domain.ChecklistEntry) error {
	path := fmt.Sprintf("/records/%s/checklist", url.PathEscape(recordID))
	return c.post(ctx, path, entries, nil)
}

func (c *Client) post(ctx context.Context, path string, payload, out any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding request for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("building request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("posting to %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%s: %w", path, domain.ErrNotFound)
	case resp.StatusCode >= 300:
		return fmt.Errorf("documentation sink returned status %d for %s", resp.StatusCode, path)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response from %s: %w", path, err)
		}
	}
	return nil
}
