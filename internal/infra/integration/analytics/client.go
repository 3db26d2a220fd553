package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/lungeable/crunch-backend/internal/infra/http/middleware"
)

// Event is a conversion event. The submit flow sends exactly one "Lead"
// event per overall-successful submission, never on failures.
type Event struct {
	Name      string `json:"event"`
	Email     string `json:"email,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	Site      string `json:"site,omitempty"`
}

type Client struct {
	endpoint string
	token    string
	http     *http.Client
}

func NewClient(endpoint, token string) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: 5 * time.Second},
	}
}

func (c *Client) TrackLead(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("analytics")
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 300 {
		middleware.RecordIntegrationError("analytics")
		return fmt.Errorf("analytics endpoint answered %d", resp.StatusCode)
	}

	return nil
}
