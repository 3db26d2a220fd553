package formrelay

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

// RelayError carries the relay's structured message when it rejects a
// submission; the submit flow prefers it over anything more generic.
type RelayError struct {
	Status  int
	Message string
}

func (e *RelayError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("form relay rejected submission (%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("form relay rejected submission (%d)", e.Status)
}

type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Submit(ctx context.Context, submission Submission) error {
	payload, err := json.Marshal(submission)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewBuffer(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		middleware.RecordIntegrationError("formrelay")
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	middleware.RecordIntegrationError("formrelay")
	return &RelayError{
		Status:  resp.StatusCode,
		Message: extractMessage(body),
	}
}

// extractMessage digs the human-readable error out of the relay's response
// body, which may be {"errors":[{"message":...}]} or a flat {"error":...}.
func extractMessage(body []byte) string {
	var parsed relayResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return ""
	}
	if len(parsed.Errors) > 0 && parsed.Errors[0].Message != "" {
		return parsed.Errors[0].Message
	}
	return parsed.Error
}
