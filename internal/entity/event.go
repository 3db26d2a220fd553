package entity

import (
	"context"
	"time"
)

// Event is an append-only audit row ("email_submit", "engagement_award").
// Writes are fire-and-forget everywhere; a lost event is never surfaced.
type Event struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	SessionID string    `json:"session_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type EventRepositoryInterface interface {
	Append(ctx context.Context, event *Event) error
}
