package entity

import (
	"context"
	"time"
)

// Preference is the short questionnaire collected after a successful signup.
// It is keyed by the same email as the lead and written best-effort: the page
// never blocks the visitor on this row landing.
type Preference struct {
	Email          string    `json:"email"`
	Goal           string    `json:"goal,omitempty"`
	DaysPerWeek    int       `json:"days_per_week,omitempty"`
	SessionMinutes int       `json:"session_minutes,omitempty"`
	Equipment      []string  `json:"equipment,omitempty"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type PreferenceRepositoryInterface interface {
	Upsert(ctx context.Context, pref *Preference) error
}
