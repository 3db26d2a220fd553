package entity

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Attribution carries the traffic metadata captured once when the visitor lands.
type Attribution struct {
	UTMSource   string `json:"utm_source,omitempty"`
	UTMMedium   string `json:"utm_medium,omitempty"`
	UTMCampaign string `json:"utm_campaign,omitempty"`
	Referrer    string `json:"referrer,omitempty"`
	UserAgent   string `json:"user_agent,omitempty"`
}

type Lead struct {
	ID      string `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name,omitempty"`
	IsCoach bool   `json:"is_coach"`

	Goal      string `json:"goal,omitempty"`
	Equipment string `json:"equipment,omitempty"`
	Schedule  string `json:"schedule,omitempty"`

	Attribution Attribution `json:"attribution"`

	SessionID  string `json:"session_id"`
	RefCode    string `json:"ref_code"`               // self-referral code minted for this lead
	ReferredBy string `json:"referred_by,omitempty"`  // inbound referral code, if any

	Source string `json:"source"` // which form on the page
	Site   string `json:"site"`   // site/version tag (crunch, lungeable, ...)

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type LeadRepositoryInterface interface {
	// Upsert writes the lead keyed by email. Duplicate emails are absorbed;
	// the bool reports whether a new row was created.
	Upsert(ctx context.Context, lead *Lead) (bool, error)
}

// NewLead normalizes the email and mints the ids the landing page would have
// kept in local storage (session id, self-referral code) when they are absent.
func NewLead(email, name string) (*Lead, error) {
	lead := &Lead{
		ID:        uuid.New().String(),
		Email:     NormalizeEmail(email),
		Name:      strings.TrimSpace(name),
		SessionID: uuid.New().String(),
		RefCode:   NewRefCode(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	if err := lead.Validate(); err != nil {
		return nil, err
	}

	return lead, nil
}

func (l *Lead) Validate() error {
	if l.Email == "" {
		return errors.New("email is required")
	}
	if !IsValidEmail(l.Email) {
		return errors.New("email is invalid")
	}
	return nil
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsValidEmail(email string) bool {
	if email == "" || strings.ContainsAny(email, " \t") {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}

// NewRefCode mints the short code a lead can share with friends.
func NewRefCode() string {
	return strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
}
