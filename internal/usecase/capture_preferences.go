package usecase

import (
	"context"
	"log"
	"time"

	"github.com/lungeable/crunch-backend/internal/entity"
)

type CapturePreferencesInput struct {
	Email          string   `json:"email"`
	Goal           string   `json:"goal"`
	DaysPerWeek    int      `json:"days_per_week"`
	SessionMinutes int      `json:"session_minutes"`
	Equipment      []string `json:"equipment"`
}

// CapturePreferencesUseCase writes the post-signup questionnaire against the
// lead's email. The page advances to its "submitted" state no matter what, so
// Execute never returns an error: a failed write is logged and swallowed.
type CapturePreferencesUseCase struct {
	Preferences entity.PreferenceRepositoryInterface
}

func NewCapturePreferencesUseCase(prefs entity.PreferenceRepositoryInterface) *CapturePreferencesUseCase {
	return &CapturePreferencesUseCase{Preferences: prefs}
}

func (uc *CapturePreferencesUseCase) Execute(ctx context.Context, input CapturePreferencesInput) {
	email := entity.NormalizeEmail(input.Email)
	if !entity.IsValidEmail(email) {
		log.Printf("⚠️ preference capture skipped: invalid email")
		return
	}
	if uc.Preferences == nil {
		return
	}

	days := input.DaysPerWeek
	if days < 0 || days > 7 {
		days = 0
	}

	pref := &entity.Preference{
		Email:          email,
		Goal:           input.Goal,
		DaysPerWeek:    days,
		SessionMinutes: input.SessionMinutes,
		Equipment:      input.Equipment,
		UpdatedAt:      time.Now(),
	}

	if err := uc.Preferences.Upsert(ctx, pref); err != nil {
		log.Printf("⚠️ preference write failed for session follow-up: %v", err)
	}
}
