package database

import (
	"context"
	"database/sql"

	"github.com/lungeable/crunch-backend/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

// Upsert writes the lead keyed by email. A resubmission of the same email is
// absorbed by the conflict clause and refreshes whatever new details came in.
// (xmax = 0) tells us whether the row is brand new, which is what gates the
// downstream notification.
func (r *LeadRepository) Upsert(ctx context.Context, lead *entity.Lead) (bool, error) {
	query := `
		INSERT INTO leads (
			id, email, name, is_coach, goal, equipment, schedule,
			utm_source, utm_medium, utm_campaign, referrer, user_agent,
			session_id, ref_code, referred_by, source, site,
			created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, NOW(), NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			name       = COALESCE(NULLIF(EXCLUDED.name, ''), leads.name),
			goal       = COALESCE(NULLIF(EXCLUDED.goal, ''), leads.goal),
			equipment  = COALESCE(NULLIF(EXCLUDED.equipment, ''), leads.equipment),
			schedule   = COALESCE(NULLIF(EXCLUDED.schedule, ''), leads.schedule),
			updated_at = NOW()
		RETURNING id, ref_code, created_at, updated_at, (xmax = 0) AS inserted
	`

	var inserted bool
	err := r.DB.QueryRowContext(
		ctx,
		query,
		lead.ID,
		lead.Email,
		lead.Name,
		lead.IsCoach,
		lead.Goal,
		lead.Equipment,
		lead.Schedule,
		lead.Attribution.UTMSource,
		lead.Attribution.UTMMedium,
		lead.Attribution.UTMCampaign,
		lead.Attribution.Referrer,
		lead.Attribution.UserAgent,
		lead.SessionID,
		lead.RefCode,
		lead.ReferredBy,
		lead.Source,
		lead.Site,
	).Scan(
		&lead.ID,
		&lead.RefCode,
		&lead.CreatedAt,
		&lead.UpdatedAt,
		&inserted,
	)

	return inserted, err
}
