package database

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/lungeable/crunch-backend/internal/entity"
)

type PreferenceRepository struct {
	DB *sql.DB
}

func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{DB: db}
}

func (r *PreferenceRepository) Upsert(ctx context.Context, pref *entity.Preference) error {
	query := `
		INSERT INTO preferences (email, goal, days_per_week, session_minutes, equipment, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW())
		ON CONFLICT (email)
		DO UPDATE SET
			goal            = EXCLUDED.goal,
			days_per_week   = EXCLUDED.days_per_week,
			session_minutes = EXCLUDED.session_minutes,
			equipment       = EXCLUDED.equipment,
			updated_at      = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query,
		pref.Email,
		pref.Goal,
		pref.DaysPerWeek,
		pref.SessionMinutes,
		pq.Array(pref.Equipment),
	)

	return err
}
