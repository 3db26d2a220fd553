package database

import (
	"context"
	"database/sql"
	"errors"
	"log"

	"github.com/lib/pq"
	"github.com/lungeable/crunch-backend/internal/entity"
)

type EventRepository struct {
	DB *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{DB: db}
}

func (r *EventRepository) Append(ctx context.Context, event *entity.Event) error {
	query := `
		INSERT INTO events (id, name, session_id, email, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err := r.DB.ExecContext(ctx, query,
		event.ID,
		event.Name,
		event.SessionID,
		event.Email,
		event.Payload,
		event.CreatedAt,
	)

	if err != nil {
		var pgErr *pq.Error
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			// Duplicate event id: already recorded, nothing to do.
			return nil
		}
		log.Printf("⚠️ event append failed: %v", err)
		return err
	}

	return nil
}
