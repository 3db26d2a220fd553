package database

import (
	"context"
	"database/sql"
)

// SessionRepository is the per-session key→value store behind the rep meter.
// It plays the role the browser's local storage plays on the page: one small
// string per key, read at init, overwritten after every mutation.
type SessionRepository struct {
	DB *sql.DB
}

func NewSessionRepository(db *sql.DB) *SessionRepository {
	return &SessionRepository{DB: db}
}

func (r *SessionRepository) Get(ctx context.Context, sessionID, key string) (string, bool, error) {
	query := `SELECT value FROM session_state WHERE session_id = $1 AND key = $2`

	var value string
	err := r.DB.QueryRowContext(ctx, query, sessionID, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return value, true, nil
}

func (r *SessionRepository) Put(ctx context.Context, sessionID, key, value string) error {
	query := `
		INSERT INTO session_state (session_id, key, value, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (session_id, key)
		DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	_, err := r.DB.ExecContext(ctx, query, sessionID, key, value)
	return err
}
