// Package repository provides persistence implementations for dashboard sessions.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/atinyakov/AssetDesk/internal/models"
)

// ErrSessionNotFound is returned when no session has the requested id.
var ErrSessionNotFound = errors.New("session not found")

// PostgresSessionRepository stores sessions in a PostgreSQL database.
type PostgresSessionRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSessionRepository creates a new PostgresSessionRepository with the given database connection.
func NewPostgresSessionRepository(db *sql.DB) *PostgresSessionRepository {
	return &PostgresSessionRepository{DB: db}
}

// Create inserts s, replacing any session with the same id.
func (r *PostgresSessionRepository) Create(ctx context.Context, s models.Session) error {
	_, err := r.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, token, role, email, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET token = EXCLUDED.token, role = EXCLUDED.role,
		    email = EXCLUDED.email, expires_at = EXCLUDED.expires_at
	`, s.ID, s.Token, string(s.Role), s.Email, s.ExpiresAt.Unix())
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Get returns the session with the given id.
func (r *PostgresSessionRepository) Get(ctx context.Context, id string) (models.Session, error) {
	var (
		s       models.Session
		role    string
		expires int64
	)
	err := r.DB.QueryRowContext(ctx,
		`SELECT id, token, role, email, expires_at FROM sessions WHERE id = $1`, id,
	).Scan(&s.ID, &s.Token, &role, &s.Email, &expires)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	s.Role = models.Role(role)
	s.ExpiresAt = time.Unix(expires, 0).UTC()
	return s, nil
}

// Delete removes the session with the given id. Deleting an unknown id is not an error.
func (r *PostgresSessionRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions that expired at or before now.
func (r *PostgresSessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= $1`, now.Unix())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return res.RowsAffected()
}
