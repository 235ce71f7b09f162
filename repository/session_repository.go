package repository

import (
	"context"

	"github.com/SujallG/Secure-Media-Vault/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepository handles database operations for bearer-token sessions
type SessionRepository struct {
	db *pgxpool.Pool
}

// NewSessionRepository creates a new session repository
func NewSessionRepository(db *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{db: db}
}

// Create inserts a new session; created_at is server-assigned
func (r *SessionRepository) Create(ctx context.Context, token string, userID uuid.UUID) error {
	query := `INSERT INTO sessions (token, user_id) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, token, userID)
	return err
}

// GetByToken retrieves a session by its token
func (r *SessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	session := &models.Session{}
	query := `
		SELECT token, user_id, created_at
		FROM sessions
		WHERE token = $1`

	err := r.db.QueryRow(ctx, query, token).Scan(
		&session.Token,
		&session.UserID,
		&session.CreatedAt,
	)

	if err != nil {
		return nil, err
	}

	return session, nil
}

// Delete removes a session (sign-out)
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query := `DELETE FROM sessions WHERE token = $1`
	_, err := r.db.Exec(ctx, query, token)
	return err
}
