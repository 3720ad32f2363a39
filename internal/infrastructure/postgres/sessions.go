package postgres

import (
	"context"
	"fmt"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SessionRepo persists login sessions. One row per login event; rows are
// never revoked, the embedded token simply expires.
type SessionRepo struct {
	pool *pgxpool.Pool
}

func NewSessionRepo(pool *pgxpool.Pool) *SessionRepo {
	return &SessionRepo{pool: pool}
}

func (r *SessionRepo) Create(ctx context.Context, s *domain.Session) error {
	const q = `
		INSERT INTO sessions (id, user_id, session_token, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := r.pool.Exec(ctx, q, s.SessionID, s.UserID, s.Token, s.ExpiresAt, s.CreatedAt); err != nil {
		return fmt.Errorf("insert session for user %s: %w", s.UserID, err)
	}
	return nil
}
