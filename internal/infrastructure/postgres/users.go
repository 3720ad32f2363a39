package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UserRepo manages user rows. Email uniquely identifies a user.
type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

// Upsert creates the user on first verification and re-stamps last_login and
// email_verified on every subsequent one. newID is only used when the row
// does not exist yet; the stored id is always returned.
func (r *UserRepo) Upsert(ctx context.Context, newID, email string, now time.Time) (*domain.User, error) {
	const q = `
		INSERT INTO users (id, email, email_verified, last_login, created_at)
		VALUES ($1, $2, $3, $3, $3)
		ON CONFLICT (email) DO UPDATE
		SET last_login = EXCLUDED.last_login,
		    email_verified = EXCLUDED.email_verified
		RETURNING id, email, email_verified, last_login, created_at
	`
	var u domain.User
	err := r.pool.QueryRow(ctx, q, newID, email, now).Scan(
		&u.UserID, &u.Email, &u.EmailVerified, &u.LastLogin, &u.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user %s: %w", email, err)
	}
	return &u, nil
}
