package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VerificationRepo manages one-time email verification codes.
type VerificationRepo struct {
	pool *pgxpool.Pool
}

func NewVerificationRepo(pool *pgxpool.Pool) *VerificationRepo {
	return &VerificationRepo{pool: pool}
}

// Create persists a fresh unused code.
func (r *VerificationRepo) Create(ctx context.Context, email, code string, expiresAt time.Time) error {
	const q = `
		INSERT INTO verification_codes (email, code, expires_at, used)
		VALUES ($1, $2, $3, FALSE)
	`
	if _, err := r.pool.Exec(ctx, q, email, code, expiresAt); err != nil {
		return fmt.Errorf("insert verification code: %w", err)
	}
	return nil
}

// Claim atomically marks the newest unused, unexpired row for (email, code)
// as used and returns it. The check and the flip are one statement, so two
// concurrent verifications of the same code cannot both succeed.
func (r *VerificationRepo) Claim(ctx context.Context, email, code string) (*domain.VerificationCode, error) {
	const q = `
		UPDATE verification_codes
		SET used = TRUE
		WHERE id = (
			SELECT id FROM verification_codes
			WHERE email = $1 AND code = $2 AND used = FALSE AND expires_at > NOW()
			ORDER BY created_at DESC
			LIMIT 1
			FOR UPDATE SKIP LOCKED
		)
		RETURNING id, email, code, expires_at, used, created_at
	`
	var v domain.VerificationCode
	err := r.pool.QueryRow(ctx, q, email, code).Scan(
		&v.ID, &v.Email, &v.Code, &v.ExpiresAt, &v.Used, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no claimable code for %s: %w", email, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("claim verification code: %w", err)
	}
	return &v, nil
}

// Delete removes all rows for (email, code). Used as the compensating action
// when the verification email cannot be delivered.
func (r *VerificationRepo) Delete(ctx context.Context, email, code string) error {
	const q = `DELETE FROM verification_codes WHERE email = $1 AND code = $2`
	if _, err := r.pool.Exec(ctx, q, email, code); err != nil {
		return fmt.Errorf("delete verification code: %w", err)
	}
	return nil
}
