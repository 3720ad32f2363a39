package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PromoRepo manages provisioned promo codes.
type PromoRepo struct {
	pool *pgxpool.Pool
}

func NewPromoRepo(pool *pgxpool.Pool) *PromoRepo {
	return &PromoRepo{pool: pool}
}

// Redeem increments the use counter iff the code is active, unexpired and
// under its use cap, returning the updated row. The condition and the
// increment are one statement, so concurrent redemptions cannot push uses
// past max_uses. domain.ErrNotFound covers every rejection reason; callers
// deliberately cannot tell which condition failed.
func (r *PromoRepo) Redeem(ctx context.Context, code string) (*domain.PromoCode, error) {
	const q = `
		UPDATE promo_codes
		SET uses = uses + 1
		WHERE code = $1
		  AND is_active = TRUE
		  AND (expires_at IS NULL OR expires_at > NOW())
		  AND (max_uses IS NULL OR uses < max_uses)
		RETURNING code, is_active, uses, max_uses, expires_at
	`
	var p domain.PromoCode
	err := r.pool.QueryRow(ctx, q, code).Scan(&p.Code, &p.IsActive, &p.Uses, &p.MaxUses, &p.ExpiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("promo code not redeemable: %w", domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("redeem promo code: %w", err)
	}
	return &p, nil
}
