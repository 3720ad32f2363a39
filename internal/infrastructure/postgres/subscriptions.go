package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SubscriptionRepo manages the single entitlement row per user.
type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Get returns the user's subscription, or domain.ErrNotFound when the user
// has never redeemed anything.
func (r *SubscriptionRepo) Get(ctx context.Context, userID string) (*domain.Subscription, error) {
	const q = `
		SELECT user_id, subscription_status, plan_type,
		       COALESCE(promo_code_used, ''), started_at, trial_ends_at, expires_at, updated_at
		FROM subscriptions
		WHERE user_id = $1
	`
	var s domain.Subscription
	err := r.pool.QueryRow(ctx, q, userID).Scan(
		&s.UserID, &s.Status, &s.PlanType, &s.PromoCodeUsed,
		&s.StartedAt, &s.TrialEndsAt, &s.ExpiresAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("no subscription for user %s: %w", userID, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("fetch subscription for user %s: %w", userID, err)
	}
	return &s, nil
}

// Upsert overwrites the user's subscription row wholesale. Promo redemption
// always resets started_at; trial_ends_at and expires_at carry the nulls of
// the reward being applied.
func (r *SubscriptionRepo) Upsert(ctx context.Context, s *domain.Subscription) error {
	const q = `
		INSERT INTO subscriptions
			(user_id, subscription_status, plan_type, promo_code_used, started_at, trial_ends_at, expires_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), $5, $6, NOW())
		ON CONFLICT (user_id) DO UPDATE
		SET subscription_status = EXCLUDED.subscription_status,
		    plan_type = EXCLUDED.plan_type,
		    promo_code_used = EXCLUDED.promo_code_used,
		    started_at = NOW(),
		    trial_ends_at = EXCLUDED.trial_ends_at,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = NOW()
	`
	_, err := r.pool.Exec(ctx, q, s.UserID, s.Status, s.PlanType, s.PromoCodeUsed, s.TrialEndsAt, s.ExpiresAt)
	if err != nil {
		return fmt.Errorf("upsert subscription for user %s: %w", s.UserID, err)
	}
	return nil
}
