package entitlement

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/rs/zerolog"
)

// SubscriptionStore reads and overwrites the per-user entitlement row.
type SubscriptionStore interface {
	Get(ctx context.Context, userID string) (*domain.Subscription, error)
	Upsert(ctx context.Context, s *domain.Subscription) error
}

// PromoStore atomically claims one use of a promo code.
type PromoStore interface {
	Redeem(ctx context.Context, code string) (*domain.PromoCode, error)
}

// RewardPolicy decides what a lifetime code grants. A zero TermDays grants
// indefinite access (expires_at stays null); a positive value grants a
// fixed term from redemption.
type RewardPolicy struct {
	TermDays int
}

// Service answers entitlement queries and applies promo redemptions.
type Service interface {
	// Check reports the user's current subscription. Users without a row
	// get the "none" status with trial_expired=false.
	Check(ctx context.Context, userID string) (*domain.Entitlement, error)
	// Redeem validates and applies a promo code, returning whether the code
	// granted a trial. Format failures are reported as domain.ErrBadRequest
	// and never reach the store; store-side rejections come back as
	// domain.ErrNotFound. Neither reveals which condition failed.
	Redeem(ctx context.Context, userID, code string) (bool, error)
}

type service struct {
	subscriptions SubscriptionStore
	promos        PromoStore
	rules         domain.PromoFormatRules
	policy        RewardPolicy
	log           zerolog.Logger
}

// Deps bundles the service's collaborators.
type Deps struct {
	Subscriptions SubscriptionStore
	Promos        PromoStore
	Rules         domain.PromoFormatRules
	Policy        RewardPolicy
	Logger        zerolog.Logger
}

func NewService(d Deps) Service {
	return &service{
		subscriptions: d.Subscriptions,
		promos:        d.Promos,
		rules:         d.Rules,
		policy:        d.Policy,
		log:           d.Logger,
	}
}

func (s *service) Check(ctx context.Context, userID string) (*domain.Entitlement, error) {
	sub, err := s.subscriptions.Get(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return &domain.Entitlement{
				Status:       domain.SubscriptionNone,
				PlanType:     domain.PlanNone,
				TrialExpired: false,
			}, nil
		}
		return nil, fmt.Errorf("fetch subscription: %w", err)
	}
	return &domain.Entitlement{
		Status:       sub.Status,
		PlanType:     sub.PlanType,
		TrialExpired: sub.TrialExpired(time.Now()),
		ExpiresAt:    sub.ExpiresAt,
	}, nil
}

func (s *service) Redeem(ctx context.Context, userID, code string) (bool, error) {
	if !s.rules.Valid(code) {
		return false, fmt.Errorf("code not valid: %w", domain.ErrBadRequest)
	}

	if _, err := s.promos.Redeem(ctx, code); err != nil {
		if isNotFound(err) {
			return false, fmt.Errorf("code not valid: %w", domain.ErrNotFound)
		}
		return false, fmt.Errorf("redeem promo code: %w", err)
	}

	isTrial := s.rules.IsTrial(code)
	sub := &domain.Subscription{
		UserID:        userID,
		PromoCodeUsed: code,
	}
	if isTrial {
		trialEnds := time.Now().AddDate(0, 1, 0)
		sub.Status = domain.SubscriptionTrial
		sub.PlanType = domain.PlanTrial
		sub.TrialEndsAt = &trialEnds
	} else {
		sub.Status = domain.SubscriptionActive
		sub.PlanType = domain.PlanPremium
		if s.policy.TermDays > 0 {
			expires := time.Now().AddDate(0, 0, s.policy.TermDays)
			sub.ExpiresAt = &expires
		}
	}

	if err := s.subscriptions.Upsert(ctx, sub); err != nil {
		// The use counter is already burned; surface the failure so the
		// caller retries with a fresh code rather than silently losing the
		// grant.
		return false, fmt.Errorf("apply subscription: %w", err)
	}

	s.log.Info().Str("user_id", userID).Bool("is_trial", isTrial).Msg("promo code redeemed")
	return isTrial, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
