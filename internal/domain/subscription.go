package domain

import "time"

// Subscription status values.
const (
	SubscriptionNone   = "none"
	SubscriptionTrial  = "trial"
	SubscriptionActive = "active"
)

// Plan type values.
const (
	PlanNone    = "none"
	PlanTrial   = "trial"
	PlanPremium = "premium"
)

// Subscription is the caller's entitlement. At most one row per user;
// promo redemption overwrites it wholesale (upsert on user_id).
type Subscription struct {
	UserID        string     `json:"user_id"`
	Status        string     `json:"subscription_status"`
	PlanType      string     `json:"plan_type"`
	PromoCodeUsed string     `json:"promo_code_used,omitempty"`
	StartedAt     time.Time  `json:"started_at"`
	TrialEndsAt   *time.Time `json:"trial_ends_at,omitempty"`
	ExpiresAt     *time.Time `json:"expires_at,omitempty"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// TrialExpired reports whether a trial plan has run out. Non-trial plans
// never count as trial-expired.
func (s *Subscription) TrialExpired(now time.Time) bool {
	return s.PlanType == PlanTrial && s.TrialEndsAt != nil && !s.TrialEndsAt.After(now)
}

// Entitlement is the answer to a subscription-status query.
type Entitlement struct {
	Status       string     `json:"subscription_status"`
	PlanType     string     `json:"plan_type"`
	TrialExpired bool       `json:"trial_expired"`
	ExpiresAt    *time.Time `json:"expires_at"`
}
