package domain

import "time"

// VerificationCode is a short-lived one-time code proving control of an
// email address. Claiming a code flips Used exactly once; the check and the
// flip are a single conditional statement in the store.
type VerificationCode struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expires_at"`
	Used      bool      `json:"used"`
	CreatedAt time.Time `json:"created_at"`
}
