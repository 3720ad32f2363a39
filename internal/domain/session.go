package domain

import "time"

// Session is one row per login event. Tokens are never revoked; they simply
// expire 30 days after issuance.
type Session struct {
	SessionID string    `json:"id"`
	UserID    string    `json:"user_id"`
	Token     string    `json:"-"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created"`
}
