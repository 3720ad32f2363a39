package handler

import (
	"encoding/json"
	"net/http"
	"time"
)

// SuccessEnvelope is the generic success wrapper.
type SuccessEnvelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// ErrorEnvelope is the generic failure wrapper. Error messages are
// deliberately generic; downstream detail stays in the logs.
type ErrorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// VerifyEnvelope wraps a successful code verification.
type VerifyEnvelope struct {
	Success      bool         `json:"success"`
	User         UserIdentity `json:"user"`
	SessionToken string       `json:"sessionToken"`
}

// UserIdentity is the minimal identity returned to the client.
type UserIdentity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// EntitlementEnvelope reports current subscription status.
type EntitlementEnvelope struct {
	SubscriptionStatus string     `json:"subscription_status"`
	PlanType           string     `json:"plan_type"`
	TrialExpired       bool       `json:"trial_expired"`
	ExpiresAt          *time.Time `json:"expires_at"`
}

// PromoEnvelope wraps a successful promo redemption.
type PromoEnvelope struct {
	Success bool   `json:"success"`
	IsTrial bool   `json:"isTrial"`
	Message string `json:"message"`
}

// IncidentEnvelope wraps a successful incident submission. GCSURL keeps the
// legacy wire name clients already parse.
type IncidentEnvelope struct {
	Success bool   `json:"success"`
	GCSURL  string `json:"gcsUrl"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorEnvelope{Error: msg})
}
