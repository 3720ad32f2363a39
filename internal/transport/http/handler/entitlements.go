package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ALDWIL/doxrep/internal/application/entitlement"
	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/ALDWIL/doxrep/internal/transport/http/middleware"
	"github.com/rs/zerolog"
)

// EntitlementHandler handles subscription-status queries and promo redemption.
type EntitlementHandler struct {
	svc entitlement.Service
	log zerolog.Logger
}

func NewEntitlementHandler(svc entitlement.Service, log zerolog.Logger) *EntitlementHandler {
	return &EntitlementHandler{svc: svc, log: log}
}

type redeemRequest struct {
	PromoCode string `json:"promoCode"`
}

func (h *EntitlementHandler) Check(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	ent, err := h.svc.Check(r.Context(), claims.UserID)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("subscription check failed")
		writeError(w, http.StatusInternalServerError, "failed to check subscription")
		return
	}
	writeJSON(w, http.StatusOK, EntitlementEnvelope{
		SubscriptionStatus: ent.Status,
		PlanType:           ent.PlanType,
		TrialExpired:       ent.TrialExpired,
		ExpiresAt:          ent.ExpiresAt,
	})
}

func (h *EntitlementHandler) Redeem(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req redeemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	isTrial, err := h.svc.Redeem(r.Context(), claims.UserID, req.PromoCode)
	if err != nil {
		// One generic message for every rejection reason; the response must
		// not help a caller enumerate valid codes.
		switch {
		case errors.Is(err, domain.ErrBadRequest):
			writeError(w, http.StatusBadRequest, "Code not valid")
		case errors.Is(err, domain.ErrNotFound):
			writeError(w, http.StatusNotFound, "Code not valid")
		default:
			h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("promo redemption failed")
			writeError(w, http.StatusInternalServerError, "Code not valid")
		}
		return
	}

	msg := "Promo code applied successfully! You now have Premium access."
	if isTrial {
		msg = "Promo code applied! You now have a 1-month free trial."
	}
	writeJSON(w, http.StatusOK, PromoEnvelope{Success: true, IsTrial: isTrial, Message: msg})
}
