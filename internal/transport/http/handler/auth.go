package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ALDWIL/doxrep/internal/application/auth"
	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/ALDWIL/doxrep/internal/pkg/validate"
	"github.com/rs/zerolog"
)

// AuthHandler handles the code-issuance and verification endpoints.
type AuthHandler struct {
	svc auth.Service
	log zerolog.Logger
}

func NewAuthHandler(svc auth.Service, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type sendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type verifyCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

func (h *AuthHandler) SendCode(w http.ResponseWriter, r *http.Request) {
	var req sendCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid email address")
		return
	}

	if err := h.svc.RequestCode(r.Context(), req.Email); err != nil {
		h.log.Error().Err(err).Msg("send code failed")
		writeError(w, http.StatusInternalServerError, "failed to send verification code")
		return
	}
	writeJSON(w, http.StatusOK, SuccessEnvelope{Success: true, Message: "verification code sent"})
}

func (h *AuthHandler) VerifyCode(w http.ResponseWriter, r *http.Request) {
	var req verifyCodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}

	user, token, err := h.svc.VerifyCode(r.Context(), req.Email, req.Code)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid or expired code")
			return
		}
		h.log.Error().Err(err).Msg("verify code failed")
		writeError(w, http.StatusInternalServerError, "verification failed")
		return
	}
	writeJSON(w, http.StatusOK, VerifyEnvelope{
		Success:      true,
		User:         UserIdentity{ID: user.UserID, Email: user.Email},
		SessionToken: token,
	})
}
