package handler

import (
	"encoding/json"
	"net/http"

	"github.com/ALDWIL/doxrep/internal/application/incident"
	"github.com/ALDWIL/doxrep/internal/domain"
	"github.com/ALDWIL/doxrep/internal/transport/http/middleware"
	"github.com/rs/zerolog"
)

// IncidentHandler handles incident-report submissions.
type IncidentHandler struct {
	svc incident.Service
	log zerolog.Logger
}

func NewIncidentHandler(svc incident.Service, log zerolog.Logger) *IncidentHandler {
	return &IncidentHandler{svc: svc, log: log}
}

func (h *IncidentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var payload domain.IncidentPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	url, err := h.svc.Submit(r.Context(), claims.UserID, payload)
	if err != nil {
		h.log.Error().Err(err).Str("user_id", claims.UserID).Msg("incident submission failed")
		writeError(w, http.StatusInternalServerError, "failed to create incident")
		return
	}
	writeJSON(w, http.StatusOK, IncidentEnvelope{
		Success: true,
		GCSURL:  url,
		Message: "Incident report created and stored",
	})
}
