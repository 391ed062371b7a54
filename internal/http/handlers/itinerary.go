package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"server/internal/domain"
	"server/internal/middleware"
	"server/internal/validation"
)

type itineraryResponse struct {
	Draft     domain.Draft `json:"draft"`
	Remaining *int         `json:"remaining"`
}

// CreateItinerary runs the full generation pipeline: role lookup, quota
// consumption, body validation, provider call. The quota is consumed before
// the body is read, so a malformed request still spends a free-tier use.
func (a *App) CreateItinerary(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "missing_token")
		return
	}

	role, err := a.Roles.Role(r.Context(), claims.Subject)
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	status, err := a.Quota.Consume(r.Context(), claims.Subject, role, time.Now())
	if err != nil {
		a.internalError(w, r, err)
		return
	}
	if !status.Allowed {
		a.error(w, http.StatusTooManyRequests, "quota_exceeded")
		return
	}

	var req domain.ItineraryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if ok, details := validation.ValidateItinerary(req); !ok {
		a.json(w, http.StatusUnprocessableEntity, map[string]any{
			"error":   "invalid_request",
			"details": details,
		})
		return
	}

	draft, err := a.Gateway.CreateItinerary(r.Context(), req)
	if err != nil {
		a.Logger.Warn().Err(err).Str("sub", claims.Subject).Msg("generation failed")
		a.error(w, http.StatusBadGateway, "openai_unavailable")
		return
	}

	a.json(w, http.StatusOK, itineraryResponse{Draft: draft, Remaining: status.Remaining})
}
