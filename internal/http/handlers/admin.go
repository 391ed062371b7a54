package handlers

import (
	"encoding/json"
	"net/http"

	"server/internal/domain"
	"server/internal/middleware"
)

// requireAdmin resolves the caller's stored role and writes the failure
// response itself when the caller is not an admin.
func (a *App) requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "missing_token")
		return false
	}
	role, err := a.Roles.Role(r.Context(), claims.Subject)
	if err != nil {
		a.internalError(w, r, err)
		return false
	}
	if role != domain.RoleAdmin {
		a.error(w, http.StatusForbidden, "forbidden")
		return false
	}
	return true
}

type setRoleRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

// AdminSetRole overwrites a subject's role. Only reachable by admins.
func (a *App) AdminSetRole(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}

	var body setRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if body.UserID == "" || body.Role == "" {
		a.error(w, http.StatusUnprocessableEntity, "invalid_request")
		return
	}
	role, ok := domain.ParseRole(body.Role)
	if !ok {
		a.error(w, http.StatusUnprocessableEntity, "invalid_request")
		return
	}

	if err := a.Roles.SetRole(r.Context(), body.UserID, role); err != nil {
		a.internalError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"ok": true})
}

type setAllowlistRequest struct {
	UserID  string `json:"user_id"`
	Allowed *bool  `json:"allowed"`
}

// AdminSetAllowlist flips a subject's allowlist flag. The flag is an
// independent administrative channel and has no effect on quota decisions.
func (a *App) AdminSetAllowlist(w http.ResponseWriter, r *http.Request) {
	if !a.requireAdmin(w, r) {
		return
	}

	var body setAllowlistRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		a.error(w, http.StatusBadRequest, "invalid_json")
		return
	}
	if body.UserID == "" || body.Allowed == nil {
		a.error(w, http.StatusUnprocessableEntity, "invalid_request")
		return
	}

	if err := a.Roles.SetAllowlisted(r.Context(), body.UserID, *body.Allowed); err != nil {
		a.internalError(w, r, err)
		return
	}
	a.json(w, http.StatusOK, map[string]bool{"ok": true})
}
