package handlers

import (
	"net/http"

	"server/internal/middleware"
)

type verifyResponse struct {
	Sub   string `json:"sub"`
	Email any    `json:"email"`
	Role  string `json:"role"`
}

// AuthVerify confirms the caller's identity and applies the one-time pro
// promotion: a first successful sign-in elevates a new subject to pro,
// repeat calls are idempotent and admins are never downgraded.
func (a *App) AuthVerify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		a.error(w, http.StatusUnauthorized, "missing_token")
		return
	}

	role, err := a.Roles.EnsurePro(r.Context(), claims.Subject)
	if err != nil {
		a.internalError(w, r, err)
		return
	}

	resp := verifyResponse{Sub: claims.Subject, Role: string(role)}
	if claims.Email != "" {
		resp.Email = claims.Email
	}
	a.json(w, http.StatusOK, resp)
}
