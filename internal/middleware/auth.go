package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"server/internal/domain"
)

// TokenVerifier is the identity-verification seam. Production wires the
// Apple JWKS verifier; tests inject a stub so no network is involved.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (domain.Claims, error)
}

const claimsKey contextKey = "claims"

// Auth extracts and verifies the bearer identity token, rejecting before any
// handler runs. A verified token whose subject claim is empty is rejected
// too: the subject is the key for every downstream role and quota decision.
func Auth(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				writeAuthError(w, "missing_token")
				return
			}
			claims, err := verifier.Verify(r.Context(), token)
			if err != nil {
				writeAuthError(w, "invalid_token")
				return
			}
			if claims.Subject == "" {
				writeAuthError(w, "missing_sub")
				return
			}
			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext returns the verified claims set by Auth.
func ClaimsFromContext(ctx context.Context) (domain.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(domain.Claims)
	return claims, ok
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func writeAuthError(w http.ResponseWriter, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code})
}
