package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"server/internal/domain"
)

// stubVerifier resolves tokens from a fixed map; anything else is invalid.
type stubVerifier map[string]domain.Claims

func (s stubVerifier) Verify(_ context.Context, token string) (domain.Claims, error) {
	claims, ok := s[token]
	if !ok {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	return claims, nil
}

func TestAuth(t *testing.T) {
	verifier := stubVerifier{
		"good-token":   {Subject: "alice", Email: "alice@example.com"},
		"no-sub-token": {Email: "ghost@example.com"},
	}

	tests := []struct {
		name       string
		authHeader string
		wantStatus int
		wantError  string
		wantSub    string
	}{
		{name: "no header", wantStatus: http.StatusUnauthorized, wantError: "missing_token"},
		{name: "empty bearer", authHeader: "Bearer ", wantStatus: http.StatusUnauthorized, wantError: "missing_token"},
		{name: "wrong scheme", authHeader: "Basic abc", wantStatus: http.StatusUnauthorized, wantError: "missing_token"},
		{name: "unknown token", authHeader: "Bearer bad-token", wantStatus: http.StatusUnauthorized, wantError: "invalid_token"},
		{name: "token without sub", authHeader: "Bearer no-sub-token", wantStatus: http.StatusUnauthorized, wantError: "missing_sub"},
		{name: "valid token", authHeader: "Bearer good-token", wantStatus: http.StatusOK, wantSub: "alice"},
		{name: "case-insensitive scheme", authHeader: "bearer good-token", wantStatus: http.StatusOK, wantSub: "alice"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var gotSub string
			handler := Auth(verifier)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				claims, ok := ClaimsFromContext(r.Context())
				if !ok {
					t.Fatal("claims missing from context")
				}
				gotSub = claims.Subject
			}))

			req := httptest.NewRequest(http.MethodPost, "/itinerary", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)

			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantError != "" {
				var body map[string]string
				if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
					t.Fatalf("decode body: %v", err)
				}
				if body["error"] != tc.wantError {
					t.Fatalf("error = %q, want %q", body["error"], tc.wantError)
				}
			}
			if gotSub != tc.wantSub {
				t.Fatalf("subject seen by handler = %q, want %q", gotSub, tc.wantSub)
			}
		})
	}
}
