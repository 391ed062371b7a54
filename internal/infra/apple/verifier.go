package apple

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"server/internal/domain"
)

// Verifier validates Apple identity tokens: RS256 signature against the key
// set, issuer equality, audience equality, and expiry. Each check rejects
// independently; any failure surfaces as domain.ErrInvalidToken.
type Verifier struct {
	audience string
	issuer   string
	keys     KeyProvider
}

// NewVerifier builds a verifier for the given audience (the app's bundle id)
// and issuer. The key provider is injected so tests can use a static set.
func NewVerifier(audience, issuer string, keys KeyProvider) *Verifier {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	return &Verifier{audience: audience, issuer: issuer, keys: keys}
}

// Verify checks the token and returns its verified claims. It has no side
// effects beyond the key provider's cache.
func (v *Verifier) Verify(ctx context.Context, token string) (domain.Claims, error) {
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("missing kid header")
		}
		return v.keys.Key(ctx, kid)
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithAudience(v.audience),
		jwt.WithIssuer(v.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return domain.Claims{}, fmt.Errorf("%w: %s", domain.ErrInvalidToken, err)
	}

	mapClaims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Claims{}, domain.ErrInvalidToken
	}
	sub, _ := mapClaims.GetSubject()
	email, _ := mapClaims["email"].(string)
	return domain.Claims{Subject: sub, Email: email}, nil
}
