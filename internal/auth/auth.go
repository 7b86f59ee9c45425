// Package auth verifies Cognito bearer tokens against the pool's JWKS and
// enforces per-route role requirements from the cognito:groups claim.
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	pkghttpx "github.com/joa2pac/conexa-star-wars-api/pkg/httpx"
)

type ctxKey string

const claimsKey ctxKey = "auth_claims"

// Claims are the verified token claims handlers may consult.
type Claims struct {
	UserID   string
	Username string
	Groups   []string
}

type Verifier struct {
	keys *KeySet
}

func NewVerifier(keys *KeySet) *Verifier { return &Verifier{keys: keys} }

// Verify parses and validates an RS256 bearer token, resolving its signing
// key from the JWKS by kid.
func (v *Verifier) Verify(ctx context.Context, raw string) (Claims, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		kid, _ := t.Header["kid"].(string)
		if kid == "" {
			return nil, errors.New("token missing kid header")
		}
		return v.keys.Key(ctx, kid)
	}, jwt.WithValidMethods([]string{"RS256"}))
	if err != nil {
		return Claims{}, err
	}

	mc, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Claims{}, errors.New("unexpected claims type")
	}
	c := Claims{}
	if sub, _ := mc["sub"].(string); sub != "" {
		c.UserID = sub
	}
	if username, _ := mc["username"].(string); username != "" {
		c.Username = username
	}
	if groups, ok := mc["cognito:groups"].([]any); ok {
		for _, g := range groups {
			if s, ok := g.(string); ok {
				c.Groups = append(c.Groups, s)
			}
		}
	}
	return c, nil
}

// Require wraps a handler with bearer-token verification and a role check.
// With no roles declared, any valid token passes; otherwise the token's
// groups must intersect the declared roles.
func (v *Verifier) Require(roles ...string) func(http.Handler) http.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				pkghttpx.WriteError(w, r, pkghttpx.Unauthorized("missing bearer token", nil))
				return
			}
			claims, err := v.Verify(r.Context(), raw)
			if err != nil {
				pkghttpx.WriteError(w, r, pkghttpx.Unauthorized("invalid token", err))
				return
			}
			if len(allowed) > 0 && !intersects(claims.Groups, allowed) {
				pkghttpx.WriteError(w, r, pkghttpx.Forbidden("insufficient role", nil))
				return
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return h[7:]
	}
	return ""
}

func intersects(groups []string, allowed map[string]struct{}) bool {
	for _, g := range groups {
		if _, ok := allowed[g]; ok {
			return true
		}
	}
	return false
}

// WithClaims stores verified claims on the context.
func WithClaims(ctx context.Context, c Claims) context.Context {
	return context.WithValue(ctx, claimsKey, c)
}

// FromContext fetches the verified claims, if any.
func FromContext(ctx context.Context) (Claims, bool) {
	c, ok := ctx.Value(claimsKey).(Claims)
	return c, ok
}
