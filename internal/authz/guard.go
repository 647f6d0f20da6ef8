// Package authz resolves the caller identity from the bearer token and gates
// handlers on it. Ownership checks belong to each service's app layer.
package authz

import (
	"net/http"
	"strings"

	"jobboard/internal/apperr"
	"jobboard/internal/httpapi"
	"jobboard/internal/usertoken"
	"jobboard/internal/util"
)

var (
	ErrNotAuthenticated = apperr.NewUnauthorized("Not authenticated")
	ErrInvalidToken     = apperr.NewUnauthorized("Invalid token")
)

// Handler receives the verified claims of the caller.
type Handler func(http.ResponseWriter, *http.Request, usertoken.Claims)

// Guard wraps handlers with token verification.
type Guard struct {
	verifier usertoken.Verifier
}

// NewGuard builds a guard around any Verifier implementation.
func NewGuard(verifier usertoken.Verifier) *Guard {
	return &Guard{verifier: verifier}
}

// Authenticated admits any caller holding a valid token.
func (g *Guard) Authenticated(next Handler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := g.identify(r)
		if err != nil {
			w.Header().Set("WWW-Authenticate", "Bearer")
			httpapi.WriteError(w, r, err)
			return
		}
		next(w, r, claims)
	}
}

// RequireRole admits callers whose role claim equals role; others get 403
// with forbidden as the detail.
func (g *Guard) RequireRole(role, forbidden string, next Handler) http.HandlerFunc {
	return g.Authenticated(func(w http.ResponseWriter, r *http.Request, claims usertoken.Claims) {
		if claims.Role != role {
			httpapi.WriteError(w, r, apperr.NewForbidden(forbidden))
			return
		}
		next(w, r, claims)
	})
}

func (g *Guard) identify(r *http.Request) (usertoken.Claims, error) {
	token, ok := BearerToken(r)
	if !ok {
		return usertoken.Claims{}, ErrNotAuthenticated
	}
	claims, err := g.verifier.Verify(token)
	if err != nil {
		util.LoggerFromContext(r.Context()).Debug("token rejected", "path", r.URL.Path, "err", err)
		return usertoken.Claims{}, ErrInvalidToken
	}
	return claims, nil
}

// BearerToken extracts the token from "Authorization: Bearer <token>".
func BearerToken(r *http.Request) (string, bool) {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return "", false
	}
	return token, true
}
