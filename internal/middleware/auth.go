// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"practicehub/internal/token"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const (
	// IdentityKey is the context key for the authenticated identity.
	IdentityKey contextKey = "identity"
)

// LoadIdentity resolves the bearer token from the Authorization header and
// stores the identity in the request context. This middleware does NOT
// enforce authentication — it just loads the identity if the token is valid,
// so public endpoints can serve viewer-specific fields when available.
func LoadIdentity(tokens *token.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id, err := tokens.Get(r.Context(), BearerToken(r))
			if err != nil {
				// Log-free pass-through — treat as unauthenticated.
				next.ServeHTTP(w, r)
				return
			}

			if id != nil {
				ctx := context.WithValue(r.Context(), IdentityKey, id)
				r = r.WithContext(ctx)
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth rejects unauthenticated requests with 401.
// Must be applied after LoadIdentity in the middleware chain.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if IdentityFromCtx(r.Context()) == nil {
			writeJSONError(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireReviewer returns 403 unless the authenticated user holds the
// reviewer or admin role. Must be applied after RequireAuth.
func RequireReviewer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := IdentityFromCtx(r.Context())
		if id == nil || !id.CanReview() {
			writeJSONError(w, http.StatusForbidden, "reviewer role required")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// IdentityFromCtx extracts the identity from the request context.
// Returns nil if no valid token was presented.
func IdentityFromCtx(ctx context.Context) *token.Identity {
	id, _ := ctx.Value(IdentityKey).(*token.Identity)
	return id
}

// BearerToken extracts the token from an "Authorization: Bearer x" header.
func BearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if !strings.HasPrefix(h, prefix) {
		return ""
	}
	return strings.TrimSpace(h[len(prefix):])
}
