// Copyright (c) 2026 Plume. All rights reserved.

package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/plumeblog/plume/internal/platform/apperr"
	"github.com/plumeblog/plume/internal/platform/ctxkey"
	"github.com/plumeblog/plume/internal/platform/respond"
	"github.com/plumeblog/plume/internal/platform/sec"
)

// TokenVerifier defines the interface needed to verify access tokens in middleware.
//
// # Why an interface?
//
// Defining TokenVerifier here decouples the middleware from [sec.TokenService],
// allowing us to easily inject mocks during unit testing.
type TokenVerifier interface {
	VerifyAccessToken(tokenStr string) (*sec.Claims, error)
}

// AuthenticateLenient extracts and verifies the JWT from the Authorization header.
//
// # Lenient optional auth
//
// This is the single, named place where credential failures degrade to
// anonymous: a missing header, a malformed header, an expired token, and a
// bad signature all leave the request unauthenticated instead of failing it.
// Optional-auth endpoints therefore behave identically whether no token or a
// bad token was presented. Endpoints that require an identity translate
// anonymous into 401 themselves ([request.RequiredClaims]); that translation
// must never be relaxed to inherit this leniency.
//
// # Flow
//  1. Check for 'Authorization: Bearer <token>' header.
//  2. If absent or unusable, request proceeds as anonymous.
//  3. If verifiable, inject [*sec.Claims] into the request context.
func AuthenticateLenient(verifier TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authHeader := request.Header.Get("Authorization")

			// ── 1. Anonymous Access ───────────────────────────────────────────
			if authHeader == "" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 2. Format Check ───────────────────────────────────────────────
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				next.ServeHTTP(writer, request)
				return
			}

			// ── 3. Token Verification ─────────────────────────────────────────
			claims, err := verifier.VerifyAccessToken(parts[1])
			if err != nil {
				// Degrade to anonymous. Required-auth flows reject downstream.
				next.ServeHTTP(writer, request)
				return
			}

			// ── 4. Context Injection ──────────────────────────────────────────
			ctx := context.WithValue(request.Context(), ctxkey.KeyUser, claims)
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

// RequireAuth blocks requests that are not authenticated.
//
// # Usage
//
// Must be registered in the router AFTER [AuthenticateLenient].
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		claims := GetUser(request.Context())
		if claims == nil {
			respond.Error(writer, request, apperr.Unauthorized("No authentication token or invalid token"))
			return
		}
		next.ServeHTTP(writer, request)
	})
}

// GetUser retrieves the [*sec.Claims] from the [context.Context].
//
// # Returns
//   - The claims if the user is authenticated.
//   - nil if the user is anonymous.
func GetUser(ctx context.Context) *sec.Claims {
	claims, ok := ctx.Value(ctxkey.KeyUser).(*sec.Claims)
	if !ok {
		return nil
	}
	return claims
}
