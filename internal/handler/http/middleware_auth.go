// Package http implements the HTTP transport layer of the application.
// It provides middleware, route handlers, and request/response utilities
// for the REST API. Authentication, logging, tracing, and compression
// concerns are all handled at this layer before requests are forwarded to
// the service layer.
package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/laterhq/later-server/internal/logger"
	"github.com/laterhq/later-server/internal/utils"
)

// demoUserHeader identifies the caller when the server runs without a
// token sign key (local development and demo deployments).
const demoUserHeader = "X-Demo-User-ID"

// auth is an HTTP middleware that resolves the calling user.
//
// With a token sign key configured it enforces JWT-based authentication:
// the bearer token from the "Authorization" header is verified and the
// "sub" claim becomes the user ID. Without a sign key the server runs in
// demo mode and trusts the X-Demo-User-ID header instead, falling back to
// the configured demo user when the header is absent; such IDs are never
// account UUIDs, so demo users are always served from the in-memory store.
//
// On success the user ID is stored in the request context under
// [utils.UserIDCtxKey] before delegating to the next handler. Requests
// that cannot be resolved to a user are rejected with HTTP 401.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		var userID string

		if h.app.TokenSignKey == "" {
			userID = strings.TrimSpace(r.Header.Get(demoUserHeader))
			if userID == "" {
				userID = h.app.DemoUserID
			}
			if userID == "" {
				log.Err(ErrMissingDemoUser).Send()
				http.Error(w, ErrMissingDemoUser.Error(), http.StatusUnauthorized)
				return
			}
		} else {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				log.Err(ErrEmptyAuthorizationHeader).Send()
				http.Error(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
				return
			}

			tokenString, err := getTokenFromAuthHeader(authHeader)
			if err != nil {
				log.Err(err).Send()
				http.Error(w, err.Error(), http.StatusUnauthorized)
				return
			}

			token, err := utils.ValidateAndParseJWTToken(tokenString, h.app.TokenSignKey)
			if err != nil {
				log.Err(err).Msg("error occurred during parsing token")
				http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
				return
			}

			userID = token.UserID
		}

		// Store the user's ID in the context so that downstream handlers
		// can retrieve it without re-parsing the token.
		ctx := context.WithValue(r.Context(), utils.UserIDCtxKey, userID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// getTokenFromAuthHeader extracts the bearer token string from a raw
// "Authorization" HTTP header value.
//
// The header is expected to follow the standard format:
//
//	Authorization: <scheme> <token>
//
// It returns the following sentinel errors:
//   - [ErrInvalidAuthorizationHeader] — if the header contains fewer than
//     two space-separated parts (i.e. the token is missing entirely).
//   - [ErrEmptyToken] — if the second part exists but is an empty string.
func getTokenFromAuthHeader(authHeader string) (string, error) {
	parts := strings.Split(authHeader, " ")
	if len(parts) < 2 {
		return "", ErrInvalidAuthorizationHeader
	}

	tokenString := parts[1]
	if tokenString == "" {
		return "", ErrEmptyToken
	}

	return tokenString, nil
}
