package middleware

import (
	"context"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/santa/internal/auth"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// HostIDKey is the context key for storing the authenticated host ID.
	HostIDKey contextKey = "host_id"
	// EmailKey is the context key for storing the authenticated host's email.
	EmailKey contextKey = "email"
)

// GetHostID extracts the host ID from the context.
// Returns empty string if not found.
func GetHostID(ctx context.Context) string {
	hostID, _ := ctx.Value(HostIDKey).(string)
	return hostID
}

// GetEmail extracts the host email from the context.
// Returns empty string if not found.
func GetEmail(ctx context.Context) string {
	email, _ := ctx.Value(EmailKey).(string)
	return email
}

// WithHost returns a context carrying the given host identity.
func WithHost(ctx context.Context, hostID, email string) context.Context {
	ctx = context.WithValue(ctx, HostIDKey, hostID)
	return context.WithValue(ctx, EmailKey, email)
}

// bearerToken parses "Bearer <token>".
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireAuth returns a middleware that validates JWT tokens and requires authentication.
// It extracts the token from the Authorization header, validates it, and adds
// the host ID and email to the request context.
//
// Procedures listed in optional accept unauthenticated calls; a valid token is
// still attached to the context when one is sent.
func RequireAuth(jwtManager *auth.JWTManager, optional ...string) connect.UnaryInterceptorFunc {
	skip := make(map[string]bool, len(optional))
	for _, procedure := range optional {
		skip[procedure] = true
	}

	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if skip[req.Spec().Procedure] {
				return OptionalAuth(jwtManager)(next)(ctx, req)
			}

			// Extract Authorization header
			authHeader := req.Header().Get("Authorization")
			if authHeader == "" {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrMissingToken)
			}

			tokenString, ok := bearerToken(authHeader)
			if !ok {
				return nil, connect.NewError(connect.CodeUnauthenticated, auth.ErrInvalidToken)
			}

			// Validate token
			claims, err := jwtManager.Validate(tokenString)
			if err != nil {
				return nil, connect.NewError(connect.CodeUnauthenticated, err)
			}

			return next(WithHost(ctx, claims.HostID, claims.Email), req)
		}
	}
}

// OptionalAuth returns a middleware that validates JWT tokens if present, but allows
// requests without authentication. Useful for endpoints that have different behavior
// for authenticated vs unauthenticated callers.
func OptionalAuth(jwtManager *auth.JWTManager) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			if tokenString, ok := bearerToken(req.Header().Get("Authorization")); ok {
				// Validate token (ignore errors - optional auth)
				if claims, err := jwtManager.Validate(tokenString); err == nil {
					ctx = WithHost(ctx, claims.HostID, claims.Email)
				}
			}

			// Call the next handler (with or without host context)
			return next(ctx, req)
		}
	}
}
