package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/pkg/jwt"
)

// TokenVerifier resolves an access token to an identity id
type TokenVerifier interface {
	VerifyToken(ctx context.Context, token string) (string, error)
}

// Auth rejects requests without a valid bearer token and stores the caller's
// identity id in the request context
func Auth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Authorization") == "" {
				model.NewUnauthorizedError("missing authorization header").WriteJSON(w)
				return
			}
			token, ok := bearerToken(r)
			if !ok {
				model.NewUnauthorizedError("invalid authorization header format").WriteJSON(w)
				return
			}

			userID, err := verifier.VerifyToken(r.Context(), token)
			if errors.Is(err, jwt.ErrTokenExpired) {
				model.NewUnauthorizedError("token expired").WithCode(model.ErrCodeTokenExpired).WriteJSON(w)
				return
			}
			if err != nil || userID == "" {
				model.NewUnauthorizedError("invalid token").WithCode(model.ErrCodeTokenInvalid).WriteJSON(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// OptionalAuth is like Auth but lets anonymous requests through.
// An invalid token is treated as no token.
func OptionalAuth(verifier TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			userID, err := verifier.VerifyToken(r.Context(), token)
			if err != nil || userID == "" {
				next.ServeHTTP(w, r)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID returns a context carrying the authenticated identity id
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, UserIDKey, userID)
}

// GetUserID extracts the user ID from context
func GetUserID(ctx context.Context) string {
	if id, ok := ctx.Value(UserIDKey).(string); ok {
		return id
	}
	return ""
}
