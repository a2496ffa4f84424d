package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/testing/helpers"
)

type verifierFunc func(ctx context.Context, token string) (string, error)

func (f verifierFunc) VerifyToken(ctx context.Context, token string) (string, error) {
	return f(ctx, token)
}

func acceptToken(want, userID string) TokenVerifier {
	return verifierFunc(func(_ context.Context, token string) (string, error) {
		if token != want {
			return "", errors.New("bad token")
		}
		return userID, nil
	})
}

func echoUserID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(GetUserID(r.Context())))
	})
}

func TestAuth(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{"valid token", "Bearer good", http.StatusOK, "user-1"},
		{"lowercase scheme", "bearer good", http.StatusOK, "user-1"},
		{"missing header", "", http.StatusUnauthorized, ""},
		{"wrong scheme", "Basic good", http.StatusUnauthorized, ""},
		{"empty token", "Bearer ", http.StatusUnauthorized, ""},
		{"rejected token", "Bearer bad", http.StatusUnauthorized, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			h := Auth(acceptToken("good", "user-1"))(echoUserID())

			req := httptest.NewRequest(http.MethodGet, "/v1/auth/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantBody, rr.Body.String())
			} else {
				assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))
			}
		})
	}
}

func TestAuth_EmptyIdentityRejected(t *testing.T) {
	t.Parallel()
	verifier := verifierFunc(func(context.Context, string) (string, error) { return "", nil })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer x")
	rr := httptest.NewRecorder()
	Auth(verifier)(echoUserID()).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestOptionalAuth(t *testing.T) {
	t.Parallel()
	h := OptionalAuth(acceptToken("good", "user-1"))(echoUserID())

	for header, want := range map[string]string{
		"":            "",
		"Bearer good": "user-1",
		"Bearer bad":  "",
	} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rr := httptest.NewRecorder()
		h.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code, header)
		assert.Equal(t, want, rr.Body.String(), header)
	}
}

func TestGetUserID_Empty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "", GetUserID(context.Background()))
	assert.Equal(t, "u", GetUserID(WithUserID(context.Background(), "u")))
}

func TestAuth_SignedTokens(t *testing.T) {
	jh := helpers.NewJWTHelper(t)
	verifier := verifierFunc(func(_ context.Context, token string) (string, error) {
		claims, err := jh.Service.Validate(token)
		if err != nil {
			return "", err
		}
		return claims.IdentityID(), nil
	})
	h := Auth(verifier)(echoUserID())

	rec := helpers.NewRequest(t, http.MethodGet, "/v1/auth/me").
		WithToken(jh.GenerateToken(t, "pro-1", model.UserTypeProfessional)).
		Do(h)
	helpers.AssertStatus(t, rec, http.StatusOK)
	assert.Equal(t, "pro-1", rec.Body.String())

	rec = helpers.NewRequest(t, http.MethodGet, "/v1/auth/me").
		WithToken(jh.GenerateExpiredToken(t, "pro-1")).
		Do(h)
	helpers.AssertProblemDetails(t, rec, http.StatusUnauthorized, model.ErrCodeTokenExpired)

	rec = helpers.NewRequest(t, http.MethodGet, "/v1/auth/me").
		WithToken("not-a-jwt").
		Do(h)
	helpers.AssertProblemDetails(t, rec, http.StatusUnauthorized, model.ErrCodeTokenInvalid)
}
