package handler

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
	"github.com/forgo/gigbook/pkg/jwt"
)

func TestMapServiceError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"invalid credentials", service.ErrInvalidCredentials, http.StatusUnauthorized},
		{"expired refresh token", identity.ErrRefreshTokenExpired, http.StatusUnauthorized},
		{"expired access token", jwt.ErrTokenExpired, http.StatusUnauthorized},
		{"email taken by identity store", identity.ErrEmailTaken, http.StatusConflict},
		{"email taken", service.ErrEmailAlreadyExists, http.StatusConflict},
		{"review exists", service.ErrReviewExists, http.StatusConflict},
		{"transition", fmt.Errorf("booking: %w", model.ErrInvalidTransition), http.StatusUnprocessableEntity},
		{"validation", service.ErrOwnEquipment, http.StatusUnprocessableEntity},
		{"not found", service.ErrEquipmentNotFound, http.StatusNotFound},
		{"forbidden", service.ErrReviewBookingClient, http.StatusForbidden},
		{"internal", fmt.Errorf("%w: db down", model.ErrInternal), http.StatusInternalServerError},
		{"unknown", assert.AnError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pd := MapServiceError(tt.err)
			require.NotNil(t, pd)
			assert.Equal(t, tt.wantStatus, pd.Status)
		})
	}
}

func TestMapServiceError_Codes(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want model.ErrorCode
	}{
		{"login failed", identity.ErrInvalidCredentials, model.ErrCodeLoginFailed},
		{"access token expired", jwt.ErrTokenExpired, model.ErrCodeTokenExpired},
		{"refresh token expired", identity.ErrRefreshTokenExpired, model.ErrCodeTokenExpired},
		{"refresh token revoked", identity.ErrRefreshTokenRevoked, model.ErrCodeTokenInvalid},
		{"access token invalid", identity.ErrInvalidAccessToken, model.ErrCodeTokenInvalid},
		{"email taken", identity.ErrEmailTaken, model.ErrCodeAlreadyExists},
		{"review exists", service.ErrReviewExists, model.ErrCodeConflict},
		{"not found", service.ErrBookingNotFound, model.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MapServiceError(tt.err).Code)
		})
	}
}

func TestMapServiceError_Nil(t *testing.T) {
	assert.Nil(t, MapServiceError(nil))
}

func TestMapServiceError_InvalidPropsListsFields(t *testing.T) {
	_, err := model.NewBooking(model.BookingProps{}, model.EntityMeta{})
	require.Error(t, err)

	pd := MapServiceError(err)
	assert.Equal(t, http.StatusUnprocessableEntity, pd.Status)
	assert.NotEmpty(t, pd.Errors)
	fields := make([]string, 0, len(pd.Errors))
	for _, f := range pd.Errors {
		fields = append(fields, f.Field)
	}
	assert.Contains(t, fields, "professional_id")
}

func TestMapServiceErrorWithContext_HidesInternalDetail(t *testing.T) {
	pd := MapServiceErrorWithContext(fmt.Errorf("%w: surreal: connection refused", model.ErrInternal), "create booking")
	assert.Equal(t, "create booking: an unexpected error occurred", pd.Detail)
	assert.NotContains(t, pd.Detail, "surreal")
}
