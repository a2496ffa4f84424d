package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
)

// AuthService is the registration and session surface the handler needs
type AuthService interface {
	SignUp(ctx context.Context, req service.SignUpRequest) (*service.AuthResult, error)
	SignIn(ctx context.Context, req service.SignInRequest) (*service.AuthResult, error)
	Refresh(ctx context.Context, refreshToken string) (*identity.Session, error)
	SignOut(ctx context.Context, identityID string) error
	Me(ctx context.Context, identityID string) (*model.Profile, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RefreshRequest represents the refresh endpoint request body
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// SignUp handles POST /v1/auth/signup
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req service.SignUpRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.SignUp(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "sign up"))
		return
	}

	WriteData(w, http.StatusCreated, result, map[string]string{
		"self":    "/v1/auth/me",
		"profile": "/v1/profiles/" + result.Profile.ID,
	})
}

// SignIn handles POST /v1/auth/signin
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req service.SignInRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	result, err := h.authService.SignIn(r.Context(), req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "sign in"))
		return
	}

	WriteData(w, http.StatusOK, result, map[string]string{
		"self":    "/v1/auth/me",
		"profile": "/v1/profiles/" + result.Profile.ID,
	})
}

// Refresh handles POST /v1/auth/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := DecodeJSON(r, &req); err != nil || strings.TrimSpace(req.RefreshToken) == "" {
		WriteError(w, model.NewBadRequestError("refresh_token is required"))
		return
	}

	session, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "refresh session"))
		return
	}

	WriteData(w, http.StatusOK, session, nil)
}

// SignOut handles POST /v1/auth/signout
func (h *AuthHandler) SignOut(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.authService.SignOut(r.Context(), userID); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "sign out"))
		return
	}

	WriteNoContent(w)
}

// Me handles GET /v1/auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	profile, err := h.authService.Me(r.Context(), userID)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, profile, map[string]string{
		"self":    "/v1/auth/me",
		"profile": "/v1/profiles/" + profile.ID,
	})
}
