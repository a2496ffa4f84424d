package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/middleware"
	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
)

// ============================================================================
// Mock AuthService
// ============================================================================

type mockAuthService struct {
	signUpFunc  func(ctx context.Context, req service.SignUpRequest) (*service.AuthResult, error)
	signInFunc  func(ctx context.Context, req service.SignInRequest) (*service.AuthResult, error)
	refreshFunc func(ctx context.Context, token string) (*identity.Session, error)
	signOutFunc func(ctx context.Context, id string) error
	meFunc      func(ctx context.Context, id string) (*model.Profile, error)
}

func (m *mockAuthService) SignUp(ctx context.Context, req service.SignUpRequest) (*service.AuthResult, error) {
	return m.signUpFunc(ctx, req)
}

func (m *mockAuthService) SignIn(ctx context.Context, req service.SignInRequest) (*service.AuthResult, error) {
	return m.signInFunc(ctx, req)
}

func (m *mockAuthService) Refresh(ctx context.Context, token string) (*identity.Session, error) {
	return m.refreshFunc(ctx, token)
}

func (m *mockAuthService) SignOut(ctx context.Context, id string) error {
	if m.signOutFunc != nil {
		return m.signOutFunc(ctx, id)
	}
	return nil
}

func (m *mockAuthService) Me(ctx context.Context, id string) (*model.Profile, error) {
	return m.meFunc(ctx, id)
}

// ============================================================================
// Mock BookingService
// ============================================================================

type mockBookingService struct {
	createFunc       func(ctx context.Context, actorID string, props model.BookingProps) (*model.Booking, error)
	getFunc          func(ctx context.Context, actorID, id string) (*model.Booking, error)
	listFunc         func(ctx context.Context, actorID string, req service.ListRequest) (*model.Page[*model.Booking], error)
	updateStatusFunc func(ctx context.Context, actorID, id string, status model.Status) (*model.Booking, error)
}

func (m *mockBookingService) Create(ctx context.Context, actorID string, props model.BookingProps) (*model.Booking, error) {
	return m.createFunc(ctx, actorID, props)
}

func (m *mockBookingService) Get(ctx context.Context, actorID, id string) (*model.Booking, error) {
	return m.getFunc(ctx, actorID, id)
}

func (m *mockBookingService) List(ctx context.Context, actorID string, req service.ListRequest) (*model.Page[*model.Booking], error) {
	return m.listFunc(ctx, actorID, req)
}

func (m *mockBookingService) UpdateStatus(ctx context.Context, actorID, id string, status model.Status) (*model.Booking, error) {
	return m.updateStatusFunc(ctx, actorID, id, status)
}

// ============================================================================
// Mock ReviewService
// ============================================================================

type mockReviewService struct {
	createFunc func(ctx context.Context, actorID string, props model.ReviewProps) (*model.Review, error)
	listFunc   func(ctx context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error)
}

func (m *mockReviewService) Create(ctx context.Context, actorID string, props model.ReviewProps) (*model.Review, error) {
	return m.createFunc(ctx, actorID, props)
}

func (m *mockReviewService) ListByProfessional(ctx context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error) {
	return m.listFunc(ctx, professionalID, page)
}

// ============================================================================
// Test Helpers
// ============================================================================

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func newRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	return httptest.NewRequest(method, path, reader)
}

func asUser(r *http.Request, userID string) *http.Request {
	return r.WithContext(middleware.WithUserID(r.Context(), userID))
}

func decodeData(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp.Data
}

func decodeProblem(t *testing.T, rr *httptest.ResponseRecorder) model.ProblemDetails {
	t.Helper()
	var pd model.ProblemDetails
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&pd))
	return pd
}

func testBooking(t *testing.T, id string) *model.Booking {
	t.Helper()
	b, err := model.NewBooking(model.BookingProps{
		ProfessionalID:   "pro-1",
		ProfessionalName: "DJ Lua",
		ClientID:         "client-1",
		ClientName:       "Carla",
		ClientEmail:      "carla@example.com",
		ServiceType:      "dj set",
		Location:         "Recife",
		Date:             "2026-12-05",
		StartTime:        "21:00",
	}, model.EntityMeta{ID: id})
	require.NoError(t, err)
	return b
}

func decodeJSONBody(rr *httptest.ResponseRecorder, v interface{}) error {
	return json.NewDecoder(rr.Body).Decode(v)
}
