package handler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forgo/gigbook/internal/middleware"
	"github.com/forgo/gigbook/internal/model"
)

type staticVerifier map[string]string

func (v staticVerifier) VerifyToken(_ context.Context, token string) (string, error) {
	if id, ok := v[token]; ok {
		return id, nil
	}
	return "", errors.New("unknown token")
}

func newTestMux(t *testing.T, reviews *mockReviewService, dbErr error) *http.ServeMux {
	t.Helper()
	mux := http.NewServeMux()
	RegisterRoutes(mux, Handlers{
		Health:       NewHealthHandler(pingFunc(func(context.Context) error { return dbErr })),
		Auth:         NewAuthHandler(&mockAuthService{}),
		Profile:      NewProfileHandler(nil),
		Availability: NewAvailabilityHandler(nil),
		Booking:      NewBookingHandler(&mockBookingService{}),
		Quote:        NewQuoteRequestHandler(nil),
		Equipment:    NewEquipmentHandler(nil, nil),
		Review:       NewReviewHandler(reviews),
		Portfolio:    NewPortfolioHandler(nil),
	}, middleware.Auth(staticVerifier{"token-carla": "client-1"}))
	return mux
}

func TestRoutes_ProtectedRequireToken(t *testing.T) {
	mux := newTestMux(t, &mockReviewService{}, nil)

	for _, route := range []struct{ method, path string }{
		{http.MethodGet, "/v1/auth/me"},
		{http.MethodPost, "/v1/auth/signout"},
		{http.MethodPatch, "/v1/profiles/p-1"},
		{http.MethodGet, "/v1/availability"},
		{http.MethodPost, "/v1/bookings"},
		{http.MethodGet, "/v1/quotes"},
		{http.MethodPatch, "/v1/proposals/x/status"},
		{http.MethodDelete, "/v1/equipment/e-1"},
		{http.MethodPost, "/v1/reviews"},
		{http.MethodDelete, "/v1/portfolio/i-1"},
	} {
		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(route.method, route.path, nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s", route.method, route.path)
	}
}

func TestRoutes_ReviewFlow(t *testing.T) {
	var actor string
	reviews := &mockReviewService{
		createFunc: func(_ context.Context, actorID string, props model.ReviewProps) (*model.Review, error) {
			actor = actorID
			return model.NewReview(props, model.EntityMeta{ID: "r-1"})
		},
		listFunc: func(_ context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error) {
			return &model.Page[*model.Review]{Items: []*model.Review{}, Total: 0}, nil
		},
	}
	mux := newTestMux(t, reviews, nil)

	req := newRequest(t, http.MethodPost, "/v1/reviews", map[string]interface{}{
		"professional_id": "pro-1",
		"booking_id":      "b-1",
		"client_name":     "Carla",
		"rating":          5,
		"comment":         "great set",
	})
	req.Header.Set("Authorization", "Bearer token-carla")
	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, req)

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "client-1", actor)
	assert.Equal(t, "client-1", decodeData(t, rr)["client_id"])

	// public listing needs no token
	rr = httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/v1/professionals/pro-1/reviews", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestRoutes_Health(t *testing.T) {
	rr := httptest.NewRecorder()
	newTestMux(t, &mockReviewService{}, nil).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	newTestMux(t, &mockReviewService{}, errors.New("down")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
}
