package handler

import (
	"context"
	"net/http"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
)

// StatusRequest is the body of every status change endpoint
type StatusRequest struct {
	Status model.Status `json:"status"`
}

func decodeStatus(w http.ResponseWriter, r *http.Request) (model.Status, bool) {
	var req StatusRequest
	if err := DecodeJSON(r, &req); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return "", false
	}
	if req.Status == "" {
		WriteError(w, model.NewValidationError([]model.FieldError{{Field: "status", Message: "status is required"}}))
		return "", false
	}
	return req.Status, true
}

// BookingService is the booking surface the handler needs
type BookingService interface {
	Create(ctx context.Context, actorID string, props model.BookingProps) (*model.Booking, error)
	Get(ctx context.Context, actorID, id string) (*model.Booking, error)
	List(ctx context.Context, actorID string, req service.ListRequest) (*model.Page[*model.Booking], error)
	UpdateStatus(ctx context.Context, actorID, id string, status model.Status) (*model.Booking, error)
}

// BookingHandler handles booking endpoints
type BookingHandler struct {
	bookingService BookingService
}

// NewBookingHandler creates a new booking handler
func NewBookingHandler(bookingService BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// Create handles POST /v1/bookings
func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var props model.BookingProps
	if err := DecodeJSON(r, &props); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if props.ClientID == "" {
		props.ClientID = userID
	}

	booking, err := h.bookingService.Create(r.Context(), userID, props)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create booking"))
		return
	}

	WriteData(w, http.StatusCreated, booking, bookingLinks(booking.ID))
}

// List handles GET /v1/bookings?role=&status=&from=&to=&limit=&offset=
func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	req, err := parseListRequest(r)
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid pagination"))
		return
	}

	page, err := h.bookingService.List(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list bookings"))
		return
	}

	WritePage(w, page, req.Page, "/v1/bookings")
}

// Get handles GET /v1/bookings/{bookingId}
func (h *BookingHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "bookingId")
	if !ok {
		return
	}

	booking, err := h.bookingService.Get(r.Context(), userID, id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, booking, bookingLinks(id))
}

// UpdateStatus handles PATCH /v1/bookings/{bookingId}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "bookingId")
	if !ok {
		return
	}
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}

	booking, err := h.bookingService.UpdateStatus(r.Context(), userID, id, status)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update booking status"))
		return
	}

	WriteData(w, http.StatusOK, booking, bookingLinks(id))
}

func bookingLinks(id string) map[string]string {
	return map[string]string{
		"self":   "/v1/bookings/" + id,
		"status": "/v1/bookings/" + id + "/status",
	}
}
