package handler

import (
	"context"
	"net/http"

	"github.com/forgo/gigbook/internal/model"
)

// AvailabilityService is the availability surface the handler needs
type AvailabilityService interface {
	Create(ctx context.Context, actorID string, props model.AvailabilityProps) (*model.Availability, error)
	Update(ctx context.Context, actorID, id string, patch model.AvailabilityPatch) (*model.Availability, error)
	Delete(ctx context.Context, actorID, id string) error
	ListByProfessional(ctx context.Context, professionalID string, dates model.DateRange) ([]*model.Availability, error)
}

// AvailabilityHandler handles availability endpoints
type AvailabilityHandler struct {
	availabilityService AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(availabilityService AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{availabilityService: availabilityService}
}

// Create handles POST /v1/availability
func (h *AvailabilityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var props model.AvailabilityProps
	if err := DecodeJSON(r, &props); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if props.ProfessionalID == "" {
		props.ProfessionalID = userID
	}

	availability, err := h.availabilityService.Create(r.Context(), userID, props)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create availability"))
		return
	}

	WriteData(w, http.StatusCreated, availability, map[string]string{
		"self": "/v1/availability/" + availability.ID,
	})
}

// List handles GET /v1/availability?professional_id=&from=&to=
// Without professional_id the caller's own calendar is listed.
func (h *AvailabilityHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	professionalID := r.URL.Query().Get("professional_id")
	if professionalID == "" {
		professionalID = userID
	}

	items, err := h.availabilityService.ListByProfessional(r.Context(), professionalID, parseDateRange(r))
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list availability"))
		return
	}

	WriteCollection(w, http.StatusOK, items, nil, map[string]string{
		"self": "/v1/availability?professional_id=" + professionalID,
	})
}

// Update handles PATCH /v1/availability/{availabilityId}
func (h *AvailabilityHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "availabilityId")
	if !ok {
		return
	}

	var patch model.AvailabilityPatch
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	availability, err := h.availabilityService.Update(r.Context(), userID, id, patch)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update availability"))
		return
	}

	WriteData(w, http.StatusOK, availability, map[string]string{
		"self": "/v1/availability/" + id,
	})
}

// Delete handles DELETE /v1/availability/{availabilityId}
func (h *AvailabilityHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "availabilityId")
	if !ok {
		return
	}

	if err := h.availabilityService.Delete(r.Context(), userID, id); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "delete availability"))
		return
	}

	WriteNoContent(w)
}
