package handler

import (
	"context"
	"net/http"

	"github.com/forgo/gigbook/internal/model"
)

// ReviewService is the review surface the handler needs
type ReviewService interface {
	Create(ctx context.Context, actorID string, props model.ReviewProps) (*model.Review, error)
	ListByProfessional(ctx context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error)
}

// ReviewHandler handles review endpoints
type ReviewHandler struct {
	reviewService ReviewService
}

// NewReviewHandler creates a new review handler
func NewReviewHandler(reviewService ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService}
}

// Create handles POST /v1/reviews
func (h *ReviewHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var props model.ReviewProps
	if err := DecodeJSON(r, &props); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if props.ClientID == "" {
		props.ClientID = userID
	}

	review, err := h.reviewService.Create(r.Context(), userID, props)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create review"))
		return
	}

	WriteData(w, http.StatusCreated, review, map[string]string{
		"professional": "/v1/profiles/" + review.Props.ProfessionalID,
		"reviews":      "/v1/professionals/" + review.Props.ProfessionalID + "/reviews",
	})
}

// ListByProfessional handles GET /v1/professionals/{professionalId}/reviews
func (h *ReviewHandler) ListByProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := pathID(w, r, "professionalId")
	if !ok {
		return
	}
	page, err := parsePagination(r)
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid pagination"))
		return
	}

	result, err := h.reviewService.ListByProfessional(r.Context(), professionalID, page)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list reviews"))
		return
	}

	WritePage(w, result, page, "/v1/professionals/"+professionalID+"/reviews")
}
