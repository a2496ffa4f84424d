package handler

import (
	"context"
	"net/http"

	"github.com/forgo/gigbook/internal/model"
)

// PortfolioService is the portfolio surface the handler needs
type PortfolioService interface {
	Create(ctx context.Context, actorID string, props model.PortfolioItemProps) (*model.PortfolioItem, error)
	Update(ctx context.Context, actorID, id string, patch model.PortfolioItemPatch) (*model.PortfolioItem, error)
	Delete(ctx context.Context, actorID, id string) error
	ListByProfessional(ctx context.Context, professionalID string) ([]*model.PortfolioItem, error)
}

// PortfolioHandler handles portfolio endpoints
type PortfolioHandler struct {
	portfolioService PortfolioService
}

// NewPortfolioHandler creates a new portfolio handler
func NewPortfolioHandler(portfolioService PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// Create handles POST /v1/portfolio
func (h *PortfolioHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var props model.PortfolioItemProps
	if err := DecodeJSON(r, &props); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if props.ProfessionalID == "" {
		props.ProfessionalID = userID
	}

	item, err := h.portfolioService.Create(r.Context(), userID, props)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create portfolio item"))
		return
	}

	WriteData(w, http.StatusCreated, item, map[string]string{
		"self":      "/v1/portfolio/" + item.ID,
		"portfolio": "/v1/professionals/" + item.Props.ProfessionalID + "/portfolio",
	})
}

// ListByProfessional handles GET /v1/professionals/{professionalId}/portfolio
func (h *PortfolioHandler) ListByProfessional(w http.ResponseWriter, r *http.Request) {
	professionalID, ok := pathID(w, r, "professionalId")
	if !ok {
		return
	}

	items, err := h.portfolioService.ListByProfessional(r.Context(), professionalID)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list portfolio"))
		return
	}

	WriteCollection(w, http.StatusOK, items, nil, map[string]string{
		"self": "/v1/professionals/" + professionalID + "/portfolio",
	})
}

// Update handles PATCH /v1/portfolio/{itemId}
func (h *PortfolioHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	var patch model.PortfolioItemPatch
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	item, err := h.portfolioService.Update(r.Context(), userID, id, patch)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update portfolio item"))
		return
	}

	WriteData(w, http.StatusOK, item, map[string]string{
		"self": "/v1/portfolio/" + id,
	})
}

// Delete handles DELETE /v1/portfolio/{itemId}
func (h *PortfolioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "itemId")
	if !ok {
		return
	}

	if err := h.portfolioService.Delete(r.Context(), userID, id); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "delete portfolio item"))
		return
	}

	WriteNoContent(w)
}
