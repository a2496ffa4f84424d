package handler

import (
	"context"
	"net/http"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
)

// QuoteRequestService is the quote request surface the handler needs
type QuoteRequestService interface {
	Create(ctx context.Context, actorID string, props model.QuoteRequestProps) (*model.QuoteRequest, error)
	Get(ctx context.Context, actorID, id string) (*model.QuoteRequest, error)
	List(ctx context.Context, actorID string, req service.ListRequest) (*model.Page[*model.QuoteRequest], error)
	UpdateStatus(ctx context.Context, actorID, id string, status model.Status) (*model.QuoteRequest, error)
}

// QuoteRequestHandler handles quote request endpoints
type QuoteRequestHandler struct {
	quoteService QuoteRequestService
}

// NewQuoteRequestHandler creates a new quote request handler
func NewQuoteRequestHandler(quoteService QuoteRequestService) *QuoteRequestHandler {
	return &QuoteRequestHandler{quoteService: quoteService}
}

// Create handles POST /v1/quotes
func (h *QuoteRequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var props model.QuoteRequestProps
	if err := DecodeJSON(r, &props); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if props.ClientID == "" {
		props.ClientID = userID
	}

	quote, err := h.quoteService.Create(r.Context(), userID, props)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create quote request"))
		return
	}

	WriteData(w, http.StatusCreated, quote, quoteLinks(quote.ID))
}

// List handles GET /v1/quotes?role=&status=&from=&to=&limit=&offset=
func (h *QuoteRequestHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	req, err := parseListRequest(r)
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid pagination"))
		return
	}

	page, err := h.quoteService.List(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list quote requests"))
		return
	}

	WritePage(w, page, req.Page, "/v1/quotes")
}

// Get handles GET /v1/quotes/{quoteId}
func (h *QuoteRequestHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "quoteId")
	if !ok {
		return
	}

	quote, err := h.quoteService.Get(r.Context(), userID, id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, quote, quoteLinks(id))
}

// UpdateStatus handles PATCH /v1/quotes/{quoteId}/status
func (h *QuoteRequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "quoteId")
	if !ok {
		return
	}
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}

	quote, err := h.quoteService.UpdateStatus(r.Context(), userID, id, status)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update quote request status"))
		return
	}

	WriteData(w, http.StatusOK, quote, quoteLinks(id))
}

func quoteLinks(id string) map[string]string {
	return map[string]string{
		"self":   "/v1/quotes/" + id,
		"status": "/v1/quotes/" + id + "/status",
	}
}
