package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/service"
)

// EquipmentService is the equipment listing surface the handler needs
type EquipmentService interface {
	Create(ctx context.Context, actorID string, props model.EquipmentProps) (*model.Equipment, error)
	Get(ctx context.Context, id string) (*model.Equipment, error)
	Update(ctx context.Context, actorID, id string, patch model.EquipmentPatch) (*model.Equipment, error)
	Delete(ctx context.Context, actorID, id string) error
	Search(ctx context.Context, filter model.EquipmentFilter, page model.Pagination) (*model.Page[*model.Equipment], error)
}

// ProposalService is the equipment proposal surface the handler needs
type ProposalService interface {
	CreateProposal(ctx context.Context, actorID string, props model.EquipmentProposalProps) (*model.EquipmentProposal, error)
	GetProposal(ctx context.Context, actorID, id string) (*model.EquipmentProposal, error)
	ListProposals(ctx context.Context, actorID string, req service.ListRequest) (*model.Page[*model.EquipmentProposal], error)
	UpdateProposalStatus(ctx context.Context, actorID, id string, status model.Status) (*model.EquipmentProposal, error)
}

// EquipmentHandler handles equipment listing and proposal endpoints
type EquipmentHandler struct {
	equipmentService EquipmentService
	proposalService  ProposalService
}

// NewEquipmentHandler creates a new equipment handler
func NewEquipmentHandler(equipmentService EquipmentService, proposalService ProposalService) *EquipmentHandler {
	return &EquipmentHandler{
		equipmentService: equipmentService,
		proposalService:  proposalService,
	}
}

// Create handles POST /v1/equipment
func (h *EquipmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var props model.EquipmentProps
	if err := DecodeJSON(r, &props); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if props.OwnerID == "" {
		props.OwnerID = userID
	}

	equipment, err := h.equipmentService.Create(r.Context(), userID, props)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create equipment"))
		return
	}

	WriteData(w, http.StatusCreated, equipment, map[string]string{
		"self": "/v1/equipment/" + equipment.ID,
	})
}

// Search handles GET /v1/equipment?q=&category=&city=&state=&owner_id=&available=&limit=&offset=
func (h *EquipmentHandler) Search(w http.ResponseWriter, r *http.Request) {
	page, err := parsePagination(r)
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid pagination"))
		return
	}

	filter := model.EquipmentFilter{
		Query:    r.URL.Query().Get("q"),
		Category: optionalQuery(r, "category"),
		City:     optionalQuery(r, "city"),
		State:    optionalQuery(r, "state"),
		OwnerID:  optionalQuery(r, "owner_id"),
	}
	if v := optionalQuery(r, "available"); v != nil {
		available, err := strconv.ParseBool(*v)
		if err != nil {
			WriteError(w, model.NewBadRequestError("available must be a boolean"))
			return
		}
		filter.AvailableOnly = available
	}

	result, err := h.equipmentService.Search(r.Context(), filter, page)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "search equipment"))
		return
	}

	WritePage(w, result, page, "/v1/equipment")
}

// Get handles GET /v1/equipment/{equipmentId}
func (h *EquipmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "equipmentId")
	if !ok {
		return
	}

	equipment, err := h.equipmentService.Get(r.Context(), id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, equipment, map[string]string{
		"self":  "/v1/equipment/" + id,
		"owner": "/v1/profiles/" + equipment.Props.OwnerID,
	})
}

// Update handles PATCH /v1/equipment/{equipmentId}
func (h *EquipmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "equipmentId")
	if !ok {
		return
	}

	var patch model.EquipmentPatch
	if err := DecodeJSON(r, &patch); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}

	equipment, err := h.equipmentService.Update(r.Context(), userID, id, patch)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update equipment"))
		return
	}

	WriteData(w, http.StatusOK, equipment, map[string]string{
		"self": "/v1/equipment/" + id,
	})
}

// Delete handles DELETE /v1/equipment/{equipmentId}
func (h *EquipmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "equipmentId")
	if !ok {
		return
	}

	if err := h.equipmentService.Delete(r.Context(), userID, id); err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "delete equipment"))
		return
	}

	WriteNoContent(w)
}

// CreateProposal handles POST /v1/proposals
func (h *EquipmentHandler) CreateProposal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var props model.EquipmentProposalProps
	if err := DecodeJSON(r, &props); err != nil {
		WriteError(w, model.NewBadRequestError("invalid request body"))
		return
	}
	if props.BuyerID == "" {
		props.BuyerID = userID
	}

	proposal, err := h.proposalService.CreateProposal(r.Context(), userID, props)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "create proposal"))
		return
	}

	WriteData(w, http.StatusCreated, proposal, proposalLinks(proposal))
}

// ListProposals handles GET /v1/proposals?role=&status=&from=&to=&limit=&offset=
func (h *EquipmentHandler) ListProposals(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	req, err := parseListRequest(r)
	if err != nil {
		WriteError(w, model.NewBadRequestError("invalid pagination"))
		return
	}

	page, err := h.proposalService.ListProposals(r.Context(), userID, req)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "list proposals"))
		return
	}

	WritePage(w, page, req.Page, "/v1/proposals")
}

// GetProposal handles GET /v1/proposals/{proposalId}
func (h *EquipmentHandler) GetProposal(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "proposalId")
	if !ok {
		return
	}

	proposal, err := h.proposalService.GetProposal(r.Context(), userID, id)
	if err != nil {
		WriteError(w, MapServiceError(err))
		return
	}

	WriteData(w, http.StatusOK, proposal, proposalLinks(proposal))
}

// UpdateProposalStatus handles PATCH /v1/proposals/{proposalId}/status
func (h *EquipmentHandler) UpdateProposalStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	id, ok := pathID(w, r, "proposalId")
	if !ok {
		return
	}
	status, ok := decodeStatus(w, r)
	if !ok {
		return
	}

	proposal, err := h.proposalService.UpdateProposalStatus(r.Context(), userID, id, status)
	if err != nil {
		WriteError(w, MapServiceErrorWithContext(err, "update proposal status"))
		return
	}

	WriteData(w, http.StatusOK, proposal, proposalLinks(proposal))
}

func proposalLinks(p *model.EquipmentProposal) map[string]string {
	return map[string]string{
		"self":      "/v1/proposals/" + p.ID,
		"status":    "/v1/proposals/" + p.ID + "/status",
		"equipment": "/v1/equipment/" + p.Props.EquipmentID,
	}
}
