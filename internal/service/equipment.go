package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/policy"
)

// EquipmentRepository defines the interface for equipment storage
type EquipmentRepository interface {
	Create(ctx context.Context, e *model.Equipment) error
	GetByID(ctx context.Context, id string) (*model.Equipment, error)
	Update(ctx context.Context, e *model.Equipment) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, filter model.EquipmentFilter, page model.Pagination) (*model.Page[*model.Equipment], error)
}

// ProposalRepository defines the interface for equipment proposal storage
type ProposalRepository interface {
	Create(ctx context.Context, p *model.EquipmentProposal) error
	GetByID(ctx context.Context, id string) (*model.EquipmentProposal, error)
	Update(ctx context.Context, p *model.EquipmentProposal) error
	List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.EquipmentProposal], error)
}

// EquipmentService handles equipment listings and the proposals made on them
type EquipmentService struct {
	repo      EquipmentRepository
	proposals ProposalRepository
	strict    bool
	logger    *zap.Logger
}

// EquipmentServiceConfig holds configuration for the equipment service
type EquipmentServiceConfig struct {
	Repo              EquipmentRepository
	Proposals         ProposalRepository
	StrictTransitions bool
	Logger            *zap.Logger
}

// NewEquipmentService creates a new equipment service
func NewEquipmentService(cfg EquipmentServiceConfig) *EquipmentService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &EquipmentService{
		repo:      cfg.Repo,
		proposals: cfg.Proposals,
		strict:    cfg.StrictTransitions,
		logger:    cfg.Logger.Named("equipment"),
	}
}

// Create lists a new item owned by the actor
func (s *EquipmentService) Create(ctx context.Context, actorID string, props model.EquipmentProps) (*model.Equipment, error) {
	if d := policy.CanCreate(actorID, props.OwnerID); !d.Allowed() {
		return nil, d.Err("equipment")
	}
	props.IsAvailable = true
	e, err := model.NewEquipment(props, model.EntityMeta{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Get returns a listing; listings are public
func (s *EquipmentService) Get(ctx context.Context, id string) (*model.Equipment, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrEquipmentNotFound
	}
	return e, nil
}

// Update changes a listing owned by the actor
func (s *EquipmentService) Update(ctx context.Context, actorID, id string, patch model.EquipmentPatch) (*model.Equipment, error) {
	e, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := policy.CanModify(actorID, e.OwnerID()); !d.Allowed() {
		return nil, d.Err("equipment")
	}
	if err := e.Mutate(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

// Delete removes a listing owned by the actor. Existing proposals keep the
// equipment name they were created with.
func (s *EquipmentService) Delete(ctx context.Context, actorID, id string) error {
	e, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if d := policy.CanDelete(actorID, e.OwnerID()); !d.Allowed() {
		return d.Err("equipment")
	}
	return s.repo.Delete(ctx, id)
}

// Search lists equipment matching the filter
func (s *EquipmentService) Search(ctx context.Context, filter model.EquipmentFilter, page model.Pagination) (*model.Page[*model.Equipment], error) {
	return s.repo.Search(ctx, filter, page.Normalize())
}

// CreateProposal records the acting buyer's offer on a listing. The seller is
// always the listing owner, whatever the request carried.
func (s *EquipmentService) CreateProposal(ctx context.Context, actorID string, props model.EquipmentProposalProps) (*model.EquipmentProposal, error) {
	if d := policy.CanCreate(actorID, props.BuyerID); !d.Allowed() {
		return nil, d.Err("equipment proposal")
	}
	e, err := s.Get(ctx, props.EquipmentID)
	if err != nil {
		return nil, err
	}
	if e.OwnerID() == actorID {
		return nil, ErrOwnEquipment
	}
	if !e.Props.IsAvailable {
		return nil, ErrEquipmentNotOffered
	}

	props.SellerID = e.OwnerID()
	props.EquipmentName = e.Props.Name
	props.Status = ""
	p, err := model.NewEquipmentProposal(props, model.EntityMeta{})
	if err != nil {
		return nil, err
	}
	if err := s.proposals.Create(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("proposal created",
		zap.String("proposal_id", p.ID),
		zap.String("equipment_id", e.ID),
	)
	return p, nil
}

// GetProposal returns a proposal visible to buyer or seller
func (s *EquipmentService) GetProposal(ctx context.Context, actorID, id string) (*model.EquipmentProposal, error) {
	p, err := s.getProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	buyer, seller := p.Parties()
	if d := policy.CanAccessBilateral(actorID, buyer, seller); !d.Allowed() {
		return nil, d.Err("equipment proposal")
	}
	return p, nil
}

// ListProposals returns the actor's proposals as buyer or as seller
func (s *EquipmentService) ListProposals(ctx context.Context, actorID string, req ListRequest) (*model.Page[*model.EquipmentProposal], error) {
	filter, err := partyFilter(actorID, req, model.ProposalMachine, model.RoleBuyer, model.RoleSeller)
	if err != nil {
		return nil, err
	}
	return s.proposals.List(ctx, filter, req.Page.Normalize())
}

// UpdateProposalStatus lets the seller accept or reject a proposal. The buyer
// may only put it back to pending.
func (s *EquipmentService) UpdateProposalStatus(ctx context.Context, actorID, id string, status model.Status) (*model.EquipmentProposal, error) {
	p, err := s.getProposal(ctx, id)
	if err != nil {
		return nil, err
	}
	buyer, seller := p.Parties()
	if d := policy.CanTransitionProposal(actorID, buyer, seller, status); !d.Allowed() {
		return nil, d.Err("equipment proposal")
	}
	if err := p.SetStatus(status, s.strict); err != nil {
		return nil, err
	}
	if err := s.proposals.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *EquipmentService) getProposal(ctx context.Context, id string) (*model.EquipmentProposal, error) {
	p, err := s.proposals.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProposalNotFound
	}
	return p, nil
}
