package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/policy"
)

// QuoteRequestRepository defines the interface for quote request storage
type QuoteRequestRepository interface {
	Create(ctx context.Context, q *model.QuoteRequest) error
	GetByID(ctx context.Context, id string) (*model.QuoteRequest, error)
	Update(ctx context.Context, q *model.QuoteRequest) error
	List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.QuoteRequest], error)
}

// QuoteRequestService handles price estimate requests
type QuoteRequestService struct {
	repo     QuoteRequestRepository
	profiles ProfileRepository
	strict   bool
	logger   *zap.Logger
}

// QuoteRequestServiceConfig holds configuration for the quote request service
type QuoteRequestServiceConfig struct {
	Repo              QuoteRequestRepository
	Profiles          ProfileRepository
	StrictTransitions bool
	Logger            *zap.Logger
}

// NewQuoteRequestService creates a new quote request service
func NewQuoteRequestService(cfg QuoteRequestServiceConfig) *QuoteRequestService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &QuoteRequestService{
		repo:     cfg.Repo,
		profiles: cfg.Profiles,
		strict:   cfg.StrictTransitions,
		logger:   cfg.Logger.Named("quote"),
	}
}

// Create asks a professional for a quote on behalf of the acting client
func (s *QuoteRequestService) Create(ctx context.Context, actorID string, props model.QuoteRequestProps) (*model.QuoteRequest, error) {
	if d := policy.CanCreate(actorID, props.ClientID); !d.Allowed() {
		return nil, d.Err("quote request")
	}
	pro, err := requireProfessional(ctx, s.profiles, props.ProfessionalID)
	if err != nil {
		return nil, err
	}

	props.ProfessionalName = pro.Props.DisplayName
	props.Status = ""
	q, err := model.NewQuoteRequest(props, model.EntityMeta{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Get returns a quote request visible to either counterpart
func (s *QuoteRequestService) Get(ctx context.Context, actorID, id string) (*model.QuoteRequest, error) {
	q, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	pro, client := q.Parties()
	if d := policy.CanAccessBilateral(actorID, pro, client); !d.Allowed() {
		return nil, d.Err("quote request")
	}
	return q, nil
}

// List returns the actor's quote requests as client or as professional
func (s *QuoteRequestService) List(ctx context.Context, actorID string, req ListRequest) (*model.Page[*model.QuoteRequest], error) {
	filter, err := partyFilter(actorID, req, model.QuoteRequestMachine, model.RoleClient, model.RoleProfessional)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter, req.Page.Normalize())
}

// UpdateStatus moves a quote request to a new status
func (s *QuoteRequestService) UpdateStatus(ctx context.Context, actorID, id string, status model.Status) (*model.QuoteRequest, error) {
	q, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	pro, client := q.Parties()
	if d := policy.CanTransitionBilateral(actorID, pro, client); !d.Allowed() {
		return nil, d.Err("quote request")
	}
	if err := q.SetStatus(status, s.strict); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, q); err != nil {
		return nil, err
	}
	s.logger.Debug("quote request status changed",
		zap.String("quote_id", q.ID),
		zap.String("status", string(status)),
	)
	return q, nil
}

func (s *QuoteRequestService) get(ctx context.Context, id string) (*model.QuoteRequest, error) {
	q, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if q == nil {
		return nil, ErrQuoteRequestNotFound
	}
	return q, nil
}
