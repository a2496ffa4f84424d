package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/policy"
)

// PortfolioRepository defines the interface for portfolio storage
type PortfolioRepository interface {
	Create(ctx context.Context, item *model.PortfolioItem) error
	GetByID(ctx context.Context, id string) (*model.PortfolioItem, error)
	Update(ctx context.Context, item *model.PortfolioItem) error
	Delete(ctx context.Context, id string) error
	ListByProfessional(ctx context.Context, professionalID string) ([]*model.PortfolioItem, error)
}

// PortfolioService manages the showcased work of professionals
type PortfolioService struct {
	repo     PortfolioRepository
	profiles ProfileRepository
	logger   *zap.Logger
}

// PortfolioServiceConfig holds configuration for the portfolio service
type PortfolioServiceConfig struct {
	Repo     PortfolioRepository
	Profiles ProfileRepository
	Logger   *zap.Logger
}

// NewPortfolioService creates a new portfolio service
func NewPortfolioService(cfg PortfolioServiceConfig) *PortfolioService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &PortfolioService{
		repo:     cfg.Repo,
		profiles: cfg.Profiles,
		logger:   cfg.Logger.Named("portfolio"),
	}
}

// Create adds an item to the actor's portfolio
func (s *PortfolioService) Create(ctx context.Context, actorID string, props model.PortfolioItemProps) (*model.PortfolioItem, error) {
	if d := policy.CanCreate(actorID, props.ProfessionalID); !d.Allowed() {
		return nil, d.Err("portfolio item")
	}
	if _, err := requireProfessional(ctx, s.profiles, props.ProfessionalID); err != nil {
		return nil, err
	}
	item, err := model.NewPortfolioItem(props, model.EntityMeta{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Update changes an item owned by the actor
func (s *PortfolioService) Update(ctx context.Context, actorID, id string, patch model.PortfolioItemPatch) (*model.PortfolioItem, error) {
	item, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := policy.CanModify(actorID, item.OwnerID()); !d.Allowed() {
		return nil, d.Err("portfolio item")
	}
	if err := item.Mutate(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	return item, nil
}

// Delete removes an item owned by the actor
func (s *PortfolioService) Delete(ctx context.Context, actorID, id string) error {
	item, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if d := policy.CanDelete(actorID, item.OwnerID()); !d.Allowed() {
		return d.Err("portfolio item")
	}
	return s.repo.Delete(ctx, id)
}

// ListByProfessional returns a professional's items ordered by sort order
func (s *PortfolioService) ListByProfessional(ctx context.Context, professionalID string) ([]*model.PortfolioItem, error) {
	return s.repo.ListByProfessional(ctx, professionalID)
}

func (s *PortfolioService) get(ctx context.Context, id string) (*model.PortfolioItem, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrPortfolioItemNotFound
	}
	return item, nil
}
