package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/policy"
)

// AvailabilityRepository defines the interface for availability storage
type AvailabilityRepository interface {
	Create(ctx context.Context, a *model.Availability) error
	GetByID(ctx context.Context, id string) (*model.Availability, error)
	Update(ctx context.Context, a *model.Availability) error
	Delete(ctx context.Context, id string) error
	ListByProfessional(ctx context.Context, professionalID string, dates model.DateRange) ([]*model.Availability, error)
}

// AvailabilityService manages the calendar slots of professionals
type AvailabilityService struct {
	repo     AvailabilityRepository
	profiles ProfileRepository
	logger   *zap.Logger
}

// AvailabilityServiceConfig holds configuration for the availability service
type AvailabilityServiceConfig struct {
	Repo     AvailabilityRepository
	Profiles ProfileRepository
	Logger   *zap.Logger
}

// NewAvailabilityService creates a new availability service
func NewAvailabilityService(cfg AvailabilityServiceConfig) *AvailabilityService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &AvailabilityService{
		repo:     cfg.Repo,
		profiles: cfg.Profiles,
		logger:   cfg.Logger.Named("availability"),
	}
}

// Create adds a slot to the actor's own calendar
func (s *AvailabilityService) Create(ctx context.Context, actorID string, props model.AvailabilityProps) (*model.Availability, error) {
	if d := policy.CanCreate(actorID, props.ProfessionalID); !d.Allowed() {
		return nil, d.Err("availability")
	}
	if _, err := requireProfessional(ctx, s.profiles, props.ProfessionalID); err != nil {
		return nil, err
	}

	a, err := model.NewAvailability(props, model.EntityMeta{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Update changes a slot owned by the actor
func (s *AvailabilityService) Update(ctx context.Context, actorID, id string, patch model.AvailabilityPatch) (*model.Availability, error) {
	a, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d := policy.CanModify(actorID, a.OwnerID()); !d.Allowed() {
		return nil, d.Err("availability")
	}
	if err := a.Mutate(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes a slot owned by the actor
func (s *AvailabilityService) Delete(ctx context.Context, actorID, id string) error {
	a, err := s.get(ctx, id)
	if err != nil {
		return err
	}
	if d := policy.CanDelete(actorID, a.OwnerID()); !d.Allowed() {
		return d.Err("availability")
	}
	return s.repo.Delete(ctx, id)
}

// ListByProfessional returns a professional's slots ordered by date and start time
func (s *AvailabilityService) ListByProfessional(ctx context.Context, professionalID string, dates model.DateRange) ([]*model.Availability, error) {
	if err := validateDateRange(dates); err != nil {
		return nil, err
	}
	return s.repo.ListByProfessional(ctx, professionalID, dates)
}

func (s *AvailabilityService) get(ctx context.Context, id string) (*model.Availability, error) {
	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, ErrAvailabilityNotFound
	}
	return a, nil
}
