package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/policy"
)

// ProfileRepository defines the interface for profile storage.
// GetByID returns nil, nil when no profile exists.
type ProfileRepository interface {
	Create(ctx context.Context, p *model.Profile) error
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	Update(ctx context.Context, p *model.Profile) error
	Search(ctx context.Context, filter model.ProfileFilter, page model.Pagination) (*model.Page[*model.Profile], error)
}

// ProfileService handles profile reads and self-service edits
type ProfileService struct {
	repo   ProfileRepository
	logger *zap.Logger
}

// ProfileServiceConfig holds configuration for the profile service
type ProfileServiceConfig struct {
	Repo   ProfileRepository
	Logger *zap.Logger
}

// NewProfileService creates a new profile service
func NewProfileService(cfg ProfileServiceConfig) *ProfileService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &ProfileService{
		repo:   cfg.Repo,
		logger: cfg.Logger.Named("profile"),
	}
}

// Get returns a profile by id
func (s *ProfileService) Get(ctx context.Context, id string) (*model.Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

// Update applies a patch to the actor's own profile
func (s *ProfileService) Update(ctx context.Context, actorID, profileID string, patch model.ProfilePatch) (*model.Profile, error) {
	p, err := s.Get(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if d := policy.CanUpdateProfile(actorID, p.ID); !d.Allowed() {
		return nil, d.Err("profile")
	}
	if err := p.Update(patch); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Search lists active profiles matching the filter
func (s *ProfileService) Search(ctx context.Context, filter model.ProfileFilter, page model.Pagination) (*model.Page[*model.Profile], error) {
	return s.repo.Search(ctx, filter, page.Normalize())
}

// requireProfessional loads a profile and checks that it is a professional
func requireProfessional(ctx context.Context, repo ProfileRepository, id string) (*model.Profile, error) {
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfessionalMissing
	}
	if !p.IsProfessional() {
		return nil, ErrNotProfessional
	}
	return p, nil
}
