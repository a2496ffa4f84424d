package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/policy"
)

// BookingRepository defines the interface for booking storage
type BookingRepository interface {
	Create(ctx context.Context, b *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	Update(ctx context.Context, b *model.Booking) error
	List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.Booking], error)
}

// BookingService handles appointments between clients and professionals
type BookingService struct {
	repo     BookingRepository
	profiles ProfileRepository
	strict   bool
	logger   *zap.Logger
}

// BookingServiceConfig holds configuration for the booking service
type BookingServiceConfig struct {
	Repo     BookingRepository
	Profiles ProfileRepository
	// StrictTransitions limits status changes to the forward edges of the
	// booking lifecycle
	StrictTransitions bool
	Logger            *zap.Logger
}

// NewBookingService creates a new booking service
func NewBookingService(cfg BookingServiceConfig) *BookingService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &BookingService{
		repo:     cfg.Repo,
		profiles: cfg.Profiles,
		strict:   cfg.StrictTransitions,
		logger:   cfg.Logger.Named("booking"),
	}
}

// Create books a professional on behalf of the acting client. The booking
// always starts pending and carries the professional's display name.
func (s *BookingService) Create(ctx context.Context, actorID string, props model.BookingProps) (*model.Booking, error) {
	if d := policy.CanCreate(actorID, props.ClientID); !d.Allowed() {
		return nil, d.Err("booking")
	}
	pro, err := requireProfessional(ctx, s.profiles, props.ProfessionalID)
	if err != nil {
		return nil, err
	}

	props.ProfessionalName = pro.Props.DisplayName
	props.Status = ""
	b, err := model.NewBooking(props, model.EntityMeta{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking created",
		zap.String("booking_id", b.ID),
		zap.String("professional_id", b.Props.ProfessionalID),
	)
	return b, nil
}

// Get returns a booking visible to either counterpart
func (s *BookingService) Get(ctx context.Context, actorID, id string) (*model.Booking, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	pro, client := b.Parties()
	if d := policy.CanAccessBilateral(actorID, pro, client); !d.Allowed() {
		return nil, d.Err("booking")
	}
	return b, nil
}

// List returns the actor's bookings as client or as professional
func (s *BookingService) List(ctx context.Context, actorID string, req ListRequest) (*model.Page[*model.Booking], error) {
	filter, err := partyFilter(actorID, req, model.BookingMachine, model.RoleClient, model.RoleProfessional)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, filter, req.Page.Normalize())
}

// UpdateStatus moves a booking to a new status. Either counterpart may do so.
func (s *BookingService) UpdateStatus(ctx context.Context, actorID, id string, status model.Status) (*model.Booking, error) {
	b, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	pro, client := b.Parties()
	if d := policy.CanTransitionBilateral(actorID, pro, client); !d.Allowed() {
		return nil, d.Err("booking")
	}

	from := b.Props.Status
	if err := b.SetStatus(status, s.strict); err != nil {
		return nil, err
	}
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}

	s.logger.Info("booking status changed",
		zap.String("booking_id", b.ID),
		zap.String("from", string(from)),
		zap.String("to", string(status)),
		zap.String("actor_id", actorID),
	)
	return b, nil
}

func (s *BookingService) get(ctx context.Context, id string) (*model.Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, ErrBookingNotFound
	}
	return b, nil
}
