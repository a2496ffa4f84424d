package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/forgo/gigbook/internal/model"
	"github.com/forgo/gigbook/internal/policy"
)

// ReviewRepository defines the interface for review storage.
// Create stores the review and refreshes the professional's rating and
// review count in the same transaction. A second review for the same booking
// fails with an error wrapping model.ErrConflict.
type ReviewRepository interface {
	Create(ctx context.Context, r *model.Review) error
	GetByBooking(ctx context.Context, bookingID string) (*model.Review, error)
	ListByProfessional(ctx context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error)
}

// ReviewService handles client reviews of bookings
type ReviewService struct {
	repo     ReviewRepository
	bookings BookingRepository
	logger   *zap.Logger
}

// ReviewServiceConfig holds configuration for the review service
type ReviewServiceConfig struct {
	Repo     ReviewRepository
	Bookings BookingRepository
	Logger   *zap.Logger
}

// NewReviewService creates a new review service
func NewReviewService(cfg ReviewServiceConfig) *ReviewService {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &ReviewService{
		repo:     cfg.Repo,
		bookings: cfg.Bookings,
		logger:   cfg.Logger.Named("review"),
	}
}

// Create records the acting client's review of one of their bookings.
// A booking that already has a review is a conflict whoever submits the
// second one.
func (s *ReviewService) Create(ctx context.Context, actorID string, props model.ReviewProps) (*model.Review, error) {
	if d := policy.CanCreate(actorID, props.ClientID); !d.Allowed() {
		return nil, d.Err("review")
	}

	booking, err := s.bookings.GetByID(ctx, props.BookingID)
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return nil, ErrBookingNotFound
	}

	existing, err := s.repo.GetByBooking(ctx, props.BookingID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrReviewExists
	}

	if booking.Props.ClientID != actorID {
		return nil, ErrReviewBookingClient
	}
	if booking.Props.ProfessionalID != props.ProfessionalID {
		return nil, ErrReviewProfessional
	}

	r, err := model.NewReview(props, model.EntityMeta{})
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, r); err != nil {
		if errors.Is(err, model.ErrConflict) {
			return nil, ErrReviewExists
		}
		return nil, err
	}

	s.logger.Info("review created",
		zap.String("review_id", r.ID),
		zap.String("booking_id", r.Props.BookingID),
		zap.Int("rating", r.Props.Rating),
	)
	return r, nil
}

// ListByProfessional returns a professional's reviews, newest first
func (s *ReviewService) ListByProfessional(ctx context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error) {
	return s.repo.ListByProfessional(ctx, professionalID, page.Normalize())
}
