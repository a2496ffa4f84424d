package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// ReviewRepository handles review data access
type ReviewRepository struct {
	db database.Database
}

// NewReviewRepository creates a new review repository
func NewReviewRepository(db database.Database) *ReviewRepository {
	return &ReviewRepository{db: db}
}

// Create stores a review and recomputes the professional's rating and review
// count in the same transaction. The unique booking_id index turns a second
// review for a booking into model.ErrConflict.
func (r *ReviewRepository) Create(ctx context.Context, review *model.Review) error {
	batch := database.NewAtomicBatch()
	batch.Add(`CREATE type::thing('review', $id) CONTENT $content`, map[string]interface{}{
		"id":      review.ID,
		"content": recordContent(review.ToRecord()),
	})
	batch.Add(`
		UPDATE type::thing('profile', $professional_id) SET
			rating = math::mean((SELECT VALUE rating FROM review WHERE professional_id = $professional_id)),
			review_count = count((SELECT VALUE id FROM review WHERE professional_id = $professional_id))
	`, map[string]interface{}{
		"professional_id": review.Props.ProfessionalID,
	})

	if err := batch.Execute(ctx, r.db); err != nil {
		if errors.Is(err, database.ErrDuplicate) {
			return fmt.Errorf("%w: review for booking %s", model.ErrConflict, review.Props.BookingID)
		}
		return fmt.Errorf("create review: %w", err)
	}
	return nil
}

// GetByBooking returns the review of a booking, or nil when there is none
func (r *ReviewRepository) GetByBooking(ctx context.Context, bookingID string) (*model.Review, error) {
	query := `SELECT * FROM review WHERE booking_id = $booking_id LIMIT 1`
	rows, err := queryAll(ctx, r.db, query, map[string]interface{}{"booking_id": bookingID})
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return parseReview(rows[0]), nil
}

// ListByProfessional returns a professional's reviews, newest first
func (r *ReviewRepository) ListByProfessional(ctx context.Context, professionalID string, page model.Pagination) (*model.Page[*model.Review], error) {
	where := newWhere()
	where.add("professional_id = $professional_id", "professional_id", professionalID)

	rows, total, err := queryPage(ctx, r.db, tableReview, where, "created_at DESC", page)
	if err != nil {
		return nil, err
	}
	items := make([]*model.Review, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseReview(row))
	}
	return &model.Page[*model.Review]{Items: items, Total: total}, nil
}

func parseReview(m map[string]interface{}) *model.Review {
	props := model.ReviewProps{
		ProfessionalID: getString(m, "professional_id"),
		BookingID:      getString(m, "booking_id"),
		ClientID:       getString(m, "client_id"),
		ClientName:     getString(m, "client_name"),
		Rating:         getInt(m, "rating"),
		Comment:        getString(m, "comment"),
	}
	return &model.Review{Entity: model.NewEntity(props, entityMeta(m))}
}
