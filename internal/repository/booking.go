package repository

import (
	"context"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// BookingRepository handles booking data access. Bookings are never deleted.
type BookingRepository struct {
	db database.Database
}

// NewBookingRepository creates a new booking repository
func NewBookingRepository(db database.Database) *BookingRepository {
	return &BookingRepository{db: db}
}

// Create stores a new booking
func (r *BookingRepository) Create(ctx context.Context, b *model.Booking) error {
	return createRecord(ctx, r.db, tableBooking, b.ID, b)
}

// GetByID retrieves a booking by id
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	data, err := getRecord(ctx, r.db, tableBooking, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parseBooking(data), nil
}

// Update replaces a stored booking
func (r *BookingRepository) Update(ctx context.Context, b *model.Booking) error {
	return updateRecord(ctx, r.db, tableBooking, b.ID, b)
}

// List returns one party's bookings, soonest date first
func (r *BookingRepository) List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.Booking], error) {
	where := newWhere()
	if err := where.partyFilter(filter, "date"); err != nil {
		return nil, err
	}

	rows, total, err := queryPage(ctx, r.db, tableBooking, where, "date ASC, start_time ASC", page)
	if err != nil {
		return nil, err
	}
	items := make([]*model.Booking, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseBooking(row))
	}
	return &model.Page[*model.Booking]{Items: items, Total: total}, nil
}

func parseBooking(m map[string]interface{}) *model.Booking {
	props := model.BookingProps{
		ProfessionalID:   getString(m, "professional_id"),
		ProfessionalName: getString(m, "professional_name"),
		ClientID:         getString(m, "client_id"),
		ClientName:       getString(m, "client_name"),
		ClientEmail:      getString(m, "client_email"),
		ServiceType:      getString(m, "service_type"),
		Location:         getString(m, "location"),
		Notes:            getStringPtr(m, "notes"),
		Date:             getString(m, "date"),
		StartTime:        getString(m, "start_time"),
		Status:           model.Status(getString(m, "status")),
	}
	return &model.Booking{Entity: model.NewEntity(props, entityMeta(m))}
}
