package repository

import (
	"context"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// AvailabilityRepository handles calendar slot data access
type AvailabilityRepository struct {
	db database.Database
}

// NewAvailabilityRepository creates a new availability repository
func NewAvailabilityRepository(db database.Database) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// Create stores a new slot
func (r *AvailabilityRepository) Create(ctx context.Context, a *model.Availability) error {
	return createRecord(ctx, r.db, tableAvailability, a.ID, a)
}

// GetByID retrieves a slot by id
func (r *AvailabilityRepository) GetByID(ctx context.Context, id string) (*model.Availability, error) {
	data, err := getRecord(ctx, r.db, tableAvailability, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parseAvailability(data), nil
}

// Update replaces a stored slot
func (r *AvailabilityRepository) Update(ctx context.Context, a *model.Availability) error {
	return updateRecord(ctx, r.db, tableAvailability, a.ID, a)
}

// Delete removes a slot
func (r *AvailabilityRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, r.db, tableAvailability, id)
}

// ListByProfessional returns a professional's slots within an optional date range
func (r *AvailabilityRepository) ListByProfessional(ctx context.Context, professionalID string, dates model.DateRange) ([]*model.Availability, error) {
	where := newWhere()
	where.add("professional_id = $professional_id", "professional_id", professionalID)
	where.dateRange("date", dates)

	rows, err := queryAll(ctx, r.db, "SELECT * FROM availability"+where.String()+" ORDER BY date ASC, start_time ASC", where.vars)
	if err != nil {
		return nil, err
	}
	items := make([]*model.Availability, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseAvailability(row))
	}
	return items, nil
}

func parseAvailability(m map[string]interface{}) *model.Availability {
	props := model.AvailabilityProps{
		ProfessionalID: getString(m, "professional_id"),
		Date:           getString(m, "date"),
		StartTime:      getString(m, "start_time"),
		EndTime:        getString(m, "end_time"),
		Kind:           model.AvailabilityKind(getString(m, "kind")),
		Reason:         getStringPtr(m, "reason"),
	}
	return &model.Availability{Entity: model.NewEntity(props, entityMeta(m))}
}
