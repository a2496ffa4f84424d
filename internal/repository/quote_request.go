package repository

import (
	"context"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// QuoteRequestRepository handles quote request data access
type QuoteRequestRepository struct {
	db database.Database
}

// NewQuoteRequestRepository creates a new quote request repository
func NewQuoteRequestRepository(db database.Database) *QuoteRequestRepository {
	return &QuoteRequestRepository{db: db}
}

// Create stores a new quote request
func (r *QuoteRequestRepository) Create(ctx context.Context, q *model.QuoteRequest) error {
	return createRecord(ctx, r.db, tableQuoteRequest, q.ID, q)
}

// GetByID retrieves a quote request by id
func (r *QuoteRequestRepository) GetByID(ctx context.Context, id string) (*model.QuoteRequest, error) {
	data, err := getRecord(ctx, r.db, tableQuoteRequest, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parseQuoteRequest(data), nil
}

// Update replaces a stored quote request
func (r *QuoteRequestRepository) Update(ctx context.Context, q *model.QuoteRequest) error {
	return updateRecord(ctx, r.db, tableQuoteRequest, q.ID, q)
}

// List returns one party's quote requests, newest first
func (r *QuoteRequestRepository) List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.QuoteRequest], error) {
	where := newWhere()
	if err := where.partyFilter(filter, "date"); err != nil {
		return nil, err
	}

	rows, total, err := queryPage(ctx, r.db, tableQuoteRequest, where, "created_at DESC", page)
	if err != nil {
		return nil, err
	}
	items := make([]*model.QuoteRequest, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseQuoteRequest(row))
	}
	return &model.Page[*model.QuoteRequest]{Items: items, Total: total}, nil
}

func parseQuoteRequest(m map[string]interface{}) *model.QuoteRequest {
	props := model.QuoteRequestProps{
		ProfessionalID:   getString(m, "professional_id"),
		ProfessionalName: getString(m, "professional_name"),
		ClientID:         getString(m, "client_id"),
		ClientName:       getString(m, "client_name"),
		ClientEmail:      getString(m, "client_email"),
		ServiceType:      getString(m, "service_type"),
		Location:         getString(m, "location"),
		Description:      getString(m, "description"),
		Budget:           getFloatPtr(m, "budget"),
		Date:             getString(m, "date"),
		StartTime:        getStringPtr(m, "start_time"),
		Status:           model.Status(getString(m, "status")),
	}
	return &model.QuoteRequest{Entity: model.NewEntity(props, entityMeta(m))}
}
