package repository

import (
	"context"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// PortfolioRepository handles portfolio item data access
type PortfolioRepository struct {
	db database.Database
}

// NewPortfolioRepository creates a new portfolio repository
func NewPortfolioRepository(db database.Database) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

// Create stores a new item
func (r *PortfolioRepository) Create(ctx context.Context, item *model.PortfolioItem) error {
	return createRecord(ctx, r.db, tablePortfolio, item.ID, item)
}

// GetByID retrieves an item by id
func (r *PortfolioRepository) GetByID(ctx context.Context, id string) (*model.PortfolioItem, error) {
	data, err := getRecord(ctx, r.db, tablePortfolio, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parsePortfolioItem(data), nil
}

// Update replaces a stored item
func (r *PortfolioRepository) Update(ctx context.Context, item *model.PortfolioItem) error {
	return updateRecord(ctx, r.db, tablePortfolio, item.ID, item)
}

// Delete removes an item
func (r *PortfolioRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, r.db, tablePortfolio, id)
}

// ListByProfessional returns a professional's items ordered by sort order
func (r *PortfolioRepository) ListByProfessional(ctx context.Context, professionalID string) ([]*model.PortfolioItem, error) {
	query := `SELECT * FROM portfolio_item WHERE professional_id = $professional_id ORDER BY sort_order ASC, created_at ASC`
	rows, err := queryAll(ctx, r.db, query, map[string]interface{}{"professional_id": professionalID})
	if err != nil {
		return nil, err
	}
	items := make([]*model.PortfolioItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, parsePortfolioItem(row))
	}
	return items, nil
}

func parsePortfolioItem(m map[string]interface{}) *model.PortfolioItem {
	props := model.PortfolioItemProps{
		ProfessionalID: getString(m, "professional_id"),
		Title:          getString(m, "title"),
		Description:    getStringPtr(m, "description"),
		Category:       getStringPtr(m, "category"),
		ImageURLs:      getStringSlice(m, "image_urls"),
		SortOrder:      getInt(m, "sort_order"),
	}
	return &model.PortfolioItem{Entity: model.NewEntity(props, entityMeta(m))}
}
