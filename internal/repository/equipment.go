package repository

import (
	"context"
	"strings"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// EquipmentRepository handles equipment listing data access
type EquipmentRepository struct {
	db database.Database
}

// NewEquipmentRepository creates a new equipment repository
func NewEquipmentRepository(db database.Database) *EquipmentRepository {
	return &EquipmentRepository{db: db}
}

// Create stores a new listing
func (r *EquipmentRepository) Create(ctx context.Context, e *model.Equipment) error {
	return createRecord(ctx, r.db, tableEquipment, e.ID, e)
}

// GetByID retrieves a listing by id
func (r *EquipmentRepository) GetByID(ctx context.Context, id string) (*model.Equipment, error) {
	data, err := getRecord(ctx, r.db, tableEquipment, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parseEquipment(data), nil
}

// Update replaces a stored listing
func (r *EquipmentRepository) Update(ctx context.Context, e *model.Equipment) error {
	return updateRecord(ctx, r.db, tableEquipment, e.ID, e)
}

// Delete removes a listing
func (r *EquipmentRepository) Delete(ctx context.Context, id string) error {
	return deleteRecord(ctx, r.db, tableEquipment, id)
}

// Search lists equipment by free text, category, location and owner
func (r *EquipmentRepository) Search(ctx context.Context, filter model.EquipmentFilter, page model.Pagination) (*model.Page[*model.Equipment], error) {
	where := newWhere()
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		where.add(`(string::lowercase(name) CONTAINS $q
			OR string::lowercase(description ?? '') CONTAINS $q)`, "q", q)
	}
	if filter.Category != nil {
		where.add("category = $category", "category", *filter.Category)
	}
	if filter.City != nil {
		where.add("string::lowercase(city ?? '') = $city", "city", strings.ToLower(*filter.City))
	}
	if filter.State != nil {
		where.add("string::lowercase(state ?? '') = $state", "state", strings.ToLower(*filter.State))
	}
	if filter.OwnerID != nil {
		where.add("owner_id = $owner_id", "owner_id", *filter.OwnerID)
	}
	if filter.AvailableOnly {
		where.add("is_available = true", "", nil)
	}

	rows, total, err := queryPage(ctx, r.db, tableEquipment, where, "created_at DESC", page)
	if err != nil {
		return nil, err
	}
	items := make([]*model.Equipment, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseEquipment(row))
	}
	return &model.Page[*model.Equipment]{Items: items, Total: total}, nil
}

func parseEquipment(m map[string]interface{}) *model.Equipment {
	props := model.EquipmentProps{
		OwnerID:     getString(m, "owner_id"),
		Name:        getString(m, "name"),
		Description: getStringPtr(m, "description"),
		Category:    getString(m, "category"),
		DailyPrice:  getFloatPtr(m, "daily_price"),
		Condition:   model.EquipmentCondition(getString(m, "condition")),
		City:        getStringPtr(m, "city"),
		State:       getStringPtr(m, "state"),
		ImageURLs:   getStringSlice(m, "image_urls"),
		IsAvailable: getBool(m, "is_available"),
	}
	return &model.Equipment{Entity: model.NewEntity(props, entityMeta(m))}
}

// ProposalRepository handles equipment proposal data access
type ProposalRepository struct {
	db database.Database
}

// NewProposalRepository creates a new equipment proposal repository
func NewProposalRepository(db database.Database) *ProposalRepository {
	return &ProposalRepository{db: db}
}

// Create stores a new proposal
func (r *ProposalRepository) Create(ctx context.Context, p *model.EquipmentProposal) error {
	return createRecord(ctx, r.db, tableProposal, p.ID, p)
}

// GetByID retrieves a proposal by id
func (r *ProposalRepository) GetByID(ctx context.Context, id string) (*model.EquipmentProposal, error) {
	data, err := getRecord(ctx, r.db, tableProposal, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parseProposal(data), nil
}

// Update replaces a stored proposal
func (r *ProposalRepository) Update(ctx context.Context, p *model.EquipmentProposal) error {
	return updateRecord(ctx, r.db, tableProposal, p.ID, p)
}

// List returns one party's proposals, newest first
func (r *ProposalRepository) List(ctx context.Context, filter model.PartyFilter, page model.Pagination) (*model.Page[*model.EquipmentProposal], error) {
	where := newWhere()
	if err := where.partyFilter(filter, "start_date"); err != nil {
		return nil, err
	}

	rows, total, err := queryPage(ctx, r.db, tableProposal, where, "created_at DESC", page)
	if err != nil {
		return nil, err
	}
	items := make([]*model.EquipmentProposal, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseProposal(row))
	}
	return &model.Page[*model.EquipmentProposal]{Items: items, Total: total}, nil
}

func parseProposal(m map[string]interface{}) *model.EquipmentProposal {
	props := model.EquipmentProposalProps{
		EquipmentID:   getString(m, "equipment_id"),
		EquipmentName: getString(m, "equipment_name"),
		BuyerID:       getString(m, "buyer_id"),
		BuyerName:     getString(m, "buyer_name"),
		SellerID:      getString(m, "seller_id"),
		Message:       getString(m, "message"),
		ProposedPrice: getFloatPtr(m, "proposed_price"),
		StartDate:     getStringPtr(m, "start_date"),
		EndDate:       getStringPtr(m, "end_date"),
		ContactPhone:  getString(m, "contact_phone"),
		Status:        model.Status(getString(m, "status")),
	}
	return &model.EquipmentProposal{Entity: model.NewEntity(props, entityMeta(m))}
}
