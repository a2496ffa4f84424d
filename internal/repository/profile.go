package repository

import (
	"context"
	"strings"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// ProfileRepository handles profile data access. Profiles are keyed by the
// identity id they represent.
type ProfileRepository struct {
	db database.Database
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db database.Database) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create stores a new profile
func (r *ProfileRepository) Create(ctx context.Context, p *model.Profile) error {
	return createRecord(ctx, r.db, tableProfile, p.ID, p)
}

// GetByID retrieves a profile by identity id
func (r *ProfileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	data, err := getRecord(ctx, r.db, tableProfile, id)
	if err != nil || data == nil {
		return nil, err
	}
	return parseProfile(data), nil
}

// Update replaces a stored profile
func (r *ProfileRepository) Update(ctx context.Context, p *model.Profile) error {
	return updateRecord(ctx, r.db, tableProfile, p.ID, p)
}

// Search lists active profiles by free text, user type and location
func (r *ProfileRepository) Search(ctx context.Context, filter model.ProfileFilter, page model.Pagination) (*model.Page[*model.Profile], error) {
	where := newWhere()
	where.add("is_active = true", "", nil)
	if q := strings.ToLower(strings.TrimSpace(filter.Query)); q != "" {
		where.add(`(string::lowercase(display_name) CONTAINS $q
			OR string::lowercase(artistic_name ?? '') CONTAINS $q
			OR string::lowercase(specialty ?? '') CONTAINS $q)`, "q", q)
	}
	if filter.UserType != nil {
		where.add("user_type = $user_type", "user_type", string(*filter.UserType))
	}
	if filter.City != nil {
		where.add("string::lowercase(city ?? '') = $city", "city", strings.ToLower(*filter.City))
	}
	if filter.State != nil {
		where.add("string::lowercase(state ?? '') = $state", "state", strings.ToLower(*filter.State))
	}

	rows, total, err := queryPage(ctx, r.db, tableProfile, where, "rating DESC, display_name ASC", page)
	if err != nil {
		return nil, err
	}
	items := make([]*model.Profile, 0, len(rows))
	for _, row := range rows {
		items = append(items, parseProfile(row))
	}
	return &model.Page[*model.Profile]{Items: items, Total: total}, nil
}

func parseProfile(m map[string]interface{}) *model.Profile {
	props := model.ProfileProps{
		UserType:     model.UserType(getString(m, "user_type")),
		DisplayName:  getString(m, "display_name"),
		ArtisticName: getStringPtr(m, "artistic_name"),
		Specialty:    getStringPtr(m, "specialty"),
		Description:  getStringPtr(m, "description"),
		City:         getStringPtr(m, "city"),
		State:        getStringPtr(m, "state"),
		Phone:        getStringPtr(m, "phone"),
		PortfolioURL: getStringPtr(m, "portfolio_url"),
		AvatarURL:    getStringPtr(m, "avatar_url"),
		Rating:       getFloatPtr(m, "rating"),
		ReviewCount:  getIntPtr(m, "review_count"),
		IsActive:     getBool(m, "is_active"),
	}
	return &model.Profile{Entity: model.NewEntity(props, entityMeta(m))}
}
