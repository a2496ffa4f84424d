package model

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedClock replaces Now for the duration of a test. Tests using it must not run in parallel.
func fixedClock(t *testing.T, times ...time.Time) {
	t.Helper()
	prev := Now
	i := 0
	Now = func() time.Time {
		ts := times[i]
		if i < len(times)-1 {
			i++
		}
		return ts
	}
	t.Cleanup(func() { Now = prev })
}

func validPortfolioProps() PortfolioItemProps {
	return PortfolioItemProps{
		ProfessionalID: "pro-1",
		Title:          "Wedding set",
		ImageURLs:      []string{"https://cdn.example.com/a.jpg"},
	}
}

// ============================================================================
// Construction Tests
// ============================================================================

func TestNewEntity_GeneratesIDAndCreatedAt(t *testing.T) {
	t.Parallel()

	e := NewEntity(validPortfolioProps(), EntityMeta{})

	assert.NotEmpty(t, e.ID)
	assert.False(t, e.CreatedAt.IsZero())
	assert.Nil(t, e.UpdatedAt)
}

func TestNewEntity_GeneratesDistinctIDs(t *testing.T) {
	t.Parallel()

	a := NewEntity(validPortfolioProps(), EntityMeta{})
	b := NewEntity(validPortfolioProps(), EntityMeta{})

	assert.NotEqual(t, a.ID, b.ID)
}

func TestNewEntity_KeepsSuppliedMeta(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(time.Hour)

	e := NewEntity(validPortfolioProps(), EntityMeta{ID: "item-1", CreatedAt: created, UpdatedAt: &updated})

	assert.Equal(t, "item-1", e.ID)
	assert.Equal(t, created, e.CreatedAt)
	require.NotNil(t, e.UpdatedAt)
	assert.Equal(t, updated, *e.UpdatedAt)

	updated = updated.Add(time.Hour)
	assert.NotEqual(t, updated, *e.UpdatedAt, "meta pointer must not alias the entity")
}

// ============================================================================
// Timestamp Invariant Tests
// ============================================================================

func TestMutate_StampsUpdatedAtAndKeepsIdentity(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(t, base, base.Add(time.Minute), base.Add(2*time.Minute))

	item, err := NewPortfolioItem(validPortfolioProps(), EntityMeta{})
	require.NoError(t, err)
	id, created := item.ID, item.CreatedAt

	title := "Gala set"
	require.NoError(t, item.Mutate(PortfolioItemPatch{Title: &title}))
	require.NotNil(t, item.UpdatedAt)
	first := *item.UpdatedAt

	order := 3
	require.NoError(t, item.Mutate(PortfolioItemPatch{SortOrder: &order}))

	assert.Equal(t, id, item.ID)
	assert.Equal(t, created, item.CreatedAt)
	assert.Equal(t, "Gala set", item.Props.Title)
	assert.Equal(t, 3, item.Props.SortOrder)
	assert.Equal(t, base.Add(time.Minute), first)
	assert.Equal(t, base.Add(2*time.Minute), *item.UpdatedAt)
}

func TestMutate_ClockSkewNeverMovesUpdatedAtBackwards(t *testing.T) {
	base := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	fixedClock(t, base, base.Add(time.Hour), base.Add(-time.Hour))

	item, err := NewPortfolioItem(validPortfolioProps(), EntityMeta{})
	require.NoError(t, err)

	order := 1
	require.NoError(t, item.Mutate(PortfolioItemPatch{SortOrder: &order}))
	first := *item.UpdatedAt

	order = 2
	require.NoError(t, item.Mutate(PortfolioItemPatch{SortOrder: &order}))

	assert.False(t, item.UpdatedAt.Before(first))
	assert.False(t, item.UpdatedAt.Before(item.CreatedAt))
}

func TestMutate_InvalidPatchLeavesEntityUnchanged(t *testing.T) {
	t.Parallel()

	item, err := NewPortfolioItem(validPortfolioProps(), EntityMeta{})
	require.NoError(t, err)

	empty := ""
	err = item.Mutate(PortfolioItemPatch{Title: &empty})

	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidProps))
	assert.True(t, errors.Is(err, ErrValidation))
	assert.Equal(t, "Wedding set", item.Props.Title)
	assert.Nil(t, item.UpdatedAt)
}

// ============================================================================
// Profile Tests
// ============================================================================

func TestNewDefaultProfile_Shape(t *testing.T) {
	t.Parallel()

	p, err := NewDefaultProfile("identity-1", UserTypeProfessional, "  Ana ")
	require.NoError(t, err)

	assert.Equal(t, "identity-1", p.ID)
	assert.Equal(t, UserTypeProfessional, p.Props.UserType)
	assert.Equal(t, "Ana", p.Props.DisplayName)
	assert.True(t, p.Props.IsActive)
	assert.Nil(t, p.Props.ArtisticName)
	assert.Nil(t, p.Props.Specialty)
	assert.Nil(t, p.Props.Description)
	assert.Nil(t, p.Props.City)
	assert.Nil(t, p.Props.State)
	assert.Nil(t, p.Props.Phone)
	assert.Nil(t, p.Props.PortfolioURL)
	assert.Nil(t, p.Props.AvatarURL)
	assert.Nil(t, p.Props.Rating)
	assert.Nil(t, p.Props.ReviewCount)
	assert.Nil(t, p.UpdatedAt)
}

func TestNewDefaultProfile_RejectsInvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		identityID  string
		userType    UserType
		displayName string
	}{
		{"missing identity", "", UserTypeClient, "Ana"},
		{"unknown user type", "id-1", UserType("admin"), "Ana"},
		{"blank display name", "id-1", UserTypeClient, "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewDefaultProfile(tt.identityID, tt.userType, tt.displayName)
			assert.ErrorIs(t, err, ErrInvalidProps)
		})
	}
}

func TestProfileUpdate_RejectsUserTypeChange(t *testing.T) {
	t.Parallel()

	p, err := NewDefaultProfile("id-1", UserTypeClient, "Ana")
	require.NoError(t, err)

	pro := UserTypeProfessional
	name := "Ana Maria"
	err = p.Update(ProfilePatch{UserType: &pro, DisplayName: &name})

	assert.ErrorIs(t, err, ErrImmutableField)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Equal(t, UserTypeClient, p.Props.UserType)
	assert.Equal(t, "Ana", p.Props.DisplayName)
	assert.Nil(t, p.UpdatedAt)
}

func TestProfileUpdate_SameUserTypeIsAccepted(t *testing.T) {
	t.Parallel()

	p, err := NewDefaultProfile("id-1", UserTypeClient, "Ana")
	require.NoError(t, err)

	same := UserTypeClient
	city := "Recife"
	require.NoError(t, p.Update(ProfilePatch{UserType: &same, City: &city}))

	require.NotNil(t, p.Props.City)
	assert.Equal(t, "Recife", *p.Props.City)
	assert.NotNil(t, p.UpdatedAt)
}

func TestProfileUpdate_EmptyStringClearsOptionalField(t *testing.T) {
	t.Parallel()

	city := "Recife"
	p, err := NewProfile(ProfileProps{UserType: UserTypeClient, DisplayName: "Ana", City: &city, IsActive: true}, EntityMeta{})
	require.NoError(t, err)

	empty := ""
	require.NoError(t, p.Update(ProfilePatch{City: &empty}))

	assert.Nil(t, p.Props.City)
}

// ============================================================================
// ToRecord Tests
// ============================================================================

func TestToRecord_FlattensIdentityAndProps(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC)
	b, err := NewBooking(BookingProps{
		ProfessionalID:   "pro-1",
		ProfessionalName: "Ana",
		ClientID:         "cli-1",
		ClientName:       "Bruno",
		ClientEmail:      "bruno@example.com",
		ServiceType:      "photography",
		Location:         "Recife",
		Date:             "2025-06-01",
		StartTime:        "18:00",
	}, EntityMeta{ID: "booking-1", CreatedAt: created})
	require.NoError(t, err)

	record := b.ToRecord()

	assert.Equal(t, "booking-1", record["id"])
	assert.Equal(t, created, record["created_at"])
	assert.Nil(t, record["updated_at"])
	assert.Equal(t, "pending", record["status"])
	assert.Equal(t, "pro-1", record["professional_id"])
	assert.Equal(t, "cli-1", record["client_id"])
	assert.Contains(t, record, "notes")
}

func TestMarshalJSON_UsesRecordKeys(t *testing.T) {
	t.Parallel()

	p, err := NewDefaultProfile("id-1", UserTypeClient, "Ana")
	require.NoError(t, err)

	data, err := p.MarshalJSON()
	require.NoError(t, err)

	assert.Contains(t, string(data), `"id":"id-1"`)
	assert.Contains(t, string(data), `"user_type":"client"`)
	assert.Contains(t, string(data), `"is_active":true`)
	assert.Contains(t, string(data), `"updated_at":null`)
}
