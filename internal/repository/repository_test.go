package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/identity"
	"github.com/forgo/gigbook/internal/model"
)

// fakeDB records queries and answers each Query call with the next canned response
type fakeDB struct {
	queries   []string
	vars      []map[string]interface{}
	responses [][]interface{}
	err       error
}

func (f *fakeDB) Connect(ctx context.Context) error { return nil }
func (f *fakeDB) Close() error                      { return nil }
func (f *fakeDB) Ping(ctx context.Context) error    { return nil }

func (f *fakeDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	f.queries = append(f.queries, query)
	f.vars = append(f.vars, vars)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.responses) == 0 {
		return nil, nil
	}
	resp := f.responses[0]
	f.responses = f.responses[1:]
	return resp, nil
}

func (f *fakeDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := f.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return nil, database.ErrNotFound
	}
	rows := statementRows(results, 0)
	if len(rows) == 0 {
		return nil, database.ErrNotFound
	}
	return rows[0], nil
}

func (f *fakeDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := f.Query(ctx, query, vars)
	return err
}

func ok(rows ...interface{}) map[string]interface{} {
	return map[string]interface{}{"status": "OK", "result": rows}
}

func TestRecordContent(t *testing.T) {
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	b, err := model.NewBooking(model.BookingProps{
		ProfessionalID:   "pro",
		ProfessionalName: "DJ Lua",
		ClientID:         "client",
		ClientName:       "Carla",
		ClientEmail:      "carla@x.com",
		ServiceType:      "set",
		Location:         "Recife",
		Date:             "2026-12-05",
		StartTime:        "21:00",
	}, model.EntityMeta{ID: "b1", CreatedAt: created})
	require.NoError(t, err)

	content := recordContent(b.ToRecord())
	assert.NotContains(t, content, "id")
	assert.Equal(t, models.CustomDateTime{Time: created}, content["created_at"])
	assert.Nil(t, content["updated_at"])
	assert.Equal(t, "pending", content["status"])
}

func TestBookingRoundTrip(t *testing.T) {
	db := &fakeDB{}
	repo := NewBookingRepository(db)
	ctx := context.Background()

	b, err := model.NewBooking(model.BookingProps{
		ProfessionalID:   "pro",
		ProfessionalName: "DJ Lua",
		ClientID:         "client",
		ClientName:       "Carla",
		ClientEmail:      "carla@x.com",
		ServiceType:      "set",
		Location:         "Recife",
		Date:             "2026-12-05",
		StartTime:        "21:00",
	}, model.EntityMeta{})
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, b))

	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "CREATE type::thing($tb, $id)")
	assert.Equal(t, "booking", db.vars[0]["tb"])
	assert.Equal(t, b.ID, db.vars[0]["id"])

	// feed the stored content back as SurrealDB would return it
	stored := db.vars[0]["content"].(map[string]interface{})
	row := map[string]interface{}{"id": models.RecordID{Table: "booking", ID: b.ID}}
	for k, v := range stored {
		row[k] = v
	}
	db.responses = [][]interface{}{{ok(row)}}

	got, err := repo.GetByID(ctx, b.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, b.Props, got.Props)
	assert.True(t, b.CreatedAt.Equal(got.CreatedAt))
	assert.Nil(t, got.UpdatedAt)
}

func TestGetByID_Missing(t *testing.T) {
	db := &fakeDB{responses: [][]interface{}{{ok()}}}
	got, err := NewProfileRepository(db).GetByID(context.Background(), "nobody")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestBookingList_PartyFilter(t *testing.T) {
	db := &fakeDB{responses: [][]interface{}{{
		ok(map[string]interface{}{"id": "booking:b1", "client_id": "c1", "status": "pending", "date": "2026-12-05"}),
		ok(map[string]interface{}{"count": uint64(7)}),
	}}}
	status := model.BookingPending
	from := "2026-12-01"

	page, err := NewBookingRepository(db).List(context.Background(), model.PartyFilter{
		PartyID: "c1",
		Role:    model.RoleClient,
		Status:  &status,
		Dates:   model.DateRange{From: &from},
	}, model.Pagination{Limit: 10, Offset: 20})
	require.NoError(t, err)

	assert.Equal(t, 7, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "b1", page.Items[0].ID)

	q := db.queries[0]
	assert.Contains(t, q, "client_id = $party_id")
	assert.Contains(t, q, "status = $status")
	assert.Contains(t, q, "date >= $date_from")
	assert.Contains(t, q, "LIMIT $limit START $offset")
	assert.Equal(t, 10, db.vars[0]["limit"])
	assert.Equal(t, 20, db.vars[0]["offset"])
	assert.Equal(t, "pending", db.vars[0]["status"])
}

func TestPartyFilter_UnknownRole(t *testing.T) {
	_, err := NewBookingRepository(&fakeDB{}).List(context.Background(), model.PartyFilter{PartyID: "x", Role: "landlord"}, model.Pagination{})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestReviewCreate_BatchesRatingUpdate(t *testing.T) {
	db := &fakeDB{}
	r, err := model.NewReview(model.ReviewProps{
		ProfessionalID: "pro",
		BookingID:      "b1",
		ClientID:       "c1",
		ClientName:     "Carla",
		Rating:         5,
	}, model.EntityMeta{})
	require.NoError(t, err)

	require.NoError(t, NewReviewRepository(db).Create(context.Background(), r))
	require.Len(t, db.queries, 1)
	q := db.queries[0]
	assert.True(t, strings.HasPrefix(q, "BEGIN TRANSACTION;"))
	assert.Contains(t, q, "CREATE type::thing('review'")
	assert.Contains(t, q, "math::mean(")
	assert.Contains(t, q, "review_count = count(")
}

func TestReviewCreate_DuplicateIsConflict(t *testing.T) {
	db := &fakeDB{err: fmt.Errorf("%w: index review_booking already contains 'b1'", database.ErrDuplicate)}
	r, err := model.NewReview(model.ReviewProps{
		ProfessionalID: "pro", BookingID: "b1", ClientID: "c1", ClientName: "Carla", Rating: 3,
	}, model.EntityMeta{})
	require.NoError(t, err)

	err = NewReviewRepository(db).Create(context.Background(), r)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestAccountCreate_DuplicateEmail(t *testing.T) {
	db := &fakeDB{err: fmt.Errorf("%w: account_email", database.ErrDuplicate)}
	err := NewAccountRepository(db).Create(context.Background(), &identity.Account{Email: "a@x.com"})
	assert.ErrorIs(t, err, identity.ErrEmailTaken)
}

func TestParseAccount(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	a := parseAccount(map[string]interface{}{
		"id":            models.RecordID{Table: "account", ID: "abc"},
		"email":         "a@x.com",
		"password_hash": "hash",
		"user_type":     "client",
		"display_name":  "Ana",
		"created_at":    models.CustomDateTime{Time: created},
	})
	assert.Equal(t, "abc", a.ID)
	assert.Equal(t, "client", a.Metadata.UserType)
	assert.True(t, created.Equal(a.CreatedAt))
}

func TestRecordKey(t *testing.T) {
	assert.Equal(t, "abc", recordKey("booking:abc"))
	assert.Equal(t, "abc", recordKey("booking:⟨abc⟩"))
	assert.Equal(t, "abc", recordKey("abc"))
	assert.Equal(t, "abc", recordKey(models.RecordID{Table: "booking", ID: "abc"}))
	assert.Equal(t, "", recordKey(nil))
}

func TestNumericHelpers(t *testing.T) {
	m := map[string]interface{}{"a": uint64(3), "b": 4.5, "c": "x"}
	assert.Equal(t, 3, getInt(m, "a"))
	assert.Equal(t, 4.5, *getFloatPtr(m, "b"))
	assert.Nil(t, getFloatPtr(m, "c"))
	assert.Nil(t, getIntPtr(m, "missing"))
	assert.Equal(t, []string{}, getStringSlice(m, "missing"))
}

func TestTokenRepository_DeleteExpired(t *testing.T) {
	db := &fakeDB{}
	cutoff := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, NewTokenRepository(db).DeleteExpiredRefreshTokens(context.Background(), cutoff))
	require.Len(t, db.queries, 1)
	assert.Contains(t, db.queries[0], "DELETE refresh_token WHERE expires_at < $before")
	assert.NotContains(t, db.queries[0], "revoked")
	assert.Equal(t, models.CustomDateTime{Time: cutoff}, db.vars[0]["before"])
}
