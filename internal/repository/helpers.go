package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/gigbook/internal/database"
	"github.com/forgo/gigbook/internal/model"
)

// Table names
const (
	tableAccount      = "account"
	tableRefreshToken = "refresh_token"
	tableProfile      = "profile"
	tableAvailability = "availability"
	tableBooking      = "booking"
	tableQuoteRequest = "quote_request"
	tableEquipment    = "equipment"
	tableProposal     = "equipment_proposal"
	tableReview       = "review"
	tablePortfolio    = "portfolio_item"
)

// recorder is implemented by every model entity through model.Entity
type recorder interface {
	ToRecord() map[string]interface{}
}

// recordContent turns an entity record into a CONTENT object. The id lives in
// the record key, and timestamps become SurrealDB datetimes.
func recordContent(rec map[string]interface{}) map[string]interface{} {
	content := make(map[string]interface{}, len(rec))
	for k, v := range rec {
		if k == "id" {
			continue
		}
		switch t := v.(type) {
		case time.Time:
			content[k] = models.CustomDateTime{Time: t}
		case *time.Time:
			if t == nil {
				content[k] = nil
			} else {
				content[k] = models.CustomDateTime{Time: *t}
			}
		default:
			content[k] = v
		}
	}
	return content
}

// createRecord stores an entity under table:id. Unique index violations wrap
// model.ErrConflict.
func createRecord(ctx context.Context, db database.Database, table, id string, e recorder) error {
	query := `CREATE type::thing($tb, $id) CONTENT $content`
	vars := map[string]interface{}{
		"tb":      table,
		"id":      id,
		"content": recordContent(e.ToRecord()),
	}
	if err := db.Execute(ctx, query, vars); err != nil {
		return wrapWriteError(table, err)
	}
	return nil
}

// updateRecord replaces the stored content of table:id
func updateRecord(ctx context.Context, db database.Database, table, id string, e recorder) error {
	query := `UPDATE type::thing($tb, $id) CONTENT $content`
	vars := map[string]interface{}{
		"tb":      table,
		"id":      id,
		"content": recordContent(e.ToRecord()),
	}
	if err := db.Execute(ctx, query, vars); err != nil {
		return wrapWriteError(table, err)
	}
	return nil
}

// getRecord loads table:id. A missing record returns nil, nil.
func getRecord(ctx context.Context, db database.Database, table, id string) (map[string]interface{}, error) {
	query := `SELECT * FROM type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": table, "id": id}

	result, err := db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get %s: %w", table, err)
	}
	data, ok := result.(map[string]interface{})
	if !ok {
		return nil, nil
	}
	return data, nil
}

// deleteRecord removes table:id
func deleteRecord(ctx context.Context, db database.Database, table, id string) error {
	query := `DELETE type::thing($tb, $id)`
	vars := map[string]interface{}{"tb": table, "id": id}
	if err := db.Execute(ctx, query, vars); err != nil {
		return fmt.Errorf("delete %s: %w", table, err)
	}
	return nil
}

func wrapWriteError(table string, err error) error {
	if errors.Is(err, database.ErrDuplicate) {
		return fmt.Errorf("%w: %s: %v", model.ErrConflict, table, err)
	}
	return fmt.Errorf("write %s: %w", table, err)
}

// whereClause collects filter conditions and their variables
type whereClause struct {
	conds []string
	vars  map[string]interface{}
}

func newWhere() *whereClause {
	return &whereClause{vars: make(map[string]interface{})}
}

func (w *whereClause) add(cond, name string, value interface{}) {
	w.conds = append(w.conds, cond)
	if name != "" {
		w.vars[name] = value
	}
}

func (w *whereClause) String() string {
	if len(w.conds) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conds, " AND ")
}

// dateRange adds inclusive bounds on a YYYY-MM-DD field
func (w *whereClause) dateRange(field string, r model.DateRange) {
	if r.From != nil {
		w.add(field+" >= $date_from", "date_from", *r.From)
	}
	if r.To != nil {
		w.add(field+" <= $date_to", "date_to", *r.To)
	}
}

// partyFilter restricts a bilateral table to one side
func (w *whereClause) partyFilter(f model.PartyFilter, dateField string) error {
	var field string
	switch f.Role {
	case model.RoleClient:
		field = "client_id"
	case model.RoleProfessional:
		field = "professional_id"
	case model.RoleBuyer:
		field = "buyer_id"
	case model.RoleSeller:
		field = "seller_id"
	default:
		return fmt.Errorf("%w: unknown party role %q", model.ErrValidation, f.Role)
	}
	w.add(field+" = $party_id", "party_id", f.PartyID)
	if f.Status != nil {
		w.add("status = $status", "status", string(*f.Status))
	}
	if dateField != "" {
		w.dateRange(dateField, f.Dates)
	}
	return nil
}

// queryPage runs a paginated SELECT and the matching count in one round trip
func queryPage(ctx context.Context, db database.Database, table string, where *whereClause, orderBy string, page model.Pagination) ([]map[string]interface{}, int, error) {
	vars := make(map[string]interface{}, len(where.vars)+2)
	for k, v := range where.vars {
		vars[k] = v
	}
	vars["limit"] = page.Limit
	vars["offset"] = page.Offset

	query := fmt.Sprintf(`
		SELECT * FROM %s%s ORDER BY %s LIMIT $limit START $offset;
		SELECT count() AS count FROM %s%s GROUP ALL;
	`, table, where, orderBy, table, where)

	results, err := db.Query(ctx, query, vars)
	if err != nil {
		return nil, 0, fmt.Errorf("list %s: %w", table, err)
	}

	rows := statementRows(results, 0)
	total := 0
	if counts := statementRows(results, 1); len(counts) > 0 {
		total = getInt(counts[0], "count")
	}
	return rows, total, nil
}

// queryAll runs a SELECT without pagination
func queryAll(ctx context.Context, db database.Database, query string, vars map[string]interface{}) ([]map[string]interface{}, error) {
	results, err := db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return statementRows(results, 0), nil
}

// statementRows extracts the record maps of the i-th statement
func statementRows(results []interface{}, i int) []map[string]interface{} {
	if i >= len(results) {
		return nil
	}
	resp, ok := results[i].(map[string]interface{})
	if !ok {
		return nil
	}
	arr, ok := resp["result"].([]interface{})
	if !ok {
		return nil
	}
	rows := make([]map[string]interface{}, 0, len(arr))
	for _, item := range arr {
		if m, ok := item.(map[string]interface{}); ok {
			rows = append(rows, m)
		}
	}
	return rows
}

// recordKey returns the key part of a SurrealDB record id ("booking:abc" -> "abc")
func recordKey(id interface{}) string {
	switch v := id.(type) {
	case string:
		if i := strings.Index(v, ":"); i >= 0 {
			return strings.Trim(v[i+1:], "⟨⟩`")
		}
		return v
	case models.RecordID:
		return fmt.Sprint(v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprint(v.ID)
		}
	}
	return ""
}

// entityMeta reads the kernel fields of a stored record
func entityMeta(m map[string]interface{}) model.EntityMeta {
	meta := model.EntityMeta{ID: recordKey(m["id"]), UpdatedAt: getTime(m, "updated_at")}
	if created := getTime(m, "created_at"); created != nil {
		meta.CreatedAt = *created
	}
	return meta
}

// getString extracts a string value from a map
func getString(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// getStringPtr extracts an optional string value from a map
func getStringPtr(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok && v != "" {
		return &v
	}
	return nil
}

// getInt extracts an int value from a map
func getInt(m map[string]interface{}, key string) int {
	if v := getIntPtr(m, key); v != nil {
		return *v
	}
	return 0
}

// getIntPtr extracts an optional int value from a map
func getIntPtr(m map[string]interface{}, key string) *int {
	var n int
	switch v := m[key].(type) {
	case float64:
		n = int(v)
	case float32:
		n = int(v)
	case int:
		n = v
	case int64:
		n = int(v)
	case uint64:
		n = int(v)
	default:
		return nil
	}
	return &n
}

// getFloatPtr extracts an optional float value from a map
func getFloatPtr(m map[string]interface{}, key string) *float64 {
	var f float64
	switch v := m[key].(type) {
	case float64:
		f = v
	case float32:
		f = float64(v)
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case uint64:
		f = float64(v)
	default:
		return nil
	}
	return &f
}

// getBool extracts a bool value from a map
func getBool(m map[string]interface{}, key string) bool {
	if v, ok := m[key].(bool); ok {
		return v
	}
	return false
}

// getTime extracts a time value from a map
func getTime(m map[string]interface{}, key string) *time.Time {
	switch v := m[key].(type) {
	case string:
		if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
			return &t
		}
	case time.Time:
		return &v
	case models.CustomDateTime:
		t := v.Time
		return &t
	case *models.CustomDateTime:
		if v != nil {
			t := v.Time
			return &t
		}
	}
	return nil
}

// getStringSlice extracts a string slice from a map
func getStringSlice(m map[string]interface{}, key string) []string {
	v, ok := m[key].([]interface{})
	if !ok {
		return []string{}
	}
	result := make([]string, 0, len(v))
	for _, item := range v {
		if s, ok := item.(string); ok {
			result = append(result, s)
		}
	}
	return result
}
