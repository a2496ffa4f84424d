package database

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/surrealdb/surrealdb.go"
)

type recordingDB struct {
	queries []string
	vars    []map[string]interface{}
	err     error
}

func (r *recordingDB) Connect(ctx context.Context) error { return nil }
func (r *recordingDB) Close() error                      { return nil }
func (r *recordingDB) Ping(ctx context.Context) error    { return nil }

func (r *recordingDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	r.queries = append(r.queries, query)
	r.vars = append(r.vars, vars)
	return nil, r.err
}

func (r *recordingDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	_, err := r.Query(ctx, query, vars)
	return nil, err
}

func (r *recordingDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := r.Query(ctx, query, vars)
	return err
}

func TestTxBuilder_NamespacesVariables(t *testing.T) {
	tb := NewTxBuilder()
	m1 := tb.Add("CREATE type::thing('review', $id) CONTENT $content", map[string]interface{}{
		"id":      "r1",
		"content": map[string]interface{}{"rating": 5},
	})
	m2 := tb.Add("UPDATE type::thing('profile', $id) SET rating = $id_rating", map[string]interface{}{
		"id":        "p1",
		"id_rating": 4.5,
	})

	query, vars := tb.Build()
	require.True(t, strings.HasPrefix(query, "BEGIN TRANSACTION;\n"))
	require.True(t, strings.HasSuffix(query, "COMMIT TRANSACTION;"))

	assert.NotEqual(t, m1["id"], m2["id"])
	assert.Equal(t, "r1", vars[m1["id"]])
	assert.Equal(t, "p1", vars[m2["id"]])
	assert.Equal(t, 4.5, vars[m2["id_rating"]])
	assert.Contains(t, query, "$"+m2["id_rating"])
	assert.Contains(t, query, "type::thing('profile', $"+m2["id"]+")")
	assert.NotContains(t, query, "$id ")
}

func TestTxBuilder_Empty(t *testing.T) {
	query, vars := NewTxBuilder().Build()
	assert.Empty(t, query)
	assert.Nil(t, vars)
}

func TestAtomicBatch_SingleRoundTrip(t *testing.T) {
	db := &recordingDB{}
	batch := NewAtomicBatch().
		Add("CREATE type::thing('review', $id) CONTENT $content", map[string]interface{}{"id": "r1", "content": map[string]interface{}{}}).
		Add("UPDATE type::thing('profile', $id) SET review_count = 1", map[string]interface{}{"id": "p1"})
	assert.Equal(t, 2, batch.Len())

	require.NoError(t, batch.Execute(context.Background(), db))
	require.Len(t, db.queries, 1)
	assert.Equal(t, 2, strings.Count(db.queries[0], "type::thing"))
}

func TestAtomicBatch_PropagatesError(t *testing.T) {
	db := &recordingDB{err: ErrDuplicate}
	err := NewAtomicBatch().Add("CREATE review CONTENT {}", nil).Execute(context.Background(), db)
	assert.ErrorIs(t, err, ErrDuplicate)

	assert.NoError(t, NewAtomicBatch().Execute(context.Background(), db))
}

func TestMigrate(t *testing.T) {
	db := &recordingDB{}
	require.NoError(t, Migrate(context.Background(), db))
	assert.Len(t, db.queries, len(schema))

	db = &recordingDB{err: errors.New("boom")}
	assert.Error(t, Migrate(context.Background(), db))
}

func TestClassifyQueryError(t *testing.T) {
	err := classifyQueryError("Database index `review_booking` already contains 'b1', with record `review:x`")
	assert.ErrorIs(t, err, ErrDuplicate)

	err = classifyQueryError("Parse error")
	assert.ErrorIs(t, err, ErrQuery)
	assert.NotErrorIs(t, err, ErrDuplicate)
}

func TestStatementResults(t *testing.T) {
	out, err := statementResults([]surrealdb.QueryResult[interface{}]{
		{Status: "OK", Result: []interface{}{"a"}},
		{Status: "OK", Result: 2},
	})
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, 2, out[1].(map[string]interface{})["result"])

	_, err = statementResults([]surrealdb.QueryResult[interface{}]{
		{Status: "OK"},
		{Status: "ERR", Error: &surrealdb.QueryError{Message: "Database index `account_email` already contains 'a@x.com'"}},
	})
	assert.ErrorIs(t, err, ErrDuplicate)

	_, err = statementResults([]surrealdb.QueryResult[interface{}]{{Status: "ERR"}})
	assert.ErrorIs(t, err, ErrQuery)
}

func TestFirstRecord(t *testing.T) {
	_, err := firstRecord(nil)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = firstRecord([]interface{}{map[string]interface{}{"status": "OK", "result": []interface{}{}}})
	assert.ErrorIs(t, err, ErrNotFound)

	rec, err := firstRecord([]interface{}{map[string]interface{}{
		"status": "OK",
		"result": []interface{}{map[string]interface{}{"name": "a"}},
	}})
	require.NoError(t, err)
	assert.Equal(t, "a", rec.(map[string]interface{})["name"])

	scalar, err := firstRecord([]interface{}{map[string]interface{}{"status": "OK", "result": 3}})
	require.NoError(t, err)
	assert.Equal(t, 3, scalar)
}
