package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/surrealdb/surrealdb.go"
)

// SurrealDB is the Database backed by a single SurrealDB websocket session
type SurrealDB struct {
	conn *surrealdb.DB
	cfg  Config
}

// NewSurrealDB returns an unconnected store; call Connect before use
func NewSurrealDB(cfg Config) *SurrealDB {
	return &SurrealDB{cfg: cfg}
}

// Connect dials the server, signs in and selects the namespace and database.
// A failed step closes the half-open session.
func (s *SurrealDB) Connect(ctx context.Context) error {
	conn, err := surrealdb.FromEndpointURLString(ctx, "ws://"+s.cfg.Host+":"+s.cfg.Port)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	if err := s.open(ctx, conn); err != nil {
		_ = conn.Close(ctx)
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}

	s.conn = conn
	return nil
}

func (s *SurrealDB) open(ctx context.Context, conn *surrealdb.DB) error {
	auth := &surrealdb.Auth{Username: s.cfg.User, Password: s.cfg.Password}
	if _, err := conn.SignIn(ctx, auth); err != nil {
		return fmt.Errorf("signin as %s: %w", s.cfg.User, err)
	}
	if err := conn.Use(ctx, s.cfg.Namespace, s.cfg.Database); err != nil {
		return fmt.Errorf("use %s/%s: %w", s.cfg.Namespace, s.cfg.Database, err)
	}
	return nil
}

func (s *SurrealDB) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close(context.Background())
}

// Ping asks the server for its version
func (s *SurrealDB) Ping(ctx context.Context) error {
	if s.conn == nil {
		return ErrConnection
	}
	if _, err := s.conn.Version(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrConnection, err)
	}
	return nil
}

// Query runs every statement of query and returns one {status, result} map
// per statement. The first failed statement fails the whole call.
func (s *SurrealDB) Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error) {
	if s.conn == nil {
		return nil, ErrConnection
	}

	results, err := surrealdb.Query[interface{}](ctx, s.conn, query, vars)
	if err != nil {
		return nil, classifyQueryError(err.Error())
	}
	if results == nil {
		return nil, nil
	}
	return statementResults(*results)
}

// QueryOne returns the first record of the first statement
func (s *SurrealDB) QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error) {
	results, err := s.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}
	return firstRecord(results)
}

func (s *SurrealDB) Execute(ctx context.Context, query string, vars map[string]interface{}) error {
	_, err := s.Query(ctx, query, vars)
	return err
}

func statementResults(results []surrealdb.QueryResult[interface{}]) ([]interface{}, error) {
	out := make([]interface{}, 0, len(results))
	for i, r := range results {
		if r.Status == "OK" {
			out = append(out, map[string]interface{}{"status": r.Status, "result": r.Result})
			continue
		}
		if r.Error == nil {
			return nil, fmt.Errorf("%w: statement %d returned %s", ErrQuery, i, r.Status)
		}
		return nil, classifyQueryError(r.Error.Message)
	}
	return out, nil
}

// firstRecord picks the first row out of the first statement. An empty row
// set is ErrNotFound; scalar results such as count() pass through.
func firstRecord(results []interface{}) (interface{}, error) {
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	stmt, ok := results[0].(map[string]interface{})
	if !ok || stmt["status"] != "OK" {
		return results[0], nil
	}

	rows, ok := stmt["result"].([]interface{})
	if !ok {
		return stmt["result"], nil
	}
	if len(rows) == 0 {
		return nil, ErrNotFound
	}
	return rows[0], nil
}

// classifyQueryError turns unique index violations into ErrDuplicate and
// everything else into ErrQuery
func classifyQueryError(msg string) error {
	lower := strings.ToLower(msg)
	if strings.Contains(lower, "already contains") || strings.Contains(lower, "already exists") {
		return fmt.Errorf("%w: %s", ErrDuplicate, msg)
	}
	return fmt.Errorf("%w: %s", ErrQuery, msg)
}
