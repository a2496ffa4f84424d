// Package database is the storage layer under the repositories: a small
// Database interface, its SurrealDB implementation, the schema applied by
// Migrate and AtomicBatch for multi-statement writes.
//
// Query returns every statement result, QueryOne the first row of the first
// statement (ErrNotFound when empty) and Execute discards results. Driver
// failures are classified as ErrConnection, ErrDuplicate or ErrQuery so
// callers can branch with errors.Is:
//
//	if errors.Is(err, database.ErrDuplicate) {
//	    return model.ErrConflict
//	}
//
// # Usage Example
//
//	db := database.NewSurrealDB(cfg)
//	if err := db.Connect(ctx); err != nil {
//	    return err
//	}
//	defer db.Close()
//	if err := database.Migrate(ctx, db); err != nil {
//	    return err
//	}
package database

import (
	"context"
	"errors"
)

// Error classes returned by Database implementations
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique index violation (e.g., a second review for a booking).
	ErrDuplicate = errors.New("duplicate record")

	// ErrConnection indicates a failure to connect to or communicate with the database.
	ErrConnection = errors.New("database connection error")

	// ErrQuery indicates a query execution failure (syntax error, invalid reference, etc.).
	ErrQuery = errors.New("query error")
)

// Database defines the interface for database operations
type Database interface {
	// Connection management
	Connect(ctx context.Context) error
	Close() error
	Ping(ctx context.Context) error

	// Query executes a query and returns results
	Query(ctx context.Context, query string, vars map[string]interface{}) ([]interface{}, error)

	// QueryOne executes a query and returns a single result
	QueryOne(ctx context.Context, query string, vars map[string]interface{}) (interface{}, error)

	// Execute runs a query without returning results (for mutations)
	Execute(ctx context.Context, query string, vars map[string]interface{}) error
}

// Config holds database configuration
type Config struct {
	Host      string
	Port      string
	User      string
	Password  string
	Namespace string
	Database  string
}
