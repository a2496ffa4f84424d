// Package reconcile publishes events about state left inconsistent by a failed
// compensation, so an operator or worker can repair it later.
package reconcile

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Event kinds
const (
	KindOrphanedIdentity = "orphaned_identity"
)

// DefaultStream is the Redis stream events are appended to
const DefaultStream = "gigbook:reconcile"

// Event describes one record that may need manual repair
type Event struct {
	ID         string    `json:"id"`
	Kind       string    `json:"kind"`
	Saga       string    `json:"saga"`
	Step       string    `json:"step"`
	FailedStep string    `json:"failed_step"`
	ResourceID string    `json:"resource_id"`
	Cause      string    `json:"cause"`
	Error      string    `json:"error"`
	OccurredAt time.Time `json:"occurred_at"`
}

// streamClient is the subset of the Redis client used here
type streamClient interface {
	XAdd(ctx context.Context, a *redis.XAddArgs) *redis.StringCmd
}

// RedisStream appends events to a capped Redis stream
type RedisStream struct {
	client streamClient
	stream string
	maxLen int64
	logger *zap.Logger
}

// RedisConfig holds connection settings for the stream publisher
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Stream   string
}

// NewRedisClient opens a Redis client and checks it with a ping
func NewRedisClient(ctx context.Context, cfg RedisConfig) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

// NewRedisStream creates a publisher on the given client
func NewRedisStream(client streamClient, stream string, logger *zap.Logger) *RedisStream {
	if stream == "" {
		stream = DefaultStream
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisStream{
		client: client,
		stream: stream,
		maxLen: 10000,
		logger: logger,
	}
}

// Publish appends the event to the stream
func (s *RedisStream) Publish(ctx context.Context, ev Event) error {
	if ev.ID == "" {
		ev.ID = uuid.NewString()
	}
	if ev.OccurredAt.IsZero() {
		ev.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal reconcile event: %w", err)
	}

	id, err := s.client.XAdd(ctx, &redis.XAddArgs{
		Stream: s.stream,
		MaxLen: s.maxLen,
		Approx: true,
		Values: map[string]interface{}{
			"kind":    ev.Kind,
			"payload": string(payload),
		},
	}).Result()
	if err != nil {
		return fmt.Errorf("publish reconcile event: %w", err)
	}

	s.logger.Info("reconcile event published",
		zap.String("stream", s.stream),
		zap.String("entry_id", id),
		zap.String("kind", ev.Kind),
		zap.String("resource_id", ev.ResourceID),
	)
	return nil
}

// LogOnly records events in the log when no stream is configured
type LogOnly struct {
	logger *zap.Logger
}

// NewLogOnly creates a log-backed publisher
func NewLogOnly(logger *zap.Logger) *LogOnly {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogOnly{logger: logger}
}

// Publish logs the event at error level
func (l *LogOnly) Publish(ctx context.Context, ev Event) error {
	l.logger.Error("reconciliation required",
		zap.String("kind", ev.Kind),
		zap.String("saga", ev.Saga),
		zap.String("step", ev.Step),
		zap.String("resource_id", ev.ResourceID),
		zap.String("cause", ev.Cause),
		zap.String("error", ev.Error),
	)
	return nil
}
