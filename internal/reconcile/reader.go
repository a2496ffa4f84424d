package reconcile

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// streamReader is the subset of the Redis client used to drain the stream
type streamReader interface {
	XRangeN(ctx context.Context, stream, start, stop string, count int64) *redis.XMessageSliceCmd
	XDel(ctx context.Context, stream string, ids ...string) *redis.IntCmd
}

// Entry is one stream entry. Err is set when the payload could not be decoded.
type Entry struct {
	StreamID string
	Event    Event
	Err      error
}

// RedisReader reads and acknowledges events from the reconcile stream
type RedisReader struct {
	client streamReader
	stream string
}

// NewRedisReader creates a reader on the given client
func NewRedisReader(client streamReader, stream string) *RedisReader {
	if stream == "" {
		stream = DefaultStream
	}
	return &RedisReader{client: client, stream: stream}
}

// Read returns up to count entries in stream order, starting after the entry
// with ID after, or at the head of the stream when after is empty
func (r *RedisReader) Read(ctx context.Context, after string, count int64) ([]Entry, error) {
	start := "-"
	if after != "" {
		start = "(" + after
	}
	msgs, err := r.client.XRangeN(ctx, r.stream, start, "+", count).Result()
	if err != nil {
		return nil, fmt.Errorf("read reconcile stream: %w", err)
	}

	entries := make([]Entry, 0, len(msgs))
	for _, msg := range msgs {
		entry := Entry{StreamID: msg.ID}
		payload, _ := msg.Values["payload"].(string)
		if err := json.Unmarshal([]byte(payload), &entry.Event); err != nil {
			entry.Err = fmt.Errorf("decode entry %s: %w", msg.ID, err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Ack removes handled entries from the stream
func (r *RedisReader) Ack(ctx context.Context, ids ...string) error {
	if len(ids) == 0 {
		return nil
	}
	if err := r.client.XDel(ctx, r.stream, ids...).Err(); err != nil {
		return fmt.Errorf("ack reconcile entries: %w", err)
	}
	return nil
}
