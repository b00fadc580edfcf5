// Package notify mirrors the notification log into a capped Redis list so other
// consumers can follow it.
package notify

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rogerio-castellano/inventory-insights/internal/models"
)

const DefaultKey = "inventory:notifications"

type RedisFeed struct {
	rdb redis.Cmdable
	key string
	max int64
}

// NewRedisFeed keeps at most max entries under key, newest at the head. A non-positive
// max leaves the list uncapped.
func NewRedisFeed(rdb redis.Cmdable, key string, max int) *RedisFeed {
	if key == "" {
		key = DefaultKey
	}
	return &RedisFeed{rdb: rdb, key: key, max: int64(max)}
}

func (f *RedisFeed) Push(ctx context.Context, n models.Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("failed to encode notification: %w", err)
	}
	if err := f.rdb.LPush(ctx, f.key, payload).Err(); err != nil {
		return fmt.Errorf("failed to push notification: %w", err)
	}
	if f.max > 0 {
		if err := f.rdb.LTrim(ctx, f.key, 0, f.max-1).Err(); err != nil {
			return fmt.Errorf("failed to trim notification feed: %w", err)
		}
	}
	return nil
}

// Recent returns up to count notifications, newest first.
func (f *RedisFeed) Recent(ctx context.Context, count int) ([]models.Notification, error) {
	values, err := f.rdb.LRange(ctx, f.key, 0, int64(count)-1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read notification feed: %w", err)
	}

	out := make([]models.Notification, 0, len(values))
	for _, v := range values {
		var n models.Notification
		if err := json.Unmarshal([]byte(v), &n); err != nil {
			return nil, fmt.Errorf("failed to decode notification: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

func (f *RedisFeed) Clear(ctx context.Context) error {
	return f.rdb.Del(ctx, f.key).Err()
}
