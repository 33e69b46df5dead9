// Package cache holds the read-through Redis cache for per-user unread
// badge counts. The relational store stays authoritative; a miss falls back
// to the aggregator and populates the key with a short TTL.
package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// Loader computes the authoritative count on cache miss.
type Loader func(ctx context.Context) (int, error)

// BadgeCache caches unread badge counts keyed by user and category.
type BadgeCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewBadgeCache(client *redis.Client, ttl time.Duration) *BadgeCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &BadgeCache{client: client, ttl: ttl}
}

func badgeKey(category, userID string) string {
	return fmt.Sprintf("badge:%s:%s", category, userID)
}

// Get returns the cached count for (category, user), loading and caching it
// on a miss. Redis failures degrade to the loader, never to an error the
// badge endpoints would surface.
func (c *BadgeCache) Get(ctx context.Context, category, userID string, load Loader) (int, error) {
	key := badgeKey(category, userID)
	if val, err := c.client.Get(ctx, key).Result(); err == nil {
		if n, convErr := strconv.Atoi(val); convErr == nil {
			return n, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		// cache unavailable, fall through to the store
		n, loadErr := load(ctx)
		return n, loadErr
	}

	n, err := load(ctx)
	if err != nil {
		return 0, err
	}
	_ = c.client.Set(ctx, key, strconv.Itoa(n), c.ttl).Err()
	return n, nil
}

// Invalidate drops every badge key for the user so the next read recomputes.
func (c *BadgeCache) Invalidate(ctx context.Context, userID string) error {
	return c.client.Del(ctx,
		badgeKey(CategoryMessages, userID),
		badgeKey(CategoryNotifications, userID),
	).Err()
}

// Badge categories.
const (
	CategoryMessages      = "messages"
	CategoryNotifications = "notifications"
)
