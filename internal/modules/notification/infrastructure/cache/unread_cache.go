package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// UnreadCache is a read-through Redis cache for per-user unread counts.
// Role-wide and global notifications change the count of users we cannot
// enumerate, so the TTL is the staleness bound; targeted invalidation is
// only done where the affected user is known (mark-one, mark-all).
type UnreadCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewUnreadCache wraps a Redis client. A nil client disables caching; every
// Get becomes a miss and Set/Invalidate become no-ops.
func NewUnreadCache(client *redis.Client, ttl time.Duration) *UnreadCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &UnreadCache{client: client, ttl: ttl}
}

func key(userID uuid.UUID) string {
	return fmt.Sprintf("notif:unread:%s", userID)
}

// Get returns the cached count and whether it was present.
func (c *UnreadCache) Get(ctx context.Context, userID uuid.UUID) (int, bool) {
	if c.client == nil {
		return 0, false
	}
	val, err := c.client.Get(ctx, key(userID)).Result()
	if err != nil {
		return 0, false
	}
	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, false
	}
	return count, true
}

func (c *UnreadCache) Set(ctx context.Context, userID uuid.UUID, count int) {
	if c.client == nil {
		return
	}
	c.client.Set(ctx, key(userID), strconv.Itoa(count), c.ttl)
}

func (c *UnreadCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	if c.client == nil {
		return
	}
	c.client.Del(ctx, key(userID))
}
