package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

// TokenCache implements ports.TokenCache using Redis. It is the fast path
// for bearer tokens; the pix_credentials row remains the source of truth.
type TokenCache struct {
	client *goredis.Client
	prefix string
}

// NewTokenCache creates a new Redis-backed bearer token cache.
func NewTokenCache(client *goredis.Client) *TokenCache {
	return &TokenCache{
		client: client,
		prefix: "pixtoken:",
	}
}

func (c *TokenCache) key(tenantID, subAccountID string) string {
	return c.prefix + tenantID + ":" + subAccountID
}

// Get retrieves a cached bearer token. Returns "", nil on a miss.
func (c *TokenCache) Get(ctx context.Context, tenantID, subAccountID string) (string, error) {
	val, err := c.client.Get(ctx, c.key(tenantID, subAccountID)).Result()
	if err != nil {
		if err == goredis.Nil {
			return "", nil
		}
		return "", fmt.Errorf("redis token get: %w", err)
	}
	return val, nil
}

// Set stores a bearer token with TTL. The TTL is already clipped by the
// caller so the cache never outlives the token's safety margin.
func (c *TokenCache) Set(ctx context.Context, tenantID, subAccountID, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	err := c.client.Set(ctx, c.key(tenantID, subAccountID), token, ttl).Err()
	if err != nil {
		return fmt.Errorf("redis token set: %w", err)
	}
	return nil
}
