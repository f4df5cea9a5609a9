package repositories

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/timetablesvc/domain"
)

// Cache key prefixes, one per token purpose.
const (
	VerifyPrefix    = "verify:"
	ResetPrefix     = "reset:"
	BlacklistPrefix = "blacklist:"
	SessionPrefix   = "session:"
)

// HashSecret returns the sha256 hex digest of a raw secret. Only digests are
// ever used as cache keys, so a cache read alone cannot be replayed.
func HashSecret(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// TokenCacheImpl implements domain.TokenCache using Redis
type TokenCacheImpl struct {
	client *redis.Client
}

// NewTokenCache creates a new token cache
func NewTokenCache(client *redis.Client) domain.TokenCache {
	return &TokenCacheImpl{client: client}
}

// Put implements domain.TokenCache
func (c *TokenCacheImpl) Put(ctx context.Context, key, value string, ttl time.Duration) error {
	return c.client.Set(ctx, key, value, ttl).Err()
}

// Get implements domain.TokenCache
func (c *TokenCacheImpl) Get(ctx context.Context, key string) (string, error) {
	value, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", domain.ErrTokenNotFound
		}
		return "", err
	}
	return value, nil
}

// Delete implements domain.TokenCache
func (c *TokenCacheImpl) Delete(ctx context.Context, key string) error {
	return c.client.Del(ctx, key).Err()
}
