package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/linklock/linklock-api/internal/logger"
)

// PublicProfileCacheRepository caches rendered public-profile payloads in
// Redis. Profile pages are unauthenticated and hot; stale entries age out
// by TTL, no invalidation.
type PublicProfileCacheRepository struct {
	client *redis.Client
	exp    time.Duration // expiration duration for cached payloads
}

// NewPublicProfileCacheRepository creates a new repository instance with the given TTL
func NewPublicProfileCacheRepository(client *redis.Client, expiration time.Duration) *PublicProfileCacheRepository {
	return &PublicProfileCacheRepository{
		client: client,
		exp:    expiration,
	}
}

// Get fetches a cached payload. A miss returns (nil, nil).
func (r *PublicProfileCacheRepository) Get(ctx context.Context, username string) ([]byte, error) {
	key := fmt.Sprintf("public_profile:%s", username)

	val, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		logger.Log.Infow("profile cache read failed",
			"key", key,
			"error", err,
		)
		return nil, err
	}

	return val, nil
}

// Set stores a rendered payload under the profile's username.
func (r *PublicProfileCacheRepository) Set(ctx context.Context, username string, payload []byte) error {
	key := fmt.Sprintf("public_profile:%s", username)

	if err := r.client.Set(ctx, key, payload, r.exp).Err(); err != nil {
		logger.Log.Infow("profile cache write failed",
			"key", key,
			"error", err,
		)
		return err
	}
	return nil
}
