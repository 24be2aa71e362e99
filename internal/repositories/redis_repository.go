package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// sessionTTL matches the refresh-token lifetime.
const sessionTTL = 30 * 24 * time.Hour

// RedisRepository stores refresh-token sessions and the revocation
// blacklist, both keyed by token ID (jti).
type RedisRepository struct {
	rdb *redis.Client
}

func NewRedisRepository(rdb *redis.Client) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) StoreSession(ctx context.Context, jti string, userID string) error {
	return r.rdb.Set(ctx, "session:"+jti, userID, sessionTTL).Err()
}

func (r *RedisRepository) SessionExists(ctx context.Context, jti string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, "session:"+jti).Result()
	return exists == 1, err
}

func (r *RedisRepository) DeleteSession(ctx context.Context, jti string) error {
	return r.rdb.Del(ctx, "session:"+jti).Err()
}

// Blacklist marks an access token as revoked for the remainder of its
// lifetime.
func (r *RedisRepository) Blacklist(ctx context.Context, jti string, ttl time.Duration) error {
	return r.rdb.Set(ctx, "blacklist:"+jti, "true", ttl).Err()
}

func (r *RedisRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	exists, err := r.rdb.Exists(ctx, "blacklist:"+jti).Result()
	return exists == 1, err
}
