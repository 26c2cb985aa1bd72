package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	signInTokenPrefix = "auth:signin:"
	revokedJTIPrefix  = "auth:revoked:"
	signInCounterKey  = "auth:signin-count:"
)

// RedisTokenStore keeps authentication state in Redis so that tokens and
// revocations survive restarts and are shared across instances.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) SaveSignInToken(ctx context.Context, tokenHash, email string, ttl time.Duration) error {
	return s.rdb.Set(ctx, signInTokenPrefix+tokenHash, email, ttl).Err()
}

func (s *RedisTokenStore) RedeemSignInToken(ctx context.Context, tokenHash string) (string, error) {
	email, err := s.rdb.GetDel(ctx, signInTokenPrefix+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrTokenInvalid
	}
	if err != nil {
		return "", err
	}
	return email, nil
}

func (s *RedisTokenStore) RevokeSession(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		// Token already expired; nothing to revoke.
		return nil
	}
	return s.rdb.Set(ctx, revokedJTIPrefix+jti, "1", ttl).Err()
}

func (s *RedisTokenStore) SessionRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, revokedJTIPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (s *RedisTokenStore) CountSignInRequest(ctx context.Context, email string, window time.Duration) (int64, error) {
	key := signInCounterKey + strings.ToLower(email)
	count, err := s.rdb.Incr(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 1 {
		if err := s.rdb.Expire(ctx, key, window).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}
