package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RefreshStore keeps track of refresh tokens that may still be used. A
// token is rotated once: Rotate swaps it for its successor atomically and
// remembers the swap for a grace period, so requests that raced the
// rotation can still be recognised.
type RefreshStore interface {
	Save(ctx context.Context, subject, jti string, ttl time.Duration) error
	Rotate(ctx context.Context, subject, jti, successor string, ttl, grace time.Duration) (bool, error)
	RotatedRecently(ctx context.Context, subject, jti string) (bool, error)
	Revoke(ctx context.Context, subject, jti string) error
	RevokeAll(ctx context.Context, subject string) error
}

// RedisRefreshStore stores refresh token ids as expiring Redis keys.
type RedisRefreshStore struct {
	client *redis.Client
}

var _ RefreshStore = (*RedisRefreshStore)(nil)

// NewRedisRefreshStore creates a refresh store on client.
func NewRedisRefreshStore(client *redis.Client) *RedisRefreshStore {
	return &RedisRefreshStore{client: client}
}

func refreshKey(subject, jti string) string {
	return fmt.Sprintf("refresh_token:%s:%s", subject, jti)
}

func rotatedKey(subject, jti string) string {
	return fmt.Sprintf("refresh_rotated:%s:%s", subject, jti)
}

// KEYS: old token, rotation marker, successor token.
// ARGV: successor jti, successor ttl ms, grace ms.
var rotateScript = redis.NewScript(`
if not redis.call('GETDEL', KEYS[1]) then
	return 0
end
redis.call('SET', KEYS[3], '1', 'PX', ARGV[2])
redis.call('SET', KEYS[2], ARGV[1], 'PX', ARGV[3])
return 1
`)

func (s *RedisRefreshStore) Save(ctx context.Context, subject, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return fmt.Errorf("refresh token ttl must be positive, got %s", ttl)
	}
	if err := s.client.Set(ctx, refreshKey(subject, jti), "1", ttl).Err(); err != nil {
		return fmt.Errorf("storing refresh token: %w", err)
	}
	return nil
}

// Rotate deletes jti, stores successor and marks jti as rotated for grace.
// It reports false, storing nothing, when jti was not present. Of two
// concurrent calls for the same token only one sees true.
func (s *RedisRefreshStore) Rotate(ctx context.Context, subject, jti, successor string, ttl, grace time.Duration) (bool, error) {
	if ttl <= 0 || grace <= 0 {
		return false, fmt.Errorf("rotation ttl and grace must be positive, got %s and %s", ttl, grace)
	}
	keys := []string{refreshKey(subject, jti), rotatedKey(subject, jti), refreshKey(subject, successor)}
	n, err := rotateScript.Run(ctx, s.client, keys, successor, ttl.Milliseconds(), grace.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("rotating refresh token: %w", err)
	}
	return n == 1, nil
}

// RotatedRecently reports whether jti was rotated within the grace period
// and its successor is still live, either stored or itself just rotated.
// A successor revoked by sign-out makes the answer false.
func (s *RedisRefreshStore) RotatedRecently(ctx context.Context, subject, jti string) (bool, error) {
	successor, err := s.client.Get(ctx, rotatedKey(subject, jti)).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("reading refresh rotation: %w", err)
	}
	live, err := s.client.Exists(ctx, refreshKey(subject, successor), rotatedKey(subject, successor)).Result()
	if err != nil {
		return false, fmt.Errorf("reading refresh rotation: %w", err)
	}
	return live > 0, nil
}

func (s *RedisRefreshStore) Revoke(ctx context.Context, subject, jti string) error {
	if err := s.client.Del(ctx, refreshKey(subject, jti)).Err(); err != nil {
		return fmt.Errorf("revoking refresh token: %w", err)
	}
	return nil
}

// RevokeAll deletes every stored refresh token and rotation marker of
// subject.
func (s *RedisRefreshStore) RevokeAll(ctx context.Context, subject string) error {
	var keys []string
	for _, pattern := range []string{refreshKey(subject, "*"), rotatedKey(subject, "*")} {
		iter := s.client.Scan(ctx, 0, pattern, 100).Iterator()
		for iter.Next(ctx) {
			keys = append(keys, iter.Val())
		}
		if err := iter.Err(); err != nil {
			return fmt.Errorf("scanning refresh tokens: %w", err)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("revoking refresh tokens: %w", err)
	}
	return nil
}
