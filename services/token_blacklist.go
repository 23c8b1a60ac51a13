package services

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenRevocations reports whether a token was revoked before it expired.
type TokenRevocations interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

type RedisTokenBlacklist struct {
	Client *redis.Client
}

// NewTokenBlacklist creates a new Redis-backed token blacklist
func NewTokenBlacklist(redisURL string) (*RedisTokenBlacklist, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}
	return &RedisTokenBlacklist{Client: redis.NewClient(opts)}, nil
}

func blacklistKey(tokenType, token string) string {
	return fmt.Sprintf("blacklist:%s:%s", tokenType, token)
}

// Revoke blacklists an access token for ttl, normally the token's remaining lifetime.
func (tb *RedisTokenBlacklist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	if err := tb.Client.Set(ctx, blacklistKey(TokenTypeAccess, token), "true", ttl).Err(); err != nil {
		return fmt.Errorf("failed to blacklist token in Redis: %w", err)
	}
	return nil
}

// IsRevoked checks both the access and refresh blacklists in one round trip.
func (tb *RedisTokenBlacklist) IsRevoked(ctx context.Context, token string) (bool, error) {
	pipe := tb.Client.Pipeline()
	accessCmd := pipe.Exists(ctx, blacklistKey(TokenTypeAccess, token))
	refreshCmd := pipe.Exists(ctx, blacklistKey(TokenTypeRefresh, token))

	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("check token blacklist: %w", err)
	}
	return accessCmd.Val() > 0 || refreshCmd.Val() > 0, nil
}

func (tb *RedisTokenBlacklist) Ping(ctx context.Context) error {
	return tb.Client.Ping(ctx).Err()
}

func (tb *RedisTokenBlacklist) Close() error {
	return tb.Client.Close()
}
