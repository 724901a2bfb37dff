package repositories

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/you/pomodorosvc/domain"
)

// TokenDenylistImpl implements domain.TokenDenylist using Redis keys that expire with the token
type TokenDenylistImpl struct {
	client *redis.Client
	prefix string
}

// NewTokenDenylist creates a new Redis token denylist
func NewTokenDenylist(client *redis.Client) domain.TokenDenylist {
	return &TokenDenylistImpl{client: client, prefix: "token:revoked:"}
}

// Revoke implements domain.TokenDenylist. Non-positive ttl means the token already expired.
func (d *TokenDenylistImpl) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.prefix+tokenID, 1, ttl).Err()
}

// RevokeIfAbsent implements domain.TokenDenylist with SETNX, so exactly one caller claims a token ID
func (d *TokenDenylistImpl) RevokeIfAbsent(ctx context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl <= 0 {
		return false, nil
	}
	return d.client.SetNX(ctx, d.prefix+tokenID, 1, ttl).Result()
}
