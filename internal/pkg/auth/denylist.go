// internal/pkg/auth/denylist.go
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	redisdb "github.com/pressart/storefront-api/internal/infrastructure/database/redis"
)

// ErrTokenRevoked is returned for tokens that were logged out
var ErrTokenRevoked = errors.New("token has been revoked")

// Denylist remembers logged-out token ids until the tokens expire
type Denylist struct {
	client *redisdb.Client
	now    func() time.Time
}

// NewDenylist creates a Redis backed token denylist
func NewDenylist(client *redisdb.Client) *Denylist {
	return &Denylist{
		client: client,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func revokedKey(tokenID string) string {
	return fmt.Sprintf("auth:revoked:%s", tokenID)
}

// Revoke denies the token for the rest of its lifetime
func (d *Denylist) Revoke(ctx context.Context, claims *Claims) error {
	ttl := time.Minute
	if claims.ExpiresAt != nil {
		ttl = claims.ExpiresAt.Time.Sub(d.now())
	}
	if ttl <= 0 {
		return nil
	}
	if err := d.client.Redis.Set(ctx, revokedKey(claims.ID), "1", ttl).Err(); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}
	return nil
}

// Check returns ErrTokenRevoked when the token id was revoked
func (d *Denylist) Check(ctx context.Context, tokenID string) error {
	revoked, err := d.client.Exists(ctx, revokedKey(tokenID))
	if err != nil {
		return fmt.Errorf("failed to check token: %w", err)
	}
	if revoked {
		return ErrTokenRevoked
	}
	return nil
}
