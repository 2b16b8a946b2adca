package revocation

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dtroode/auth-server/internal/model"
)

var _ model.RevocationLedger = (*RedisLedger)(nil)

// RedisLedger stores revoked token identifiers as Redis keys with a TTL
// equal to the remaining life of the revoked token, so entries expire on
// their own. Reads and writes are single atomic commands.
type RedisLedger struct {
	client *redis.Client
	prefix string
}

// NewRedisLedger creates a Redis-backed revocation ledger.
func NewRedisLedger(client *redis.Client, prefix string) *RedisLedger {
	if prefix == "" {
		prefix = "auth:revoked:"
	}
	return &RedisLedger{
		client: client,
		prefix: prefix,
	}
}

func (l *RedisLedger) key(jti string) string {
	return l.prefix + jti
}

// Revoke marks the identifier revoked for ttl. Revoking an identifier
// twice simply refreshes the entry; a non-positive ttl means the token has
// already expired and there is nothing to record.
func (l *RedisLedger) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := l.client.Set(ctx, l.key(jti), 1, ttl).Err(); err != nil {
		return fmt.Errorf("redis ledger: revoke failed: %w", err)
	}
	return nil
}

// IsRevoked reports whether the identifier is present in the ledger.
// Absence means "not revoked". A store error is returned alongside false;
// the caller decides the admission policy.
func (l *RedisLedger) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := l.client.Exists(ctx, l.key(jti)).Result()
	if err != nil {
		return false, fmt.Errorf("redis ledger: lookup failed: %w", err)
	}
	return n > 0, nil
}
