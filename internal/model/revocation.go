package model

import (
	"context"
	"time"
)

// RevocationLedger tracks token identifiers invalidated before their
// natural expiry. Entries carry a TTL equal to the remaining life of the
// token they revoke, so the ledger self-cleans. Absence of an identifier
// means "not revoked".
type RevocationLedger interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
