package revocation

import (
	"context"
	"sync"
	"time"

	"github.com/dtroode/auth-server/internal/model"
)

var _ model.RevocationLedger = (*MemoryLedger)(nil)

// MemoryLedger is an in-process revocation ledger for tests and
// single-node runs. Expired entries are dropped lazily on lookup.
type MemoryLedger struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

// NewMemoryLedger creates an empty in-memory ledger.
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{entries: make(map[string]time.Time)}
}

// Revoke marks the identifier revoked until now+ttl.
func (l *MemoryLedger) Revoke(_ context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the identifier has an unexpired entry.
func (l *MemoryLedger) IsRevoked(_ context.Context, jti string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	expiry, ok := l.entries[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(l.entries, jti)
		return false, nil
	}
	return true, nil
}
