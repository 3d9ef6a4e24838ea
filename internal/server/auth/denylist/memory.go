package denylist

import (
	"context"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemorySize bounds the number of revocations kept in process.
const DefaultMemorySize = 100_000

// MemoryDenylist keeps revocations in a single process. Every entry lives
// for ttl, which must not be shorter than the token validity.
type MemoryDenylist struct {
	cache *lru.LRU[string, time.Time]
	now   func() time.Time
}

func NewMemoryDenylist(size int, ttl time.Duration) *MemoryDenylist {
	if size <= 0 {
		size = DefaultMemorySize
	}
	return &MemoryDenylist{
		cache: lru.NewLRU[string, time.Time](size, nil, ttl),
		now:   time.Now,
	}
}

func (d *MemoryDenylist) Revoke(_ context.Context, jti string, expiresAt time.Time) error {
	if !expiresAt.After(d.now()) {
		return nil
	}
	d.cache.Add(jti, expiresAt)
	return nil
}

func (d *MemoryDenylist) IsRevoked(_ context.Context, jti string) (bool, error) {
	expiresAt, ok := d.cache.Get(jti)
	if !ok {
		return false, nil
	}
	return expiresAt.After(d.now()), nil
}
