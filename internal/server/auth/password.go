package auth

import (
	"context"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/semaphore"
)

// DefaultBcryptCost is the work factor used for new hashes.
const DefaultBcryptCost = 10

// BcryptHasher hashes passwords with bcrypt. At most `concurrency` hash or
// compare operations run at once; other callers wait on ctx.
type BcryptHasher struct {
	cost int
	sem  *semaphore.Weighted
}

func NewBcryptHasher(cost, concurrency int) *BcryptHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultBcryptCost
	}
	if concurrency < 1 {
		concurrency = 1
	}
	return &BcryptHasher{cost: cost, sem: semaphore.NewWeighted(int64(concurrency))}
}

func (h *BcryptHasher) Hash(ctx context.Context, plaintext string) (string, error) {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer h.sem.Release(1)

	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plaintext matches hash. A malformed hash or a
// cancelled ctx is a mismatch, never an error.
func (h *BcryptHasher) Verify(ctx context.Context, plaintext, hash string) bool {
	if err := h.sem.Acquire(ctx, 1); err != nil {
		return false
	}
	defer h.sem.Release(1)

	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
