// Package denylist records revoked token ids until the tokens would have
// expired anyway.
package denylist

import (
	"context"
	"time"
)

// Denylist is consulted by the auth middleware after a token verifies.
type Denylist interface {
	// Revoke marks jti revoked until expiresAt. Already expired tokens are ignored.
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
