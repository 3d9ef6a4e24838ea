package auth

import (
	"context"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

// Identity is the authenticated caller resolved from a verified token.
type Identity struct {
	UserID   int64  `json:"userid"`
	UserName string `json:"username"`
}

type identityKey struct{}

// WithIdentity attaches id to ctx.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity attached by the auth middleware.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

// EnsureOwner permits a mutation only when the caller owns the resource.
// Owners are compared by numeric id.
func EnsureOwner(id Identity, ownerID int64) error {
	if id.UserID == 0 || id.UserID != ownerID {
		return common.ErrorForbidden
	}
	return nil
}
