package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

func TestIdentityContext(t *testing.T) {
	_, ok := IdentityFrom(context.Background())
	assert.False(t, ok)

	ctx := WithIdentity(context.Background(), Identity{UserID: 3, UserName: "abebe"})
	id, ok := IdentityFrom(ctx)
	assert.True(t, ok)
	assert.Equal(t, Identity{UserID: 3, UserName: "abebe"}, id)
}

func TestEnsureOwner(t *testing.T) {
	assert.NoError(t, EnsureOwner(Identity{UserID: 3, UserName: "abebe"}, 3))
	// names are not part of the decision
	assert.NoError(t, EnsureOwner(Identity{UserID: 3, UserName: "renamed"}, 3))

	assert.ErrorIs(t, EnsureOwner(Identity{UserID: 4, UserName: "abebe"}, 3), common.ErrorForbidden)
	assert.ErrorIs(t, EnsureOwner(Identity{}, 0), common.ErrorForbidden)
}
