package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("super-secret"), time.Hour)
	id := Identity{UserID: 42, UserName: "abebe"}

	tok, issued, err := m.Issue(id)
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := m.Verify(tok)
	require.NoError(t, err)
	assert.Equal(t, id, claims.Identity())
	assert.Equal(t, issued.ID, claims.ID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, 5*time.Second)
}

func TestIssue_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	m := NewTokenManager([]byte("k"), time.Hour)
	_, a, err := m.Issue(Identity{UserID: 1, UserName: "a"})
	require.NoError(t, err)
	_, b, err := m.Issue(Identity{UserID: 1, UserName: "a"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestVerify_FailsUniformly(t *testing.T) {
	t.Parallel()

	secret := []byte("right-secret")
	m := NewTokenManager(secret, time.Hour)
	good, _, err := m.Issue(Identity{UserID: 7, UserName: "u"})
	require.NoError(t, err)

	expiredMgr := NewTokenManager(secret, time.Hour)
	expiredMgr.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	expired, _, err := expiredMgr.Issue(Identity{UserID: 7, UserName: "u"})
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
		UserID:           7,
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{UserID: 7}).SignedString(secret)
	require.NoError(t, err)

	noUser, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour))},
	}).SignedString(secret)
	require.NoError(t, err)

	parts := strings.Split(good, ".")
	tampered := parts[0] + "." + parts[1] + "x." + parts[2]

	tests := []struct {
		name  string
		token string
		mgr   *TokenManager
	}{
		{"expired", expired, m},
		{"wrong secret", good, NewTokenManager([]byte("wrong-secret"), time.Hour)},
		{"malformed", "not.a.jwt", m},
		{"empty", "", m},
		{"alg none", none, m},
		{"no expiry", noExp, m},
		{"no user", noUser, m},
		{"tampered payload", tampered, m},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := tt.mgr.Verify(tt.token)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, common.ErrInvalidToken)
			assert.True(t, IsInvalidToken(err))
		})
	}
}

func TestVerify_ExpiresAfterValidity(t *testing.T) {
	t.Parallel()

	now := time.Now()
	m := NewTokenManager([]byte("k"), time.Hour)
	m.now = func() time.Time { return now }

	tok, _, err := m.Issue(Identity{UserID: 1, UserName: "a"})
	require.NoError(t, err)

	m.now = func() time.Time { return now.Add(59 * time.Minute) }
	_, err = m.Verify(tok)
	require.NoError(t, err)

	m.now = func() time.Time { return now.Add(61 * time.Minute) }
	_, err = m.Verify(tok)
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
