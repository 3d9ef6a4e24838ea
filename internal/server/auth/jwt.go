// Package auth holds the identity core of the forum: token issuance and
// verification, password hashing, credential validation and the ownership
// check applied before every mutation.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

// Claims is the token payload. The registered ID (jti) names the token for
// revocation.
type Claims struct {
	jwt.RegisteredClaims
	UserID   int64  `json:"userid"`
	UserName string `json:"username"`
}

// Identity returns the caller identity carried by c.
func (c *Claims) Identity() Identity {
	return Identity{UserID: c.UserID, UserName: c.UserName}
}

// TokenManager issues and verifies HS256 tokens with one process-wide secret.
type TokenManager struct {
	secret   []byte
	validity time.Duration
	now      func() time.Time
}

func NewTokenManager(secret []byte, validity time.Duration) *TokenManager {
	return &TokenManager{secret: secret, validity: validity, now: time.Now}
}

// Issue signs a token for id expiring after the configured validity.
func (m *TokenManager) Issue(id Identity) (string, *Claims, error) {
	now := m.now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.validity)),
		},
		UserID:   id.UserID,
		UserName: id.UserName,
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", nil, err
	}

	return token, claims, nil
}

// Verify checks signature and expiry. Every failure, whatever its cause, is
// reported as common.ErrInvalidToken.
func (m *TokenManager) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return m.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}
	if claims.UserID == 0 {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}

// IsInvalidToken reports whether err is a token verification failure.
func IsInvalidToken(err error) bool {
	return errors.Is(err, common.ErrInvalidToken)
}
