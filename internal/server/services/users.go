// Package services contains the server business logic: registration and
// login, question and answer management with ownership enforcement.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
	"github.com/dmitrijs2005/qaforum/internal/server/auth/denylist"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/repomanager"
)

// PasswordHasher is satisfied by auth.BcryptHasher.
type PasswordHasher interface {
	Hash(ctx context.Context, plaintext string) (string, error)
	Verify(ctx context.Context, plaintext, hash string) bool
}

// LoginResult is a freshly issued token and the user it belongs to.
type LoginResult struct {
	Token string
	User  *models.User
}

type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      *auth.TokenManager
	denylist    denylist.Denylist
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher,
	tokens *auth.TokenManager, dl denylist.Denylist) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		denylist:    dl,
	}
}

// Register validates reg, rejects taken usernames or emails and stores the
// user with a hashed password. Validation happens before any hashing.
func (s *UserService) Register(ctx context.Context, reg auth.Registration) (*models.User, error) {
	reg.Normalize()
	if err := reg.Validate(); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users(s.db)

	field, err := repo.FindConflict(ctx, reg.UserName, reg.Email)
	if err != nil {
		return nil, fmt.Errorf("conflict check: %w", err)
	}
	if field != "" {
		return nil, &common.DuplicateError{Field: field}
	}

	hash, err := s.hasher.Hash(ctx, reg.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user, err := repo.Create(ctx, &models.User{
		UserName:     reg.UserName,
		FirstName:    reg.FirstName,
		LastName:     reg.LastName,
		Email:        reg.Email,
		PasswordHash: hash,
	})
	if err != nil {
		// a concurrent registration can win the race past FindConflict
		var dup *common.DuplicateError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login returns common.ErrorNotFound for an unknown email and
// common.ErrorInvalidCredentials for a wrong password.
func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = auth.NormalizeEmail(email)
	if email == "" || password == "" {
		return nil, common.NewValidationError("fields", "please enter all required fields")
	}

	user, err := s.repomanager.Users(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, fmt.Errorf("user %w", common.ErrorNotFound)
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !s.hasher.Verify(ctx, password, user.PasswordHash) {
		return nil, common.ErrorInvalidCredentials
	}

	token, _, err := s.tokens.Issue(auth.Identity{UserID: user.ID, UserName: user.UserName})
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// Logout revokes the token described by claims until it expires.
func (s *UserService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil || claims.ID == "" || claims.ExpiresAt == nil {
		return common.ErrInvalidToken
	}
	if err := s.denylist.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}
