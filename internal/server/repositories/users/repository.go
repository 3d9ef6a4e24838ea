package users

import (
	"context"

	"github.com/dmitrijs2005/qaforum/internal/server/models"
)

// Repository is the credential store.
type Repository interface {
	// Create inserts user and fills its ID and CreatedAt. A uniqueness
	// violation is reported as *common.DuplicateError.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// FindConflict returns "username" or "email" when an existing user already
	// holds either value, or "" when both are free.
	FindConflict(ctx context.Context, userName, email string) (string, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id int64) (*models.User, error)
}
