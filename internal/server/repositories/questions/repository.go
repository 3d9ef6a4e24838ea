package questions

import (
	"context"

	"github.com/dmitrijs2005/qaforum/internal/server/models"
)

// Repository persists questions. Update and Delete only touch rows owned by
// the given user; any other row is reported as common.ErrorNotFound.
type Repository interface {
	// Create inserts q with its preassigned ID. A taken ID is reported as
	// *common.DuplicateError and a missing author as common.ErrorUnauthorized.
	Create(ctx context.Context, q *models.Question) (*models.Question, error)
	GetByID(ctx context.Context, id string) (*models.Question, error)
	// List returns matching questions, newest first.
	List(ctx context.Context, filter models.QuestionFilter) ([]*models.Question, error)
	// Update rewrites title, description and tag of q.ID owned by q.UserID.
	Update(ctx context.Context, q *models.Question) (*models.Question, error)
	Delete(ctx context.Context, id string, userID int64) error
}
