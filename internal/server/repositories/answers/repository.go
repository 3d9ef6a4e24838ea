package answers

import (
	"context"

	"github.com/dmitrijs2005/qaforum/internal/server/models"
)

// Repository persists answers. Ownership is not checked here.
type Repository interface {
	// Create inserts a and fills its ID and timestamps. A reference to a
	// question that does not exist yields common.ErrorNotFound.
	Create(ctx context.Context, a *models.Answer) (*models.Answer, error)
	GetByID(ctx context.Context, id int64) (*models.Answer, error)
	// ListByQuestion returns the answers of one question, newest first.
	ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error)
	Update(ctx context.Context, a *models.Answer) (*models.Answer, error)
	Delete(ctx context.Context, id int64) error
	// DeleteByQuestion removes every answer of questionID and reports how many went.
	DeleteByQuestion(ctx context.Context, questionID string) (int64, error)
}
