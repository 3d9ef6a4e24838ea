package services

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/qaforum/internal/dbx"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/repomanager"
)

type QuestionService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewQuestionService(db *sql.DB, m repomanager.RepositoryManager) *QuestionService {
	return &QuestionService{db: db, repomanager: m}
}

// Create stores a question owned by the caller. A client supplied
// QuestionID is kept, otherwise a UUID is assigned.
func (s *QuestionService) Create(ctx context.Context, id auth.Identity, in QuestionInput) (*models.Question, error) {
	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	questionID := in.QuestionID
	if questionID == "" {
		questionID = uuid.NewString()
	} else if err := validateQuestionID(questionID); err != nil {
		return nil, err
	}

	q, err := s.repomanager.Questions(s.db).Create(ctx, &models.Question{
		ID:          questionID,
		UserID:      id.UserID,
		Title:       in.Title,
		Description: in.Description,
		Tag:         in.Tag,
	})
	if err != nil {
		return nil, err
	}

	if err := s.authors().questions(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(ctx context.Context, questionID string) (*models.Question, error) {
	q, err := s.repomanager.Questions(s.db).GetByID(ctx, questionID)
	if err != nil {
		return nil, notFound("question", err)
	}

	if err := s.authors().questions(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// List returns the questions matching filter, newest first.
func (s *QuestionService) List(ctx context.Context, filter models.QuestionFilter) ([]*models.Question, error) {
	filter, err := normalizeFilter(filter)
	if err != nil {
		return nil, err
	}

	qs, err := s.repomanager.Questions(s.db).List(ctx, filter)
	if err != nil {
		return nil, err
	}

	if err := s.authors().questions(ctx, qs...); err != nil {
		return nil, err
	}
	return qs, nil
}

// Update replaces title, description and tag. Only the owner may update.
func (s *QuestionService) Update(ctx context.Context, id auth.Identity, questionID string, in QuestionInput) (*models.Question, error) {
	repo := s.repomanager.Questions(s.db)

	existing, err := repo.GetByID(ctx, questionID)
	if err != nil {
		return nil, notFound("question", err)
	}
	if err := auth.EnsureOwner(id, existing.UserID); err != nil {
		return nil, err
	}

	in.normalize()
	if err := in.validate(); err != nil {
		return nil, err
	}

	existing.UserID = id.UserID
	existing.Title = in.Title
	existing.Description = in.Description
	existing.Tag = in.Tag

	q, err := repo.Update(ctx, existing)
	if err != nil {
		return nil, notFound("question", err)
	}

	if err := s.authors().questions(ctx, q); err != nil {
		return nil, err
	}
	return q, nil
}

// Delete removes the question and all of its answers in one transaction.
// Only the owner may delete. It returns the number of answers removed.
func (s *QuestionService) Delete(ctx context.Context, id auth.Identity, questionID string) (int64, error) {
	var removed int64

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		questions := s.repomanager.Questions(tx)

		q, err := questions.GetByID(ctx, questionID)
		if err != nil {
			return notFound("question", err)
		}
		if err := auth.EnsureOwner(id, q.UserID); err != nil {
			return err
		}

		removed, err = s.repomanager.Answers(tx).DeleteByQuestion(ctx, questionID)
		if err != nil {
			return fmt.Errorf("delete answers: %w", err)
		}

		if err := questions.Delete(ctx, questionID, id.UserID); err != nil {
			return notFound("question", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return removed, nil
}

func (s *QuestionService) authors() *authorResolver {
	return newAuthorResolver(s.repomanager.Users(s.db))
}
