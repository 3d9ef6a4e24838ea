package services

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/qaforum/internal/server/auth"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/repomanager"
)

type AnswerService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewAnswerService(db *sql.DB, m repomanager.RepositoryManager) *AnswerService {
	return &AnswerService{db: db, repomanager: m}
}

// Create answers an existing question on behalf of the caller.
func (s *AnswerService) Create(ctx context.Context, id auth.Identity, questionID, body string) (*models.Answer, error) {
	body, err := normalizeAnswer(body)
	if err != nil {
		return nil, err
	}

	if _, err := s.repomanager.Questions(s.db).GetByID(ctx, questionID); err != nil {
		return nil, notFound("question", err)
	}

	// the question may still vanish before the insert; the foreign key
	// reports that as not found too
	a, err := s.repomanager.Answers(s.db).Create(ctx, &models.Answer{
		UserID:     id.UserID,
		QuestionID: questionID,
		Body:       body,
	})
	if err != nil {
		return nil, notFound("question", err)
	}

	if err := s.authors().answers(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// ListByQuestion returns the answers of questionID, newest first. An unknown
// question has no answers.
func (s *AnswerService) ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error) {
	as, err := s.repomanager.Answers(s.db).ListByQuestion(ctx, questionID)
	if err != nil {
		return nil, err
	}

	if err := s.authors().answers(ctx, as...); err != nil {
		return nil, err
	}
	return as, nil
}

// Update replaces the answer body. Only the owner may update.
func (s *AnswerService) Update(ctx context.Context, id auth.Identity, answerID int64, body string) (*models.Answer, error) {
	repo := s.repomanager.Answers(s.db)

	existing, err := repo.GetByID(ctx, answerID)
	if err != nil {
		return nil, notFound("answer", err)
	}
	if err := auth.EnsureOwner(id, existing.UserID); err != nil {
		return nil, err
	}

	body, err = normalizeAnswer(body)
	if err != nil {
		return nil, err
	}
	existing.Body = body

	a, err := repo.Update(ctx, existing)
	if err != nil {
		return nil, notFound("answer", err)
	}

	if err := s.authors().answers(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Delete removes the answer. Only the owner may delete.
func (s *AnswerService) Delete(ctx context.Context, id auth.Identity, answerID int64) error {
	repo := s.repomanager.Answers(s.db)

	existing, err := repo.GetByID(ctx, answerID)
	if err != nil {
		return notFound("answer", err)
	}
	if err := auth.EnsureOwner(id, existing.UserID); err != nil {
		return err
	}

	return notFound("answer", repo.Delete(ctx, answerID))
}

func (s *AnswerService) authors() *authorResolver {
	return newAuthorResolver(s.repomanager.Users(s.db))
}
