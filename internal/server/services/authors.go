package services

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/users"
)

// authorResolver looks authors up by id, at most once per id. It lives for
// one request.
type authorResolver struct {
	repo  users.Repository
	cache map[int64]*models.Author
}

func newAuthorResolver(repo users.Repository) *authorResolver {
	return &authorResolver{repo: repo, cache: make(map[int64]*models.Author)}
}

func (r *authorResolver) resolve(ctx context.Context, userID int64) (*models.Author, error) {
	if a, ok := r.cache[userID]; ok {
		return a, nil
	}

	user, err := r.repo.GetByID(ctx, userID)
	if err != nil {
		if !errors.Is(err, common.ErrorNotFound) {
			return nil, err
		}
		// keep the id so the client can still tell authors apart
		a := &models.Author{UserID: userID}
		r.cache[userID] = a
		return a, nil
	}

	a := user.Author()
	r.cache[userID] = a
	return a, nil
}

func (r *authorResolver) questions(ctx context.Context, qs ...*models.Question) error {
	for _, q := range qs {
		a, err := r.resolve(ctx, q.UserID)
		if err != nil {
			return err
		}
		q.Author = a
	}
	return nil
}

func (r *authorResolver) answers(ctx context.Context, as ...*models.Answer) error {
	for _, ans := range as {
		a, err := r.resolve(ctx, ans.UserID)
		if err != nil {
			return err
		}
		ans.Author = a
	}
	return nil
}
