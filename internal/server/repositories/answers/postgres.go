// Package answers provides the PostgreSQL-backed answer store.
package answers

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/dbx"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	query :=
		`INSERT INTO answers (user_id, question_id, body)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.UserID, a.QuestionID, a.Body).
		Scan(&a.ID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if dbx.IsForeignKeyViolation(err) {
			// SQLite does not name the violated key; the question is the usual culprit.
			if strings.Contains(dbx.ConstraintName(err), "user_id") {
				return nil, fmt.Errorf("user %d: %w", a.UserID, common.ErrorUnauthorized)
			}
			return nil, fmt.Errorf("question %s: %w", a.QuestionID, common.ErrorNotFound)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Answer, error) {
	query :=
		`SELECT id, user_id, question_id, body, created_at, updated_at FROM answers
		 WHERE id = $1`

	a := &models.Answer{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&a.ID, &a.UserID, &a.QuestionID, &a.Body, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error) {
	query :=
		`SELECT id, user_id, question_id, body, created_at, updated_at FROM answers
		 WHERE question_id = $1
		 ORDER BY created_at DESC, id DESC`

	rows, err := r.db.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Answer, 0)
	for rows.Next() {
		a := &models.Answer{}
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.Body, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) Update(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	query :=
		`UPDATE answers SET body = $1, updated_at = now()
		 WHERE id = $2
		 RETURNING user_id, question_id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, a.Body, a.ID).
		Scan(&a.UserID, &a.QuestionID, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return a, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) DeleteByQuestion(ctx context.Context, questionID string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM answers WHERE question_id = $1`, questionID)
	if err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}

	return n, nil
}
