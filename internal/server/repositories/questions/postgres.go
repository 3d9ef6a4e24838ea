// Package questions provides the PostgreSQL-backed question store.
package questions

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

const selectColumns = `SELECT id, user_id, title, description, tag, created_at, updated_at FROM questions`

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, q *models.Question) (*models.Question, error) {
	query :=
		`INSERT INTO questions (id, user_id, title, description, tag)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, q.ID, q.UserID, q.Title, q.Description, q.Tag).
		Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, &common.DuplicateError{Field: "questionid"}
		}
		if dbx.IsForeignKeyViolation(err) {
			return nil, fmt.Errorf("user %d: %w", q.UserID, common.ErrorUnauthorized)
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return q, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Question, error) {
	query := selectColumns + `
		 WHERE id = $1`

	q := &models.Question{}
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&q.ID, &q.UserID, &q.Title, &q.Description, &q.Tag, &q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return q, nil
}

func (r *PostgresRepository) List(ctx context.Context, filter models.QuestionFilter) ([]*models.Question, error) {
	query, args := listQuery(filter)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Question, 0)
	for rows.Next() {
		q := &models.Question{}
		if err := rows.Scan(&q.ID, &q.UserID, &q.Title, &q.Description, &q.Tag, &q.CreatedAt, &q.UpdatedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

// listQuery builds the filtered listing. Placeholders are numbered in the
// order the conditions are appended.
func listQuery(filter models.QuestionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)

	if filter.Tag != "" {
		args = append(args, filter.Tag)
		conds = append(conds, fmt.Sprintf("tag = $%d", len(args)))
	}
	if filter.Query != "" {
		args = append(args, "%"+escapeLike(filter.Query)+"%")
		conds = append(conds, fmt.Sprintf(`title ILIKE $%d ESCAPE '\'`, len(args)))
	}
	if filter.UserID != 0 {
		args = append(args, filter.UserID)
		conds = append(conds, fmt.Sprintf("user_id = $%d", len(args)))
	}

	var b strings.Builder
	b.WriteString(selectColumns)
	if len(conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(conds, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id DESC")

	return b.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// escapeLike makes s match literally inside a LIKE pattern.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

func (r *PostgresRepository) Update(ctx context.Context, q *models.Question) (*models.Question, error) {
	query :=
		`UPDATE questions SET title = $1, description = $2, tag = $3, updated_at = now()
		 WHERE id = $4 AND user_id = $5
		 RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, q.Title, q.Description, q.Tag, q.ID, q.UserID).
		Scan(&q.CreatedAt, &q.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return q, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string, userID int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM questions WHERE id = $1 AND user_id = $2`, id, userID)
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
