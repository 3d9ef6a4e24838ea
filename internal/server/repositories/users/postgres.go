// Package users provides the PostgreSQL-backed credential store.
package users

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

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	query :=
		`INSERT INTO users (username, firstname, lastname, email, password_hash)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		user.UserName, user.FirstName, user.LastName, user.Email, user.PasswordHash).Scan(&user.ID, &user.CreatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, &common.DuplicateError{Field: duplicateField(err)}
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

// duplicateField names the user attribute behind a unique violation.
func duplicateField(err error) string {
	name := dbx.ConstraintName(err)
	switch {
	case strings.Contains(name, "email"):
		return "email"
	case strings.Contains(name, "username"):
		return "username"
	default:
		return "user"
	}
}

// FindConflict reports which of username (compared without case) or email
// is already taken, or "" when both are free.
func (r *PostgresRepository) FindConflict(ctx context.Context, userName, email string) (string, error) {
	query :=
		`SELECT username, email FROM users
		 WHERE lower(username) = lower($1) OR email = $2
		 LIMIT 1`

	var existingName, existingEmail string
	err := r.db.QueryRowContext(ctx, query, userName, email).Scan(&existingName, &existingEmail)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("db error: %w", err)
	}

	if strings.EqualFold(existingName, userName) {
		return "username", nil
	}
	return "email", nil
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT id, username, firstname, lastname, email, password_hash, created_at FROM users
		 WHERE email = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query :=
		`SELECT id, username, firstname, lastname, email, password_hash, created_at FROM users
		 WHERE id = $1`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

func (r *PostgresRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	err := row.Scan(&user.ID, &user.UserName, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash, &user.CreatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}
