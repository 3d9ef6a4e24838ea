// Package repomanager wires the PostgreSQL repositories together with the
// goose schema migrations.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/qaforum/internal/dbx"
	"github.com/dmitrijs2005/qaforum/internal/server/migrations"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/answers"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/questions"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/users"
)

type PostgresRepositoryManager struct{}

func (m *PostgresRepositoryManager) Users(db dbx.DBTX) users.Repository {
	return users.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Questions(db dbx.DBTX) questions.Repository {
	return questions.NewPostgresRepository(db)
}

func (m *PostgresRepositoryManager) Answers(db dbx.DBTX) answers.Repository {
	return answers.NewPostgresRepository(db)
}

// gooseUp is replaced in tests.
var gooseUp = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations up to the latest version.
func (m *PostgresRepositoryManager) RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := gooseUp(ctx, db, "."); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	return nil
}

func NewPostgresRepositoryManager() *PostgresRepositoryManager {
	return &PostgresRepositoryManager{}
}
