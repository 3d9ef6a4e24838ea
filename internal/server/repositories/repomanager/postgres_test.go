package repomanager

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/qaforum/internal/server/repositories/answers"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/questions"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/users"
)

func newDB(t *testing.T) *sql.DB {
	t.Helper()
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestManagerVendsPostgresRepositories(t *testing.T) {
	db := newDB(t)
	var m RepositoryManager = NewPostgresRepositoryManager()

	assert.IsType(t, &users.PostgresRepository{}, m.Users(db))
	assert.IsType(t, &questions.PostgresRepository{}, m.Questions(db))
	assert.IsType(t, &answers.PostgresRepository{}, m.Answers(db))
}

func withGooseUp(t *testing.T, fn func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error) {
	t.Helper()
	orig := gooseUp
	gooseUp = fn
	t.Cleanup(func() { gooseUp = orig })
}

func TestRunMigrations_Success(t *testing.T) {
	db := newDB(t)

	var gotDir string
	withGooseUp(t, func(_ context.Context, _ *sql.DB, dir string, _ ...goose.OptionsFunc) error {
		gotDir = dir
		return nil
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.NoError(t, err)
	assert.Equal(t, ".", gotDir)
}

func TestRunMigrations_Error(t *testing.T) {
	db := newDB(t)
	withGooseUp(t, func(context.Context, *sql.DB, string, ...goose.OptionsFunc) error {
		return errors.New("boom")
	})

	err := NewPostgresRepositoryManager().RunMigrations(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrate: boom")
}
