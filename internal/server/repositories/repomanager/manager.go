package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/qaforum/internal/dbx"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/answers"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/questions"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services decide the transactional scope.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Questions(db dbx.DBTX) questions.Repository
	Answers(db dbx.DBTX) answers.Repository
}
