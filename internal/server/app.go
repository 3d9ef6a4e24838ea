// Package server wires the forum together: storage, migrations, the token
// denylist, services and the HTTP transport, and runs them until a signal
// arrives.
package server

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib"
	"golang.org/x/sync/errgroup"

	"github.com/dmitrijs2005/qaforum/internal/logging"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
	"github.com/dmitrijs2005/qaforum/internal/server/auth/denylist"
	"github.com/dmitrijs2005/qaforum/internal/server/config"
	"github.com/dmitrijs2005/qaforum/internal/server/metrics"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/qaforum/internal/server/rest"
	"github.com/dmitrijs2005/qaforum/internal/server/services"
)

// runner is a long-running component stopped by cancelling ctx.
type runner interface {
	Run(ctx context.Context) error
}

type App struct {
	config  *config.Config
	logger  logging.Logger
	runners []runner
	closers []io.Closer
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.NewJSONLogger(os.Stdout, c.LogLevel)
	app := &App{config: c, logger: logger}

	db, err := sql.Open("pgx", c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}
	app.closers = append(app.closers, db)

	if err := db.PingContext(ctx); err != nil {
		app.close(ctx)
		return nil, fmt.Errorf("db init error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		app.close(ctx)
		return nil, err
	}

	dl, err := app.openDenylist(ctx)
	if err != nil {
		app.close(ctx)
		return nil, err
	}

	tokens := auth.NewTokenManager([]byte(c.SecretKey), c.AccessTokenValidityDuration)
	hasher := auth.NewBcryptHasher(c.BcryptCost, c.HashConcurrency)

	srv := rest.NewServer(c.EndpointAddrHTTP, logger, rest.Deps{
		Users:     services.NewUserService(db, rm, hasher, tokens, dl),
		Questions: services.NewQuestionService(db, rm),
		Answers:   services.NewAnswerService(db, rm),
		Tokens:    tokens,
		Denylist:  dl,
		Metrics:   metrics.New(),
		Health:    db,
	}, c.RequestTimeout, c.ShutdownTimeout)
	app.runners = append(app.runners, srv)

	return app, nil
}

// openDenylist uses Redis when configured so revocations are shared between
// instances, and an in-process list otherwise.
func (app *App) openDenylist(ctx context.Context) (denylist.Denylist, error) {
	if app.config.RedisURL == "" {
		app.logger.Info(ctx, "Using in-memory token denylist")
		return denylist.NewMemoryDenylist(denylist.DefaultMemorySize, app.config.AccessTokenValidityDuration), nil
	}

	rdb, err := denylist.NewRedisClient(ctx, app.config.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("redis init error: %w", err)
	}
	app.closers = append(app.closers, rdb)

	app.logger.Info(ctx, "Using Redis token denylist")
	return denylist.NewRedisDenylist(rdb), nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run blocks until a termination signal, cancellation of ctx or the failure
// of any runner, then releases resources.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	g, gctx := errgroup.WithContext(ctx)
	for _, r := range app.runners {
		g.Go(func() error {
			return r.Run(gctx)
		})
	}

	err := g.Wait()
	if err != nil {
		app.logger.Error(ctx, "app stopped with error", "error", err)
	}

	app.close(ctx)
	app.logger.Info(ctx, "App stopped")
	return err
}

func (app *App) close(ctx context.Context) {
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.Warn(ctx, "close failed", "error", err)
		}
	}
	app.closers = nil
}
