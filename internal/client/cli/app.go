package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/qaforum/internal/client/api"
	"github.com/dmitrijs2005/qaforum/internal/client/config"
)

const logoutOnExitTimeout = 3 * time.Second

// forumAPI is the subset of *api.Client the commands use.
type forumAPI interface {
	Token() string
	SetToken(token string)
	Register(ctx context.Context, r api.Registration) (*api.User, error)
	Login(ctx context.Context, email, password string) (*api.LoginResult, error)
	Check(ctx context.Context) (*api.Session, error)
	Logout(ctx context.Context) error
	ListQuestions(ctx context.Context, f api.QuestionFilter) ([]api.Question, error)
	GetQuestion(ctx context.Context, id string) (*api.Question, error)
	CreateQuestion(ctx context.Context, in api.QuestionInput) (*api.Question, error)
	UpdateQuestion(ctx context.Context, id string, in api.QuestionInput) (*api.Question, error)
	DeleteQuestion(ctx context.Context, id string) (int64, error)
	ListAnswers(ctx context.Context, questionID string) ([]api.Answer, error)
	CreateAnswer(ctx context.Context, questionID, body string) (*api.Answer, error)
	UpdateAnswer(ctx context.Context, answerID int64, body string) (*api.Answer, error)
	DeleteAnswer(ctx context.Context, answerID int64) error
}

type App struct {
	config   *config.Config
	api      forumAPI
	reader   *bufio.Reader
	out      io.Writer
	userID   int64
	userName string
}

func NewApp(c *config.Config) (*App, error) {
	client, err := api.New(c.ServerURL, c.RequestTimeout)
	if err != nil {
		return nil, err
	}
	return &App{config: c, api: client, reader: bufio.NewReader(os.Stdin), out: os.Stdout}, nil
}

// Run drives the REPL until exit or EOF and revokes any open session.
func (a *App) Run(ctx context.Context) {
	printlnFn("Welcome to the Q&A forum CLI (type 'help' for commands)")
	printlnFn("Server:", a.config.ServerURL)

	runREPL(ctx, a, a.getStatus, a.reader)

	if a.isLoggedIn() {
		ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), logoutOnExitTimeout)
		defer cancel()
		_ = a.api.Logout(ctx)
	}
}

func (a *App) isLoggedIn() bool {
	return a.api.Token() != ""
}

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	return fmt.Sprintf("(%s)", a.userName)
}

func (a *App) setSession(userID int64, userName string) {
	a.userID = userID
	a.userName = userName
}

func (a *App) clearSession() {
	a.api.SetToken("")
	a.setSession(0, "")
}

// check drops the local session when the server no longer accepts the token.
func (a *App) check(err error) error {
	if errors.Is(err, api.ErrUnauthorized) && a.isLoggedIn() {
		a.clearSession()
		return fmt.Errorf("%w (session ended, please log in again)", err)
	}
	return err
}
