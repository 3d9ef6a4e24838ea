// Package rest is the HTTP transport of the forum: routing, the bearer token
// middleware, JSON handlers and the mapping of service errors to status codes.
package rest

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/dmitrijs2005/qaforum/internal/logging"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
	"github.com/dmitrijs2005/qaforum/internal/server/auth/denylist"
	"github.com/dmitrijs2005/qaforum/internal/server/metrics"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, reg auth.Registration) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type QuestionService interface {
	Create(ctx context.Context, id auth.Identity, in services.QuestionInput) (*models.Question, error)
	Get(ctx context.Context, questionID string) (*models.Question, error)
	List(ctx context.Context, filter models.QuestionFilter) ([]*models.Question, error)
	Update(ctx context.Context, id auth.Identity, questionID string, in services.QuestionInput) (*models.Question, error)
	Delete(ctx context.Context, id auth.Identity, questionID string) (int64, error)
}

type AnswerService interface {
	Create(ctx context.Context, id auth.Identity, questionID, body string) (*models.Answer, error)
	ListByQuestion(ctx context.Context, questionID string) ([]*models.Answer, error)
	Update(ctx context.Context, id auth.Identity, answerID int64, body string) (*models.Answer, error)
	Delete(ctx context.Context, id auth.Identity, answerID int64) error
}

// TokenVerifier is satisfied by auth.TokenManager.
type TokenVerifier interface {
	Verify(token string) (*auth.Claims, error)
}

// Pinger reports storage liveness; *sql.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Deps are the collaborators the HTTP layer delegates to.
type Deps struct {
	Users     UserService
	Questions QuestionService
	Answers   AnswerService
	Tokens    TokenVerifier
	Denylist  denylist.Denylist
	Metrics   *metrics.HTTPMetrics
	Health    Pinger
}

type Server struct {
	address         string
	logger          logging.Logger
	deps            Deps
	requestTimeout  time.Duration
	shutdownTimeout time.Duration
}

func NewServer(address string, l logging.Logger, d Deps, requestTimeout, shutdownTimeout time.Duration) *Server {
	if d.Metrics == nil {
		d.Metrics = metrics.New()
	}
	return &Server{
		address:         address,
		logger:          l.With("module", "http_server"),
		deps:            d,
		requestTimeout:  requestTimeout,
		shutdownTimeout: shutdownTimeout,
	}
}

// Handler builds the complete middleware chain around the router.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()
	r.Use(s.recoverer, s.instrument, s.timeout)

	r.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	r.Handle("/metrics", s.deps.Metrics.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", s.register).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.login).Methods(http.MethodPost)
	r.Handle("/auth/check", s.authenticate(s.check)).Methods(http.MethodGet)
	r.Handle("/auth/logout", s.authenticate(s.logout)).Methods(http.MethodPost)

	r.HandleFunc("/questions", s.listQuestions).Methods(http.MethodGet)
	r.Handle("/questions", s.authenticate(s.createQuestion)).Methods(http.MethodPost)
	r.HandleFunc("/questions/{questionid}", s.getQuestion).Methods(http.MethodGet)
	r.Handle("/questions/{questionid}", s.authenticate(s.updateQuestion)).Methods(http.MethodPut)
	r.Handle("/questions/{questionid}", s.authenticate(s.deleteQuestion)).Methods(http.MethodDelete)

	r.HandleFunc("/answers/{questionid}", s.listAnswers).Methods(http.MethodGet)
	r.Handle("/answers", s.authenticate(s.createAnswer)).Methods(http.MethodPost)
	r.Handle("/answers/{answerid:[0-9]+}", s.authenticate(s.updateAnswer)).Methods(http.MethodPut)
	r.Handle("/answers/{answerid:[0-9]+}", s.authenticate(s.deleteAnswer)).Methods(http.MethodDelete)

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorMessage(w, http.StatusNotFound, "route not found")
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		writeErrorMessage(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	var h http.Handler = r
	h = cors(h)
	h = s.requestLogger(h)
	return otelhttp.NewHandler(h, "qaforum")
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	listen, err := net.Listen("tcp", s.address)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	done := make(chan error, 1)
	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.shutdownTimeout)
		defer cancel()
		done <- srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", listen.Addr().String())

	if err := srv.Serve(listen); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return <-done
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	if s.deps.Health != nil {
		if err := s.deps.Health.PingContext(r.Context()); err != nil {
			s.logger.Warn(r.Context(), "health check failed", "error", err)
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
