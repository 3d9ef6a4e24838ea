package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/logging"
	"github.com/dmitrijs2005/qaforum/internal/server/auth"
	"github.com/dmitrijs2005/qaforum/internal/server/auth/denylist"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/services"
)

// ---- fakes ----

type fakeUsers struct {
	registerFn func(ctx context.Context, reg auth.Registration) (*models.User, error)
	loginFn    func(ctx context.Context, email, password string) (*services.LoginResult, error)
	logoutFn   func(ctx context.Context, claims *auth.Claims) error
}

func (f *fakeUsers) Register(ctx context.Context, reg auth.Registration) (*models.User, error) {
	return f.registerFn(ctx, reg)
}
func (f *fakeUsers) Login(ctx context.Context, email, password string) (*services.LoginResult, error) {
	return f.loginFn(ctx, email, password)
}
func (f *fakeUsers) Logout(ctx context.Context, claims *auth.Claims) error {
	return f.logoutFn(ctx, claims)
}

type fakeQuestions struct {
	lastFilter   models.QuestionFilter
	lastIdentity auth.Identity
	lastInput    services.QuestionInput

	createErr error
	getErr    error
	updateErr error
	deleteErr error
	listErr   error
	deleted   int64
}

func (f *fakeQuestions) Create(_ context.Context, id auth.Identity, in services.QuestionInput) (*models.Question, error) {
	f.lastIdentity, f.lastInput = id, in
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Question{ID: "q-1", UserID: id.UserID, Title: in.Title, Description: in.Description, Tag: in.Tag,
		Author: &models.Author{UserID: id.UserID, UserName: id.UserName}}, nil
}

func (f *fakeQuestions) Get(_ context.Context, questionID string) (*models.Question, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return &models.Question{ID: questionID, UserID: 1, Title: "How to center a div?"}, nil
}

func (f *fakeQuestions) List(_ context.Context, filter models.QuestionFilter) ([]*models.Question, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	return []*models.Question{{ID: "q-2"}, {ID: "q-1"}}, nil
}

func (f *fakeQuestions) Update(_ context.Context, id auth.Identity, questionID string, in services.QuestionInput) (*models.Question, error) {
	f.lastIdentity, f.lastInput = id, in
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Question{ID: questionID, UserID: id.UserID, Title: in.Title}, nil
}

func (f *fakeQuestions) Delete(_ context.Context, id auth.Identity, _ string) (int64, error) {
	f.lastIdentity = id
	return f.deleted, f.deleteErr
}

type fakeAnswers struct {
	lastIdentity auth.Identity
	lastQuestion string
	lastAnswerID int64
	lastBody     string

	err error
}

func (f *fakeAnswers) Create(_ context.Context, id auth.Identity, questionID, body string) (*models.Answer, error) {
	f.lastIdentity, f.lastQuestion, f.lastBody = id, questionID, body
	if f.err != nil {
		return nil, f.err
	}
	return &models.Answer{ID: 11, UserID: id.UserID, QuestionID: questionID, Body: body}, nil
}

func (f *fakeAnswers) ListByQuestion(_ context.Context, questionID string) ([]*models.Answer, error) {
	f.lastQuestion = questionID
	if f.err != nil {
		return nil, f.err
	}
	return []*models.Answer{}, nil
}

func (f *fakeAnswers) Update(_ context.Context, id auth.Identity, answerID int64, body string) (*models.Answer, error) {
	f.lastIdentity, f.lastAnswerID, f.lastBody = id, answerID, body
	if f.err != nil {
		return nil, f.err
	}
	return &models.Answer{ID: answerID, UserID: id.UserID, QuestionID: "q-1", Body: body}, nil
}

func (f *fakeAnswers) Delete(_ context.Context, id auth.Identity, answerID int64) error {
	f.lastIdentity, f.lastAnswerID = id, answerID
	return f.err
}

type fakePinger struct{ err error }

func (p fakePinger) PingContext(context.Context) error { return p.err }

// ---- harness ----

type harness struct {
	server    *Server
	handler   http.Handler
	tokens    *auth.TokenManager
	denylist  *denylist.MemoryDenylist
	users     *fakeUsers
	questions *fakeQuestions
	answers   *fakeAnswers
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		tokens:   auth.NewTokenManager([]byte("test-secret"), time.Hour),
		denylist: denylist.NewMemoryDenylist(0, time.Hour),
		users: &fakeUsers{
			registerFn: func(context.Context, auth.Registration) (*models.User, error) { return nil, common.ErrorInternal },
			loginFn:    func(context.Context, string, string) (*services.LoginResult, error) { return nil, common.ErrorInternal },
			logoutFn:   func(context.Context, *auth.Claims) error { return nil },
		},
		questions: &fakeQuestions{},
		answers:   &fakeAnswers{},
	}
	h.server = NewServer("127.0.0.1:0", logging.Nop(), Deps{
		Users:     h.users,
		Questions: h.questions,
		Answers:   h.answers,
		Tokens:    h.tokens,
		Denylist:  h.denylist,
		Health:    fakePinger{},
	}, time.Second, time.Second)
	h.handler = h.server.Handler()
	return h
}

func (h *harness) token(t *testing.T, id auth.Identity) string {
	t.Helper()
	tok, _, err := h.tokens.Issue(id)
	require.NoError(t, err)
	return tok
}

func (h *harness) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rdr io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		rdr = bytes.NewBufferString(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		rdr = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, rdr)
	if token != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func errorOf(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var e errorResponse
	decodeBody(t, rec, &e)
	return e.Error
}
