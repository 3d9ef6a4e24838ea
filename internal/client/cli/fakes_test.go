package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/qaforum/internal/client/api"
	"github.com/dmitrijs2005/qaforum/internal/client/config"
)

type fakeAPI struct {
	token string

	user      api.User
	questions map[string]*api.Question
	answers   []api.Answer

	registered  *api.Registration
	lastFilter  api.QuestionFilter
	lastInput   api.QuestionInput
	lastBody    string
	deletedQ    string
	deletedA    int64
	logoutCalls int

	err error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		user:      api.User{UserID: 7, UserName: "alice", FirstName: "Alice"},
		questions: map[string]*api.Question{},
	}
}

func (f *fakeAPI) Token() string     { return f.token }
func (f *fakeAPI) SetToken(t string) { f.token = t }

func (f *fakeAPI) Register(_ context.Context, r api.Registration) (*api.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.registered = &r
	return &api.User{UserID: 1, UserName: r.UserName}, nil
}

func (f *fakeAPI) Login(_ context.Context, email, password string) (*api.LoginResult, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.token = "tok"
	return &api.LoginResult{Token: "tok", User: f.user}, nil
}

func (f *fakeAPI) Check(context.Context) (*api.Session, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &api.Session{Message: "Valid user", UserID: f.user.UserID, UserName: f.user.UserName}, nil
}

func (f *fakeAPI) Logout(context.Context) error {
	f.logoutCalls++
	f.token = ""
	return f.err
}

func (f *fakeAPI) ListQuestions(_ context.Context, filter api.QuestionFilter) ([]api.Question, error) {
	f.lastFilter = filter
	if f.err != nil {
		return nil, f.err
	}
	out := []api.Question{}
	for _, q := range f.questions {
		out = append(out, *q)
	}
	return out, nil
}

func (f *fakeAPI) GetQuestion(_ context.Context, id string) (*api.Question, error) {
	q, ok := f.questions[id]
	if !ok {
		return nil, &api.Error{StatusCode: 404, Message: "question not found"}
	}
	return q, nil
}

func (f *fakeAPI) CreateQuestion(_ context.Context, in api.QuestionInput) (*api.Question, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.Question{QuestionID: "new-id", Title: in.Title}, nil
}

func (f *fakeAPI) UpdateQuestion(_ context.Context, id string, in api.QuestionInput) (*api.Question, error) {
	f.lastInput = in
	if f.err != nil {
		return nil, f.err
	}
	return &api.Question{QuestionID: id, Title: in.Title}, nil
}

func (f *fakeAPI) DeleteQuestion(_ context.Context, id string) (int64, error) {
	if f.err != nil {
		return 0, f.err
	}
	f.deletedQ = id
	return int64(len(f.answers)), nil
}

func (f *fakeAPI) ListAnswers(context.Context, string) ([]api.Answer, error) {
	return f.answers, f.err
}

func (f *fakeAPI) CreateAnswer(_ context.Context, questionID, body string) (*api.Answer, error) {
	f.lastBody = body
	if f.err != nil {
		return nil, f.err
	}
	return &api.Answer{AnswerID: 11, QuestionID: questionID, Answer: body}, nil
}

func (f *fakeAPI) UpdateAnswer(_ context.Context, id int64, body string) (*api.Answer, error) {
	f.lastBody = body
	if f.err != nil {
		return nil, f.err
	}
	return &api.Answer{AnswerID: id, Answer: body}, nil
}

func (f *fakeAPI) DeleteAnswer(_ context.Context, id int64) error {
	if f.err != nil {
		return f.err
	}
	f.deletedA = id
	return nil
}

// prompts replaces the interactive input helpers with scripted answers.
type prompts struct {
	text      []string
	multiline []string
	password  string
	confirm   bool
}

func (p *prompts) install(t *testing.T) {
	t.Helper()
	origText, origPw, origML, origConfirm := getSimpleText, getPassword, getMultiline, confirm
	t.Cleanup(func() {
		getSimpleText, getPassword, getMultiline, confirm = origText, origPw, origML, origConfirm
	})

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(p.text) == 0 {
			return "", io.EOF
		}
		v := p.text[0]
		p.text = p.text[1:]
		return v, nil
	}
	getMultiline = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) {
		if len(p.multiline) == 0 {
			return "", nil
		}
		v := p.multiline[0]
		p.multiline = p.multiline[1:]
		return v, nil
	}
	getPassword = func(io.Writer) ([]byte, error) { return []byte(p.password), nil }
	confirm = func(*bufio.Reader, string, io.Writer) (bool, error) { return p.confirm, nil }
}

func newTestApp(t *testing.T, f *fakeAPI, p *prompts) (*App, *bytes.Buffer) {
	t.Helper()
	if p != nil {
		p.install(t)
	}
	var out bytes.Buffer
	cfg := &config.Config{}
	cfg.LoadDefaults()
	return &App{config: cfg, api: f, out: &out}, &out
}
