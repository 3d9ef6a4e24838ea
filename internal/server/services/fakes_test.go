package services

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/dbx"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/answers"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/questions"
	"github.com/dmitrijs2005/qaforum/internal/server/repositories/users"
)

// --- helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeStore backs all three fake repositories so the answer foreign key and
// the cascade can be observed.
type fakeStore struct {
	mu sync.Mutex

	users     map[int64]*models.User
	questions map[string]*models.Question
	answers   map[int64]*models.Answer

	nextUserID   int64
	nextAnswerID int64
	clock        time.Time

	userLookups int
	createErr   error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:     make(map[int64]*models.User),
		questions: make(map[string]*models.Question),
		answers:   make(map[int64]*models.Answer),
		clock:     time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (s *fakeStore) tick() time.Time {
	s.clock = s.clock.Add(time.Minute)
	return s.clock
}

func (s *fakeStore) addUser(name string) *models.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextUserID++
	u := &models.User{ID: s.nextUserID, UserName: name, FirstName: strings.ToUpper(name[:1]) + name[1:], LastName: "Tester", Email: name + "@example.com"}
	s.users[u.ID] = u
	return u
}

type fakeUsersRepo struct{ s *fakeStore }

func (r *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.createErr != nil {
		return nil, r.s.createErr
	}
	for _, existing := range r.s.users {
		if existing.UserName == u.UserName {
			return nil, &common.DuplicateError{Field: "username"}
		}
		if existing.Email == u.Email {
			return nil, &common.DuplicateError{Field: "email"}
		}
	}
	r.s.nextUserID++
	u.ID = r.s.nextUserID
	u.CreatedAt = r.s.tick()
	cp := *u
	r.s.users[u.ID] = &cp
	return u, nil
}

func (r *fakeUsersRepo) FindConflict(_ context.Context, userName, email string) (string, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.UserName, userName) {
			return "username", nil
		}
		if u.Email == email {
			return "email", nil
		}
	}
	return "", nil
}

func (r *fakeUsersRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *fakeUsersRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.userLookups++
	u, ok := r.s.users[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *u
	return &cp, nil
}

type fakeQuestionsRepo struct{ s *fakeStore }

func (r *fakeQuestionsRepo) Create(_ context.Context, q *models.Question) (*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[q.ID]; ok {
		return nil, &common.DuplicateError{Field: "questionid"}
	}
	if _, ok := r.s.users[q.UserID]; !ok {
		return nil, common.ErrorUnauthorized
	}
	q.CreatedAt = r.s.tick()
	q.UpdatedAt = q.CreatedAt
	cp := *q
	r.s.questions[q.ID] = &cp
	return q, nil
}

func (r *fakeQuestionsRepo) GetByID(_ context.Context, id string) (*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	q, ok := r.s.questions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *q
	return &cp, nil
}

func (r *fakeQuestionsRepo) List(_ context.Context, f models.QuestionFilter) ([]*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Question, 0)
	for _, q := range r.s.questions {
		if f.Tag != "" && q.Tag != f.Tag {
			continue
		}
		if f.Query != "" && !strings.Contains(strings.ToLower(q.Title), strings.ToLower(f.Query)) {
			continue
		}
		if f.UserID != 0 && q.UserID != f.UserID {
			continue
		}
		cp := *q
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeQuestionsRepo) Update(_ context.Context, q *models.Question) (*models.Question, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.questions[q.ID]
	if !ok || stored.UserID != q.UserID {
		return nil, common.ErrorNotFound
	}
	stored.Title, stored.Description, stored.Tag = q.Title, q.Description, q.Tag
	stored.UpdatedAt = r.s.tick()
	cp := *stored
	return &cp, nil
}

func (r *fakeQuestionsRepo) Delete(_ context.Context, id string, userID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if q, ok := r.s.questions[id]; !ok || q.UserID != userID {
		return common.ErrorNotFound
	}
	delete(r.s.questions, id)
	return nil
}

type fakeAnswersRepo struct{ s *fakeStore }

func (r *fakeAnswersRepo) Create(_ context.Context, a *models.Answer) (*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.questions[a.QuestionID]; !ok {
		return nil, common.ErrorNotFound
	}
	if _, ok := r.s.users[a.UserID]; !ok {
		return nil, common.ErrorUnauthorized
	}
	r.s.nextAnswerID++
	a.ID = r.s.nextAnswerID
	a.CreatedAt = r.s.tick()
	a.UpdatedAt = a.CreatedAt
	cp := *a
	r.s.answers[a.ID] = &cp
	return a, nil
}

func (r *fakeAnswersRepo) GetByID(_ context.Context, id int64) (*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a, ok := r.s.answers[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *fakeAnswersRepo) ListByQuestion(_ context.Context, questionID string) ([]*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*models.Answer, 0)
	for _, a := range r.s.answers {
		if a.QuestionID == questionID {
			cp := *a
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *fakeAnswersRepo) Update(_ context.Context, a *models.Answer) (*models.Answer, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	stored, ok := r.s.answers[a.ID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	stored.Body = a.Body
	stored.UpdatedAt = r.s.tick()
	cp := *stored
	return &cp, nil
}

func (r *fakeAnswersRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.answers[id]; !ok {
		return common.ErrorNotFound
	}
	delete(r.s.answers, id)
	return nil
}

func (r *fakeAnswersRepo) DeleteByQuestion(_ context.Context, questionID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var n int64
	for id, a := range r.s.answers {
		if a.QuestionID == questionID {
			delete(r.s.answers, id)
			n++
		}
	}
	return n, nil
}

type fakeRepoManager struct{ s *fakeStore }

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository             { return &fakeUsersRepo{m.s} }
func (m *fakeRepoManager) Questions(dbx.DBTX) questions.Repository     { return &fakeQuestionsRepo{m.s} }
func (m *fakeRepoManager) Answers(dbx.DBTX) answers.Repository         { return &fakeAnswersRepo{m.s} }
