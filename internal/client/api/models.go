package api

import "time"

type Author struct {
	UserID    int64  `json:"userid"`
	UserName  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

type User struct {
	UserID    int64  `json:"userid"`
	UserName  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

// Registration is the body of POST /auth/register.
type Registration struct {
	UserName  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

type LoginResult struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Session is what GET /auth/check reports about the current token.
type Session struct {
	Message  string `json:"message"`
	UserID   int64  `json:"userid"`
	UserName string `json:"username"`
}

type Question struct {
	QuestionID  string    `json:"questionid"`
	UserID      int64     `json:"userid"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tag         string    `json:"tag"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
	Author      *Author   `json:"author,omitempty"`
}

// QuestionInput is the body of question create and update calls.
// QuestionID is only honoured on create.
type QuestionInput struct {
	QuestionID  string `json:"questionid,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

// QuestionFilter narrows ListQuestions. Zero values are omitted.
type QuestionFilter struct {
	Tag    string
	Query  string
	UserID int64
}

type Answer struct {
	AnswerID   int64     `json:"answerid"`
	QuestionID string    `json:"questionid"`
	UserID     int64     `json:"userid"`
	Answer     string    `json:"answer"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Author     *Author   `json:"author,omitempty"`
}

type answerRequest struct {
	QuestionID string `json:"questionid,omitempty"`
	Answer     string `json:"answer"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type deleteQuestionResponse struct {
	Message        string `json:"message"`
	AnswersDeleted int64  `json:"answers_deleted"`
}

type errorResponse struct {
	Error string `json:"error"`
}
