package rest

import (
	"time"

	"github.com/dmitrijs2005/qaforum/internal/server/models"
)

type userResponse struct {
	UserID    int64  `json:"userid"`
	UserName  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
}

func toUserResponse(u *models.User) userResponse {
	return userResponse{UserID: u.ID, UserName: u.UserName, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type checkResponse struct {
	Message  string `json:"message"`
	UserID   int64  `json:"userid"`
	UserName string `json:"username"`
}

type questionResponse struct {
	QuestionID  string         `json:"questionid"`
	UserID      int64          `json:"userid"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Tag         string         `json:"tag"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Author      *models.Author `json:"author,omitempty"`
}

func toQuestionResponse(q *models.Question) questionResponse {
	return questionResponse{
		QuestionID:  q.ID,
		UserID:      q.UserID,
		Title:       q.Title,
		Description: q.Description,
		Tag:         q.Tag,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
		Author:      q.Author,
	}
}

type deleteQuestionResponse struct {
	Message        string `json:"message"`
	AnswersDeleted int64  `json:"answers_deleted"`
}

type answerRequest struct {
	QuestionID string `json:"questionid"`
	Answer     string `json:"answer"`
}

type answerResponse struct {
	AnswerID   int64          `json:"answerid"`
	QuestionID string         `json:"questionid"`
	UserID     int64          `json:"userid"`
	Answer     string         `json:"answer"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	Author     *models.Author `json:"author,omitempty"`
}

func toAnswerResponse(a *models.Answer) answerResponse {
	return answerResponse{
		AnswerID:   a.ID,
		QuestionID: a.QuestionID,
		UserID:     a.UserID,
		Answer:     a.Body,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
		Author:     a.Author,
	}
}
