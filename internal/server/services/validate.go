package services

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/qaforum/internal/common"
	"github.com/dmitrijs2005/qaforum/internal/server/models"
)

const (
	minTitleLen       = 10
	maxTitleLen       = 200
	minDescriptionLen = 20
	maxDescriptionLen = 5000
	minTagLen         = 2
	maxTagLen         = 30
	minAnswerLen      = 10
	maxAnswerLen      = 5000
	maxQueryLen       = 200
	maxQuestionIDLen  = 64
)

var (
	tagRe        = regexp.MustCompile(`^[A-Za-z0-9-]+$`)
	questionIDRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

// QuestionInput is the writable part of a question.
type QuestionInput struct {
	// QuestionID is optional on create and ignored on update.
	QuestionID  string `json:"questionid"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Tag         string `json:"tag"`
}

func (in *QuestionInput) normalize() {
	in.QuestionID = strings.TrimSpace(in.QuestionID)
	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Tag = strings.TrimSpace(in.Tag)
}

func (in *QuestionInput) validate() error {
	if in.Title == "" || in.Description == "" {
		return common.NewValidationError("fields", "title and description are required")
	}
	if err := lengthBetween("title", in.Title, minTitleLen, maxTitleLen); err != nil {
		return err
	}
	if err := lengthBetween("description", in.Description, minDescriptionLen, maxDescriptionLen); err != nil {
		return err
	}
	if in.Tag != "" {
		if err := validateTag(in.Tag); err != nil {
			return err
		}
	}
	return nil
}

func validateTag(tag string) error {
	if err := lengthBetween("tag", tag, minTagLen, maxTagLen); err != nil {
		return err
	}
	if !tagRe.MatchString(tag) {
		return common.NewValidationError("tag", "may contain only letters, numbers and hyphens")
	}
	return nil
}

func validateQuestionID(id string) error {
	if len(id) > maxQuestionIDLen || !questionIDRe.MatchString(id) {
		return common.NewValidationError("questionid", "must be up to 64 letters, numbers, hyphens or underscores")
	}
	return nil
}

func normalizeAnswer(body string) (string, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return "", common.NewValidationError("answer", "answer is required")
	}
	if err := lengthBetween("answer", body, minAnswerLen, maxAnswerLen); err != nil {
		return "", err
	}
	return body, nil
}

func normalizeFilter(f models.QuestionFilter) (models.QuestionFilter, error) {
	f.Tag = strings.TrimSpace(f.Tag)
	f.Query = strings.TrimSpace(f.Query)

	if utf8.RuneCountInString(f.Query) > maxQueryLen {
		return f, common.NewValidationError("q", "must be at most 200 characters")
	}
	if utf8.RuneCountInString(f.Tag) > maxTagLen {
		return f, common.NewValidationError("tag", "must be at most 30 characters")
	}
	if f.UserID < 0 {
		return f, common.NewValidationError("userid", "must be positive")
	}
	return f, nil
}

func lengthBetween(field, s string, lo, hi int) error {
	n := utf8.RuneCountInString(s)
	if n < lo || n > hi {
		return common.NewValidationError(field, fmt.Sprintf("must be between %d and %d characters", lo, hi))
	}
	return nil
}
