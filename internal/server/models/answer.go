package models

import "time"

// Answer is owned by UserID and belongs to the question QuestionID.
type Answer struct {
	ID         int64
	UserID     int64
	QuestionID string
	Body       string
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Author *Author
}
