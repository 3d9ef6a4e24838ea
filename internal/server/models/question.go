package models

import "time"

// Question is owned by UserID for its whole lifetime.
type Question struct {
	ID          string
	UserID      int64
	Title       string
	Description string
	Tag         string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Author *Author
}

// QuestionFilter narrows a question listing. Zero values mean "no filter".
type QuestionFilter struct {
	// Tag must equal the question tag exactly.
	Tag string
	// Query is matched case-insensitively as a substring of the title.
	Query string
	// UserID restricts the listing to one owner.
	UserID int64
}
