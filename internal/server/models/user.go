// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash never leaves the server.
type User struct {
	ID           int64
	UserName     string
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// Author is the public projection of a User attached to questions and answers.
type Author struct {
	UserID    int64  `json:"userid"`
	UserName  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
}

// Author returns the public projection of u.
func (u *User) Author() *Author {
	return &Author{UserID: u.ID, UserName: u.UserName, FirstName: u.FirstName, LastName: u.LastName}
}
