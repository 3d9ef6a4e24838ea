package auth

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dmitrijs2005/qaforum/internal/common"
)

const (
	minPasswordLen = 8
	maxPasswordLen = 72 // bcrypt ignores anything longer
	minUserNameLen = 3
	maxUserNameLen = 30
	maxNameLen     = 50
	maxEmailLen    = 255
)

var (
	userNameRe = regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// Registration is the input of account creation.
type Registration struct {
	UserName  string `json:"username"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Normalize trims names and lower-cases the email in place.
func (r *Registration) Normalize() {
	r.UserName = strings.TrimSpace(r.UserName)
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = NormalizeEmail(r.Email)
}

// Validate returns the first rejected field as a *common.ValidationError.
func (r *Registration) Validate() error {
	if r.UserName == "" || r.FirstName == "" || r.LastName == "" || r.Email == "" || r.Password == "" {
		return common.NewValidationError("fields", "please provide all required fields")
	}
	if err := ValidateUserName(r.UserName); err != nil {
		return err
	}
	if err := validateName("firstname", r.FirstName); err != nil {
		return err
	}
	if err := validateName("lastname", r.LastName); err != nil {
		return err
	}
	if err := ValidateEmail(r.Email); err != nil {
		return err
	}
	return ValidatePassword(r.Password)
}

// NormalizeEmail is applied before every uniqueness check and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateUserName(name string) error {
	n := utf8.RuneCountInString(name)
	if n < minUserNameLen || n > maxUserNameLen {
		return common.NewValidationError("username", "must be between 3 and 30 characters")
	}
	if !userNameRe.MatchString(name) {
		return common.NewValidationError("username", "may contain only letters, numbers and underscores")
	}
	return nil
}

func validateName(field, name string) error {
	if n := utf8.RuneCountInString(name); n < 1 || n > maxNameLen {
		return common.NewValidationError(field, "must be between 1 and 50 characters")
	}
	return nil
}

func ValidateEmail(email string) error {
	if len(email) > maxEmailLen {
		return common.NewValidationError("email", "must be at most 255 characters")
	}
	if !emailRe.MatchString(email) {
		return common.NewValidationError("email", "invalid email address")
	}
	return nil
}

// ValidatePassword requires upper and lower case letters, a digit and a
// symbol, at least eight characters in all.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return common.NewValidationError("password", "must be at least 8 characters")
	}
	if len(password) > maxPasswordLen {
		return common.NewValidationError("password", "must be at most 72 bytes")
	}

	var upper, lower, digit, symbol bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			symbol = true
		}
	}

	if !upper || !lower || !digit || !symbol {
		return common.NewValidationError("password",
			"must include uppercase and lowercase letters, a number and a special character")
	}
	return nil
}
