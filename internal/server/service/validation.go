package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mdouchement/bucketlist/internal/blerror"
)

const (
	nameMinLength        = 5
	nameMaxLength        = 20
	descriptionMaxLength = 100
	passwordMinLength    = 8
	passwordMaxLength    = 15
	usernameMaxLength    = 20
	emailMaxLength       = 50
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)

// validateName checks the name of a bucketlist or an item.
// A valid name has 5 to 20 characters and is not only made of digits.
func validateName(name, subject string) error {
	if name == "" {
		return blerror.Validation(capitalize(subject) + " name is required")
	}

	l := utf8.RuneCountInString(name)
	if isDigits(name) || l < nameMinLength || l > nameMaxLength {
		return blerror.Validation("Invalid " + subject + " name or length (5-20 characters)")
	}
	return nil
}

func validateDescription(description string) error {
	if utf8.RuneCountInString(description) > descriptionMaxLength {
		return blerror.Validation("Description should have at most 100 characters")
	}
	return nil
}

func validatePassword(password string) error {
	l := utf8.RuneCountInString(password)
	if l < passwordMinLength || l > passwordMaxLength {
		return blerror.Validation("Password should have 8-15 characters")
	}
	return nil
}

// validateUsername checks the username against the users table column size.
func validateUsername(username string) error {
	if utf8.RuneCountInString(strings.TrimSpace(username)) > usernameMaxLength {
		return blerror.Validation("Username should have at most 20 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if utf8.RuneCountInString(strings.TrimSpace(email)) > emailMaxLength {
		return blerror.Validation("Email should have at most 50 characters")
	}
	if !emailRegexp.MatchString(email) {
		return blerror.Validation("Not a valid email")
	}
	return nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

// capitalize upper-cases the first letter and lower-cases the rest.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}
