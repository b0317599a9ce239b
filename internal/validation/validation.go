// Package validation provides input validation utilities
package validation

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"quill/internal/models"
	"quill/internal/passwords"
)

// Messages shown to the user, in the order the rules are checked.
var (
	ErrUsernameRequired        = errors.New("Username is required!")
	ErrPasswordRequired        = errors.New("Password is required!")
	ErrPasswordConfirmRequired = errors.New("Password Confirmation is required!")
	ErrPasswordMismatch        = errors.New("Password and Password Confirmation are not equal!")
	ErrEmailRequired           = errors.New("Email is required!")
	ErrEmailInvalid            = errors.New("Please enter a valid email address!")
	ErrPasswordTooLong         = fmt.Errorf("Password must not exceed %d characters!", passwords.MaxLength)

	ErrTitleRequired   = errors.New("Title is required!")
	ErrContentRequired = errors.New("Content is required!")
)

const (
	MaxCourseTitle       = 100
	MaxCourseDescription = 200
)

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// ValidateEmail applies the loose email rule: present and containing both '@' and '.'.
// A whitespace-only email is present but invalid.
func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if !strings.Contains(email, "@") || !strings.Contains(email, ".") {
		return ErrEmailInvalid
	}
	return nil
}

// ValidateCredentials checks a new password, its confirmation and the email.
// Shared by signup and account edit.
func ValidateCredentials(password, passwordConfirm, email string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if passwordConfirm == "" {
		return ErrPasswordConfirmRequired
	}
	if password != passwordConfirm {
		return ErrPasswordMismatch
	}
	if err := ValidateEmail(email); err != nil {
		return err
	}
	if len(password) > passwords.MaxLength {
		return ErrPasswordTooLong
	}
	return nil
}

// ValidateSignup checks a signup form. The first failing rule wins.
func ValidateSignup(username, password, passwordConfirm, email string) error {
	if blank(username) {
		return ErrUsernameRequired
	}
	return ValidateCredentials(password, passwordConfirm, email)
}

// ValidateLogin checks a login form.
func ValidateLogin(username, password string) error {
	if blank(username) {
		return ErrUsernameRequired
	}
	if password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ValidateTitleContent checks the title/content pair used by posts and messages.
func ValidateTitleContent(title, content string) error {
	if blank(title) {
		return ErrTitleRequired
	}
	if blank(content) {
		return ErrContentRequired
	}
	return nil
}

// ValidateCourse checks a course form.
func ValidateCourse(course models.Course) error {
	switch {
	case blank(course.Title):
		return ErrTitleRequired
	case utf8.RuneCountInString(course.Title) > MaxCourseTitle:
		return fmt.Errorf("Title must be at most %d characters!", MaxCourseTitle)
	case blank(course.Description):
		return errors.New("Description is required!")
	case utf8.RuneCountInString(course.Description) > MaxCourseDescription:
		return fmt.Errorf("Description must be at most %d characters!", MaxCourseDescription)
	case course.Price < 0:
		return errors.New("Price must be zero or more!")
	}

	for _, level := range models.CourseLevels {
		if course.Level == level {
			return nil
		}
	}
	return fmt.Errorf("Level must be one of %s!", strings.Join(models.CourseLevels, ", "))
}
