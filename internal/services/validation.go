package services

import (
	"regexp"
	"strings"

	"github.com/taskvault/taskvault/internal/models"
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateSignUp checks the shape of sign-up input and returns every
// violated rule. It never touches storage; uniqueness is checked
// separately against a users snapshot the caller already holds.
func ValidateSignUp(params RegisterParams) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(params.Name) == "" {
		errs = append(errs, ValidationError{
			Field:   "name",
			Message: "Name is required",
		})
	}

	if strings.TrimSpace(params.Email) == "" {
		errs = append(errs, ValidationError{
			Field:   "email",
			Message: "Email is required",
		})
	} else if !emailPattern.MatchString(params.Email) {
		errs = append(errs, ValidationError{
			Field:   "email",
			Message: "Invalid email format",
		})
	}

	if len(params.Password) < 8 {
		errs = append(errs, ValidationError{
			Field:   "password",
			Message: "Password must be at least 8 characters",
		})
	}

	return errs
}

// IsNameExists reports whether the trimmed name is already registered,
// ignoring case.
func IsNameExists(users []models.User, name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, u := range users {
		if strings.ToLower(u.Name) == name {
			return true
		}
	}
	return false
}

// IsEmailExists reports whether the trimmed email is already
// registered, ignoring case.
func IsEmailExists(users []models.User, email string) bool {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range users {
		if strings.ToLower(u.Email) == email {
			return true
		}
	}
	return false
}
