package users

import (
	"regexp"
	"strings"

	"github.com/marekzelinka/habit-trackr-api/internal/httpx"
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

func validateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func validateRegister(req registerRequest) []httpx.FieldError {
	var details []httpx.FieldError

	if !validateEmail(req.Email) {
		details = append(details, httpx.FieldError{Field: "email", Message: "Invalid email format"})
	}

	username := strings.TrimSpace(req.Username)
	if len(username) < 3 {
		details = append(details, httpx.FieldError{Field: "username", Message: "Username must be at least 3 characters"})
	} else if len(username) > 50 {
		details = append(details, httpx.FieldError{Field: "username", Message: "Username too long"})
	}

	if len(req.Password) < 8 {
		details = append(details, httpx.FieldError{Field: "password", Message: "Password must be at least 8 characters"})
	}

	return details
}

func validateLogin(req loginRequest) []httpx.FieldError {
	var details []httpx.FieldError

	if !validateEmail(req.Email) {
		details = append(details, httpx.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if req.Password == "" {
		details = append(details, httpx.FieldError{Field: "password", Message: "Password required"})
	}

	return details
}

func validateProfileUpdate(req updateProfileRequest) []httpx.FieldError {
	var details []httpx.FieldError

	if req.Email != nil && !validateEmail(*req.Email) {
		details = append(details, httpx.FieldError{Field: "email", Message: "Invalid email format"})
	}
	if req.Username != nil {
		username := strings.TrimSpace(*req.Username)
		if len(username) < 3 {
			details = append(details, httpx.FieldError{Field: "username", Message: "Username must be at least 3 characters"})
		} else if len(username) > 50 {
			details = append(details, httpx.FieldError{Field: "username", Message: "Username too long"})
		}
	}

	return details
}
