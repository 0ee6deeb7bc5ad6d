package validation

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateEmail checks if an email address is valid
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return ValidationError{Field: "email", Message: "email is required"}
	}
	if !emailRegex.MatchString(email) {
		return ValidationError{Field: "email", Message: "invalid email format"}
	}
	return nil
}

// ValidatePassword checks if a password meets requirements
func ValidatePassword(password string) error {
	if password == "" {
		return ValidationError{Field: "password", Message: "password is required"}
	}
	if len(password) < 8 {
		return ValidationError{Field: "password", Message: "password must be at least 8 characters"}
	}
	return nil
}

// ValidateName checks if a name is valid
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ValidationError{Field: "name", Message: "name is required"}
	}
	if len(name) < 2 {
		return ValidationError{Field: "name", Message: "name must be at least 2 characters"}
	}
	return nil
}

// ValidateDayNumber checks that day falls inside the 7-day challenge
func ValidateDayNumber(day int) error {
	if day < 1 || day > 7 {
		return ValidationError{Field: "day", Message: "day must be between 1 and 7"}
	}
	return nil
}

// ValidateOneOf checks that value is one of allowed
func ValidateOneOf(field, value string, allowed []string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{Field: field, Message: field + " is required"}
	}
	if !slices.Contains(allowed, value) {
		return ValidationError{Field: field, Message: fmt.Sprintf("unknown %s %q", field, value)}
	}
	return nil
}

// ValidateSubset checks that values is a non-empty subset of allowed without duplicates
func ValidateSubset(field string, values, allowed []string) error {
	if len(values) == 0 {
		return ValidationError{Field: field, Message: "select at least one option"}
	}
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		if !slices.Contains(allowed, v) {
			return ValidationError{Field: field, Message: fmt.Sprintf("unknown %s %q", field, v)}
		}
		if seen[v] {
			return ValidationError{Field: field, Message: fmt.Sprintf("duplicate %s %q", field, v)}
		}
		seen[v] = true
	}
	return nil
}
