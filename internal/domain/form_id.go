package domain

import (
	"errors"
	"regexp"
	"strings"
)

var (
	ErrFormIDEmpty   = errors.New("form id is empty")
	ErrFormIDInvalid = errors.New("form id contains characters other than letters, digits, hyphens and underscores")
)

// Messages shown to the user for the form id errors.
const (
	FormIDEmptyMessage   = "Please enter a Form ID"
	FormIDInvalidMessage = "Form ID can only contain letters, numbers, hyphens, and underscores"
)

var formIDPattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// ValidateFormID trims raw and checks it is a usable form identifier.
func ValidateFormID(raw string) (string, error) {
	id := strings.TrimSpace(raw)
	if id == "" {
		return "", ErrFormIDEmpty
	}
	if !formIDPattern.MatchString(id) {
		return "", ErrFormIDInvalid
	}
	return id, nil
}
