package domain

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// FallbackAPIMessage is shown when the server rejects a request without a detail.
	FallbackAPIMessage = "An error occurred while processing your request"
	// FallbackSubmitMessage is shown when a submission fails without any message.
	FallbackSubmitMessage = "Failed to submit form. Please try again."
)

// ValidationError is a local failure: nothing was sent to the server.
type ValidationError struct {
	Missing    []string
	Duplicates []string
}

func (e *ValidationError) Error() string {
	if len(e.Missing) > 0 {
		return "Please complete the following required fields: " + strings.Join(e.Missing, ", ")
	}
	if len(e.Duplicates) > 0 {
		return "Field names must be unique: " + strings.Join(e.Duplicates, ", ")
	}
	return "form is invalid"
}

// APIError is a non-2xx response from the feedback API.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return FallbackAPIMessage
}

// IsValidation reports whether err is a local validation failure.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsRemote reports whether err came from the server rather than the transport.
func IsRemote(err error) bool {
	var a *APIError
	return errors.As(err, &a)
}

// UserMessage renders err as the single line shown next to the action that failed.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrFormIDEmpty):
		return FormIDEmptyMessage
	case errors.Is(err, ErrFormIDInvalid):
		return FormIDInvalidMessage
	}
	var v *ValidationError
	if errors.As(err, &v) {
		return v.Error()
	}
	var a *APIError
	if errors.As(err, &a) {
		return a.Error()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}

// TransportError wraps a network failure that never produced a response.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
