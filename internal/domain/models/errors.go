package models

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrMalformedResponse = errors.New("malformed response")
)

type NotFoundError struct {
	Entity     string
	Key        LookupKey
	Value      string
	Suggestion string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("%s with %s=%q does not exist", e.Entity, e.Key, e.Value)
	if e.Suggestion != "" {
		msg += fmt.Sprintf(" (did you mean %q?)", e.Suggestion)
	}
	return msg
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// MalformedResponseError reports a required field missing from an API payload.
type MalformedResponseError struct {
	Entity string
	Field  string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed response: %s is missing %q", e.Entity, e.Field)
}

func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}
