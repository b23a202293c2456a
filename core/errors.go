package core

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// FieldError is used to indicate an error with a specific struct field.
type FieldError struct {
	Field string
	Error string
}

type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

// NewUnknownValueError reports a value outside of a closed set, suggesting the closest candidate.
func NewUnknownValueError(field, val string, candidates []string) error {
	msg := fmt.Sprintf("unknown value %q", val)
	if s := Suggest(val, candidates); s != "" {
		msg += fmt.Sprintf("; did you mean %q?", s)
	} else if len(candidates) > 0 {
		msg += "; expected one of " + strings.Join(candidates, ", ")
	}
	return NewValidationError(errors.New(msg), FieldError{Field: field, Error: msg})
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		if len(err.Fields) > 0 {
			return err.Fields[0].Field + ": " + err.Fields[0].Error
		}
		return ""
	}
	return err.Err.Error()
}

// ConfirmationError is returned when a destructive action was not confirmed.
type ConfirmationError struct {
	Action string
}

func NewConfirmationError(action string) error {
	return &ConfirmationError{Action: action}
}

func (err ConfirmationError) Error() string {
	return "confirmation required: " + err.Action
}

type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}

// NotFoundError is returned when a record lookup fails.
type NotFoundError struct {
	Resource string
	ID       string
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

func (err NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", err.Resource, err.ID)
}

func IsNotFound(err error) bool {
	_, ok := errors.Cause(err).(*NotFoundError)
	return ok
}
