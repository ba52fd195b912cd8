package services

import (
	"errors"
	"fmt"
	"net/http"
)

// Domain error taxonomy. Services return these; controllers translate them to
// HTTP statuses via HTTPStatus.

// NotFoundError reports a missing resource addressed by a field/value pair.
type NotFoundError struct {
	Resource string
	Field    string
	Value    interface{}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with %s: %v", e.Resource, e.Field, e.Value)
}

func NewNotFound(resource, field string, value interface{}) error {
	return &NotFoundError{Resource: resource, Field: field, Value: value}
}

// BadRequestError reports a malformed or semantically invalid request payload.
type BadRequestError struct {
	Message string
}

func (e *BadRequestError) Error() string { return e.Message }

func NewBadRequest(format string, args ...interface{}) error {
	return &BadRequestError{Message: fmt.Sprintf(format, args...)}
}

// ForbiddenError reports an operation the acting user may not perform.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string { return e.Message }

func NewForbidden(format string, args ...interface{}) error {
	return &ForbiddenError{Message: fmt.Sprintf(format, args...)}
}

// ConflictError reports a uniqueness violation (resource already exists).
type ConflictError struct {
	Resource string
	Field    string
	Value    interface{}
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists with %s: %v", e.Resource, e.Field, e.Value)
}

func NewConflict(resource, field string, value interface{}) error {
	return &ConflictError{Resource: resource, Field: field, Value: value}
}

// HTTPStatus maps a service error to the HTTP status code it should surface as.
// Unknown errors map to 500.
func HTTPStatus(err error) int {
	var (
		nf *NotFoundError
		br *BadRequestError
		fb *ForbiddenError
		cf *ConflictError
	)
	switch {
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &br):
		return http.StatusBadRequest
	case errors.As(err, &fb):
		return http.StatusForbidden
	case errors.As(err, &cf):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
