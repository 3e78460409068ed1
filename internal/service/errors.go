package service

import (
	"errors"
	"fmt"
	"strings"
)

// Operation failures callers are expected to branch on. Anything else
// coming out of a service is a store failure wrapped with %w.
var (
	// ErrUnauthenticated means no actor could be resolved for the request.
	ErrUnauthenticated = errors.New("not authenticated")

	// ErrUnauthorized means the actor is known but fails an ownership check.
	ErrUnauthorized = errors.New("not authorized")

	// ErrNotFound means the referenced id does not resolve in the store.
	ErrNotFound = errors.New("record not found")
)

// ValidationError carries field-level messages for form re-rendering.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) add(field, msg string) {
	e.Fields[field] = msg
}

func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
