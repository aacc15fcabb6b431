package domain

import (
	"errors"
	"strings"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrImmutableRecord = errors.New("record can no longer be modified")
	ErrInvalidStatus   = errors.New("invalid video status")
)

// ValidationError aggregates every problem found in a request so the caller
// sees them all at once.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	if e == nil || len(e.Problems) == 0 {
		return "invalid request"
	}
	return strings.Join(e.Problems, ". ")
}

// Add records a problem for field. An empty field adds a form-level problem.
func (e *ValidationError) Add(field, msg string) {
	if field == "" {
		e.Problems = append(e.Problems, msg)
		return
	}
	e.Problems = append(e.Problems, field+": "+msg)
}

// OrNil returns nil when no problem was recorded.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Problems) == 0 {
		return nil
	}
	return e
}
