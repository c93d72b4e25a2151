// Package repoerr defines the single error vocabulary for the data layer.
package repoerr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jackc/pgx/v5/pgconn"
)

// RepositoryError is raised by every repository and storage operation.
// Callers branch on Status (400, 404, ...) or propagate Message.
type RepositoryError struct {
	Message string
	Status  int
	Code    string
	Details string
	Hint    string

	cause error
}

func (e *RepositoryError) Error() string { return e.Message }

func (e *RepositoryError) Unwrap() error { return e.cause }

// New builds a RepositoryError with no underlying cause.
func New(message string, status int) *RepositoryError {
	return &RepositoryError{Message: message, Status: status}
}

// NotFound builds a 404 RepositoryError.
func NotFound(message string) *RepositoryError {
	return New(message, http.StatusNotFound)
}

// Invalid builds a 400 RepositoryError.
func Invalid(message string) *RepositoryError {
	return New(message, http.StatusBadRequest)
}

// Wrap converts a backend error into a RepositoryError, keeping the
// original as the cause. Postgres errors contribute code/details/hint.
func Wrap(err error, failureMessage string) *RepositoryError {
	if err == nil {
		return &RepositoryError{Message: failureMessage}
	}

	re := &RepositoryError{
		Message: fmt.Sprintf("%s: %s", failureMessage, err.Error()),
		cause:   err,
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		re.Code = pgErr.Code
		re.Details = pgErr.Detail
		re.Hint = pgErr.Hint
	}

	var nested *RepositoryError
	if errors.As(err, &nested) {
		re.Status = nested.Status
		if re.Code == "" {
			re.Code = nested.Code
		}
	}

	return re
}

// StatusOf returns the status carried by err, or 0 when err is not a
// RepositoryError or carries none.
func StatusOf(err error) int {
	var re *RepositoryError
	if errors.As(err, &re) {
		return re.Status
	}
	return 0
}

// IsNotFound reports whether err is a 404 RepositoryError.
func IsNotFound(err error) bool {
	return StatusOf(err) == http.StatusNotFound
}

// IsInvalid reports whether err is a 400 RepositoryError.
func IsInvalid(err error) bool {
	return StatusOf(err) == http.StatusBadRequest
}
