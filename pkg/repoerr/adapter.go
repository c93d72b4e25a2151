package repoerr

import (
	"errors"

	"gorm.io/gorm"
)

// Single normalizes a required single-row result. A missing row is an
// error (404) at this boundary.
func Single[T any](row *T, err error, notFoundMessage, failureMessage string) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NotFound(notFoundMessage)
		}
		return nil, Wrap(err, failureMessage)
	}
	if row == nil {
		return nil, NotFound(notFoundMessage)
	}
	return row, nil
}

// MaybeSingle normalizes an optional single-row result. A missing row is
// nil, not an error.
func MaybeSingle[T any](row *T, err error, failureMessage string) (*T, error) {
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, Wrap(err, failureMessage)
	}
	return row, nil
}

// List normalizes a multi-row result. Absent data is an empty slice,
// never nil.
func List[T any](rows []T, err error, failureMessage string) ([]T, error) {
	if err != nil {
		return nil, Wrap(err, failureMessage)
	}
	if rows == nil {
		return []T{}, nil
	}
	return rows, nil
}

// Mutation normalizes an insert/update expected to yield exactly one row.
func Mutation[T any](row *T, err error, failureMessage string) (*T, error) {
	return Single(row, err, "Record not found", failureMessage)
}

// NoError normalizes a delete/void operation.
func NoError(err error, failureMessage string) error {
	if err != nil {
		return Wrap(err, failureMessage)
	}
	return nil
}
