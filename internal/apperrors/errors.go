package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrInvalidPeriod indicates a processing period whose start date falls after
// its end date, or a period preset that could not be resolved.
var ErrInvalidPeriod = errors.New("invalid period")

// ErrMissingPercentage indicates that no processing percentage is configured
// for a business. Aggregation for that business is rejected rather than
// silently defaulting to zero.
var ErrMissingPercentage = errors.New("processing percentage not configured")

// ParseError identifies a transaction export file that could not be parsed.
// It is surfaced per file; processing of other files in the batch continues.
type ParseError struct {
	Filename string
	Err      error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse %q: %v", e.Filename, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewParseError wraps err with the name of the offending file.
func NewParseError(filename string, err error) *ParseError {
	return &ParseError{Filename: filename, Err: err}
}
