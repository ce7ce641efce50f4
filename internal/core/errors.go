package core

import "errors"

// Predefined errors returned by query building.
var (
	// ErrIncompleteQuery is returned when a query is built without a FROM target.
	ErrIncompleteQuery = errors.New("incomplete query: no FROM table")
	// ErrUnsupportedDialect is returned when an unsupported database dialect is specified.
	ErrUnsupportedDialect = errors.New("unsupported database dialect")
	// ErrInvalidPagination is returned when a negative limit or offset is set.
	ErrInvalidPagination = errors.New("invalid pagination: limit and offset must not be negative")
	// ErrUnsafeValue is returned when the configured validator rejects a value or statement.
	ErrUnsafeValue = errors.New("unsafe SQL value")
)

// WrapError wraps an error with additional context message.
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return &wrappedError{
		msg: message,
		err: err,
	}
}

type wrappedError struct {
	msg string
	err error
}

func (e *wrappedError) Error() string {
	return e.msg + ": " + e.err.Error()
}

func (e *wrappedError) Unwrap() error {
	return e.err
}
