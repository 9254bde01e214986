package isbndb

import (
	"errors"
	"fmt"
)

// Sentinel errors for ISBNdb API operations.
var (
	ErrNotFound    = errors.New("isbndb: book not found")
	ErrRateLimited = errors.New("isbndb: rate limited by server")
	ErrBadRequest  = errors.New("isbndb: bad request")
	ErrServer      = errors.New("isbndb: server error")
	ErrNoAPIKey    = errors.New("isbndb: no API key configured")
	ErrInvalidISBN = errors.New("isbndb: invalid ISBN")
)

// Error wraps an underlying error with operation context.
type Error struct {
	Op   string // Operation: "getBook"
	ISBN string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("isbndb %s [%s]: %v", e.Op, e.ISBN, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// wrapError creates an Error with context.
func wrapError(op, isbn string, err error) error {
	return &Error{
		Op:   op,
		ISBN: isbn,
		Err:  err,
	}
}
