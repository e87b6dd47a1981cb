package errors

import "errors"

var (
	// ErrNotFound is returned when a referenced row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is returned when a row exists but belongs to another user.
	ErrForbidden = errors.New("forbidden")
	// ErrProfileRequired is returned when recommendation generation is
	// attempted for a user with no profile on file.
	ErrProfileRequired = errors.New("user profile required")
	// ErrInvalidArgument is a generic sentinel for invalid input.
	ErrInvalidArgument = errors.New("invalid argument")
)
