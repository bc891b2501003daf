package timeentry

import "errors"

var (
	// ErrEntryNotFound indicates the time entry doesn't exist.
	ErrEntryNotFound = errors.New("time entry not found")
	// ErrUserNotFound indicates the referenced user doesn't exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrInvalidInput indicates invalid time entry input.
	ErrInvalidInput = errors.New("invalid time entry input")
)
