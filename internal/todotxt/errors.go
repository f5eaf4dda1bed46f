package todotxt

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyInput is returned when a task line is empty or only whitespace.
	ErrEmptyInput = errors.New("cannot parse an empty string as a task")
	// ErrEmptyBody is returned when a line has no text left after its
	// completion, priority, and creation date prefixes are removed.
	ErrEmptyBody = errors.New("task has no body after removing prefixes")
	// ErrInvalidMetaData is returned for malformed key:value input.
	ErrInvalidMetaData = errors.New("invalid metadata")
	// ErrEmptyMetaData is returned when both key and value are empty.
	ErrEmptyMetaData = errors.New("cannot parse empty metadata")
	// ErrEmptyName is returned when a project or context name is empty.
	ErrEmptyName = errors.New("name cannot be empty")
	// ErrInvalidPriority is returned for anything but a single letter A-Z.
	ErrInvalidPriority = errors.New("priority must be a single uppercase letter A-Z")
	// ErrNoCreationDate is returned by Age for tasks without a creation date.
	ErrNoCreationDate = errors.New("cannot calculate age of a task without a creation date")
	// ErrCompletionParadox is returned by Age when a task was completed
	// before it was created.
	ErrCompletionParadox = errors.New("the task was completed before it was created")
	// ErrTaskNotFound is returned when no task has the requested ID.
	ErrTaskNotFound = errors.New("task not found")
)

// ParseError reports a line of multi-line input that failed to parse.
type ParseError struct {
	Line int // 1-based line number in the input
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Err)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}
