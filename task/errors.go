package task

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrParse is matched by every ParseError.
	ErrParse = errors.New("task: parse error")

	// ErrUnsupportedTask is matched by UnsupportedTaskError.
	ErrUnsupportedTask = errors.New("task: unsupported task")

	// ErrInvalidRequest marks a request whose arguments do not fit its task.
	ErrInvalidRequest = errors.New("task: invalid request")
)

// ParseError reports the offending token of a malformed input string. Err,
// when set, is the underlying failure and stays reachable through errors.Is
// and errors.As.
type ParseError struct {
	What   string
	Input  string
	Token  string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Token == "" || e.Token == e.Input {
		return fmt.Sprintf("task: parse %s %q: %s", e.What, e.Input, e.Reason)
	}
	return fmt.Sprintf("task: parse %s %q: token %q: %s", e.What, e.Input, e.Token, e.Reason)
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// UnsupportedTaskError names a task outside the Kind enumeration.
type UnsupportedTaskError struct {
	Name string
}

func (e *UnsupportedTaskError) Error() string {
	names := make([]string, len(kinds))
	for i, k := range kinds {
		names[i] = string(k)
	}
	return fmt.Sprintf("task: unsupported task %q (supported: %s)", e.Name, strings.Join(names, ", "))
}

func (e *UnsupportedTaskError) Unwrap() error {
	return ErrUnsupportedTask
}

func invalid(kind Kind, format string, args ...any) error {
	return fmt.Errorf("%w: %s: %s", ErrInvalidRequest, kind, fmt.Sprintf(format, args...))
}
