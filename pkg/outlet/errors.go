package outlet

import (
	"fmt"

	"github.com/pkg/errors"
)

// CommandError is an error whose message is sent back to the channel the
// command came from. Any other error returned by a command handler is only
// logged.
type CommandError struct {
	msg string
}

func (e *CommandError) Error() string {
	return e.msg
}

// NewCommandError creates a CommandError with a formatted message.
func NewCommandError(format string, args ...any) *CommandError {
	return &CommandError{msg: fmt.Sprintf(format, args...)}
}

// MissingArguments reports that a command got fewer arguments than it
// requires.
func MissingArguments(n int) *CommandError {
	return NewCommandError("%d argument(s) are required for this command", n)
}

// TooManyArguments reports that a command got more arguments than it allows.
func TooManyArguments(n int) *CommandError {
	return NewCommandError("Only %d argument(s) are allowed for this command", n)
}

// WrongType reports an argument that could not be converted.
func WrongType(format string, args ...any) *CommandError {
	return NewCommandError(format, args...)
}

// MissingPermission reports a caller without the permissions a command
// requires.
func MissingPermission(msg string) *CommandError {
	return &CommandError{msg: msg}
}

// IsCommandError reports whether err is (or wraps) a CommandError.
func IsCommandError(err error) bool {
	var ce *CommandError
	return errors.As(err, &ce)
}
