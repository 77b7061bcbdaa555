package errs

import (
	"fmt"
	"strings"
)

// Execution wraps a failure raised by a command body. The cause is kept unmodified.
func Execution(command string, args []string, cause error) *Error {
	invocation := command
	if len(args) > 0 {
		invocation += " " + strings.Join(args, " ")
	}
	return &Error{
		Kind:    ErrExecution,
		Message: fmt.Sprintf("%s failed", command),
		Param:   invocation,
		Cause:   cause,
	}
}

// Panic wraps a recovered panic from a command body.
func Panic(command string, args []string, value any, stack []byte) *Error {
	e := Execution(command, args, fmt.Errorf("panic: %v", value))
	e.Stack = stack
	return e
}
