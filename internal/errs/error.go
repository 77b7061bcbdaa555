package errs

import (
	"errors"
	"strings"
)

// Kind represents the type of shell error.
type Kind int

const (
	ErrUnknown Kind = iota
	ErrParse
	ErrUnresolved
	ErrAliasCycle
	ErrNestingDepth
	ErrMissingArgument
	ErrInvalidValue
	ErrExtraArgument
	ErrInvalidFlag
	ErrImmutable
	ErrReserved
	ErrExecution
)

// Class groups kinds into the families the console reports on.
type Class int

const (
	ClassUnknown Class = iota
	ClassParse
	ClassCommand
	ClassUsage
	ClassVariable
	ClassExecution
)

func (c Class) String() string {
	switch c {
	case ClassParse:
		return "ParseError"
	case ClassCommand:
		return "CommandError"
	case ClassUsage:
		return "UsageError"
	case ClassVariable:
		return "VariableError"
	case ClassExecution:
		return "ExecutionError"
	default:
		return "Error"
	}
}

// Class returns the family a kind belongs to.
func (k Kind) Class() Class {
	switch k {
	case ErrParse:
		return ClassParse
	case ErrUnresolved, ErrAliasCycle, ErrNestingDepth:
		return ClassCommand
	case ErrMissingArgument, ErrInvalidValue, ErrExtraArgument, ErrInvalidFlag:
		return ClassUsage
	case ErrImmutable, ErrReserved:
		return ClassVariable
	case ErrExecution:
		return ClassExecution
	default:
		return ClassUnknown
	}
}

// Exit codes used when a failure ends a non-interactive run:
//
//	Exit 1: command and execution failures
//	Exit 2: user input errors (parse, usage, variables)
var exitCodes = map[Class]int{
	ClassUnknown:   1,
	ClassParse:     2,
	ClassCommand:   1,
	ClassUsage:     2,
	ClassVariable:  2,
	ClassExecution: 1,
}

// Error is the single error type produced by the shell core.
type Error struct {
	Kind    Kind
	Message string

	// Param names the offending parameter, variable or command, when known.
	Param string

	// Suggestions holds "did you mean" candidates for unresolved names and flags.
	Suggestions []string

	// Usage carries the rendered usage text of the command a usage error refers to.
	Usage string

	// Stack is set when the failure was a recovered panic.
	Stack []byte

	Cause    error
	ExitCode int
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil && e.Kind == ErrExecution {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

// Unwrap exposes the cause chain to errors.Is and errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Class returns the family of the error.
func (e *Error) Class() Class {
	return e.Kind.Class()
}

// GetExitCode returns the appropriate exit code for this error.
// If ExitCode is explicitly set, it is returned; otherwise, the code is derived from Kind.
func (e *Error) GetExitCode() int {
	if e.ExitCode != 0 {
		return e.ExitCode
	}
	if code, ok := exitCodes[e.Class()]; ok {
		return code
	}
	return 1
}

// Hint renders the suggestion list, or "" when there is none.
func (e *Error) Hint() string {
	if len(e.Suggestions) == 0 {
		return ""
	}
	return "did you mean: " + strings.Join(e.Suggestions, ", ") + "?"
}

// As returns the first *Error in err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Is reports whether err's chain contains a shell error of the given kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Kind == kind {
			return true
		}
		err = e.Cause
	}
	return false
}

// Chain flattens err and its causes, outermost first.
func Chain(err error) []error {
	var out []error
	for err != nil {
		out = append(out, err)
		err = errors.Unwrap(err)
	}
	return out
}

// Verify Error implements the error interface.
var _ error = (*Error)(nil)
