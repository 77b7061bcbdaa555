package errs

import "fmt"

// InvalidFlag is returned when an unknown flag is passed to a command.
func InvalidFlag(flag string, suggestions ...string) *Error {
	return &Error{
		Kind:        ErrInvalidFlag,
		Message:     fmt.Sprintf("unknown flag '%s'", flag),
		Param:       flag,
		Suggestions: suggestions,
	}
}
