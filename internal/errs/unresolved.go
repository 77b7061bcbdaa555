package errs

import "fmt"

// Unresolved is returned when a name matches neither an alias nor a command.
func Unresolved(name string, suggestions ...string) *Error {
	return &Error{
		Kind:        ErrUnresolved,
		Message:     fmt.Sprintf("unknown command: %s", name),
		Param:       name,
		Suggestions: suggestions,
	}
}
