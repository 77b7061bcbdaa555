package errs

import "fmt"

// MissingArgument is returned when a required parameter is not provided.
func MissingArgument(param string) *Error {
	return &Error{
		Kind:    ErrMissingArgument,
		Message: fmt.Sprintf("missing required argument '%s'", param),
		Param:   param,
	}
}
