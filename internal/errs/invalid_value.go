package errs

import "fmt"

// InvalidValue is returned when a token cannot be converted by a parameter's handler.
func InvalidValue(param, value string, cause error) *Error {
	msg := fmt.Sprintf("invalid value '%s' for '%s'", value, param)
	if cause != nil {
		msg += ": " + cause.Error()
	}
	return &Error{
		Kind:    ErrInvalidValue,
		Message: msg,
		Param:   param,
		Cause:   cause,
	}
}
