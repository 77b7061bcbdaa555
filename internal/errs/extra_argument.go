package errs

import "fmt"

// ExtraArgument is returned when more positional tokens are given than declared.
func ExtraArgument(token string) *Error {
	return &Error{
		Kind:    ErrExtraArgument,
		Message: fmt.Sprintf("unexpected argument '%s'", token),
		Param:   token,
	}
}
