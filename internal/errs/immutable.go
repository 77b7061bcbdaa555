package errs

import "fmt"

// Immutable is returned when a read-only variable is written or removed.
func Immutable(name string) *Error {
	return &Error{
		Kind:    ErrImmutable,
		Message: fmt.Sprintf("variable '%s' is read-only", name),
		Param:   name,
	}
}

// Reserved is returned when a name owned by the shell is used as a user variable.
func Reserved(name string) *Error {
	return &Error{
		Kind:    ErrReserved,
		Message: fmt.Sprintf("variable '%s' is reserved", name),
		Param:   name,
	}
}
