package errs

import "fmt"

// Parse is returned when a command line cannot be tokenized.
func Parse(pos int, reason string) *Error {
	return &Error{
		Kind:    ErrParse,
		Message: fmt.Sprintf("parse error at column %d: %s", pos+1, reason),
	}
}
