package errs

import (
	"fmt"
	"strings"
)

// AliasCycle is returned when expanding an alias leads back to itself.
func AliasCycle(chain []string) *Error {
	name := ""
	if len(chain) > 0 {
		name = chain[0]
	}
	return &Error{
		Kind:    ErrAliasCycle,
		Message: fmt.Sprintf("alias cycle: %s", strings.Join(chain, " -> ")),
		Param:   name,
	}
}

// NestingDepth is returned when nested execution exceeds the allowed depth.
func NestingDepth(limit int) *Error {
	return &Error{
		Kind:    ErrNestingDepth,
		Message: fmt.Sprintf("nested execution exceeded depth %d", limit),
	}
}
