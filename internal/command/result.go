package command

import "fmt"

// Status is the terminal state of one execution.
type Status int

const (
	StatusSuccess Status = iota
	// StatusUsage means help text was displayed and nothing ran.
	StatusUsage
	StatusFailure
	StatusExit
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "success"
	case StatusUsage:
		return "usage"
	case StatusFailure:
		return "failure"
	case StatusExit:
		return "exit"
	default:
		return "unknown"
	}
}

// Result is what executing a line or a command produces.
type Result struct {
	Status   Status
	Value    any
	ExitCode int
	Err      error
}

// Success wraps a command's return value.
func Success(value any) Result {
	return Result{Status: StatusSuccess, Value: value}
}

// Usage reports that help was shown instead of executing.
func Usage() Result {
	return Result{Status: StatusUsage}
}

// Failure wraps an error.
func Failure(err error) Result {
	return Result{Status: StatusFailure, Err: err}
}

// Exited reports a request to end the session.
func Exited(code int) Result {
	return Result{Status: StatusExit, ExitCode: code}
}

// OK reports whether the execution completed without failure or exit.
func (r Result) OK() bool {
	return r.Status == StatusSuccess || r.Status == StatusUsage
}

// ExitRequest is returned by an action to end the session.
type ExitRequest struct {
	Code int
}

func (e ExitRequest) String() string {
	return fmt.Sprintf("exit %d", e.Code)
}

// Exit builds the value an action returns to end the session with code.
func Exit(code int) ExitRequest {
	return ExitRequest{Code: code}
}

// AsExit extracts an exit request from an action's return value.
func AsExit(value any) (ExitRequest, bool) {
	switch v := value.(type) {
	case ExitRequest:
		return v, true
	case *ExitRequest:
		if v != nil {
			return *v, true
		}
	}
	return ExitRequest{}, false
}

// Propagate turns a nested execution's result into an action return.
// Exit requests travel outwards unchanged; failures become errors.
func Propagate(r Result) (any, error) {
	switch r.Status {
	case StatusExit:
		return Exit(r.ExitCode), nil
	case StatusFailure:
		return nil, r.Err
	default:
		return r.Value, nil
	}
}
