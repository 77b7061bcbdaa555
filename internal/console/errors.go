package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/ui/style"
)

// ErrorHandler reports failed lines.
type ErrorHandler interface {
	Handle(w io.Writer, err error, verbose bool)
}

// ErrorHandlerFunc adapts a function to ErrorHandler.
type ErrorHandlerFunc func(w io.Writer, err error, verbose bool)

func (f ErrorHandlerFunc) Handle(w io.Writer, err error, verbose bool) { f(w, err, verbose) }

// DefaultErrorHandler prints one line per failure, followed by the
// suggestion hint and, for usage errors, the usage of the command. When
// verbose is set the cause chain and any recovered panic stack follow.
type DefaultErrorHandler struct{}

func (DefaultErrorHandler) Handle(w io.Writer, err error, verbose bool) {
	if err == nil {
		return
	}

	e, ok := errs.As(err)
	label := "Error"
	if ok {
		label = e.Class().String()
	}
	fmt.Fprintf(w, "%s %s: %s\n", style.Error("ERROR"), label, err.Error())

	if !ok {
		if verbose {
			writeChain(w, err)
		}
		return
	}

	if hint := e.Hint(); hint != "" {
		fmt.Fprintln(w, style.Muted(hint))
	}
	if e.Class() == errs.ClassUsage && e.Usage != "" {
		fmt.Fprintln(w)
		fmt.Fprint(w, e.Usage)
		if !strings.HasSuffix(e.Usage, "\n") {
			fmt.Fprintln(w)
		}
	}

	if verbose {
		writeChain(w, err)
		if len(e.Stack) > 0 {
			fmt.Fprintln(w, style.Muted("Stack:"))
			fmt.Fprint(w, string(e.Stack))
		}
	}
}

func writeChain(w io.Writer, err error) {
	chain := errs.Chain(err)
	for _, cause := range chain[1:] {
		fmt.Fprintf(w, "%s %s\n", style.Muted("Caused by:"), describe(cause))
	}
}

func describe(err error) string {
	if e, ok := err.(*errs.Error); ok {
		return e.Class().String() + ": " + e.Error()
	}
	return fmt.Sprintf("%T: %s", err, err.Error())
}
