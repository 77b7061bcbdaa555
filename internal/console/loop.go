package console

import (
	"context"
	"errors"
	"io"

	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/log"
	"github.com/footprint-tools/gshell/internal/variables"
)

// Session is the shell a Loop feeds.
type Session interface {
	Execute(ctx context.Context, line string) command.Result
	Variables() *variables.Variables
	IO() *command.IO
}

// DefaultPrompt is used when shell.prompt is unset.
const DefaultPrompt = "> "

// Loop reads lines and executes them until exit or end of input.
type Loop struct {
	session Session
	reader  LineReader
	errors  ErrorHandler
	logger  domain.Logger
	prompt  string
}

type LoopOption func(*Loop)

func WithErrorHandler(h ErrorHandler) LoopOption {
	return func(l *Loop) {
		if h != nil {
			l.errors = h
		}
	}
}

func WithLoopLogger(logger domain.Logger) LoopOption {
	return func(l *Loop) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithDefaultPrompt sets the prompt template used when shell.prompt is unset.
func WithDefaultPrompt(p string) LoopOption {
	return func(l *Loop) { l.prompt = p }
}

func NewLoop(session Session, reader LineReader, opts ...LoopOption) *Loop {
	l := &Loop{
		session: session,
		reader:  reader,
		errors:  DefaultErrorHandler{},
		logger:  log.NopLogger{},
		prompt:  DefaultPrompt,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run returns the exit code of the session: the code of an exit request,
// or 0 at end of input. An interrupted line is discarded. Cancelling ctx
// ends the loop after the current line with ctx's error.
func (l *Loop) Run(ctx context.Context) (int, error) {
	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}

		line, err := l.reader.ReadLine(Prompt(l.session.Variables(), l.prompt))
		switch {
		case errors.Is(err, ErrInterrupted):
			continue
		case errors.Is(err, io.EOF):
			l.logger.Debug("end of input")
			return 0, nil
		case err != nil:
			return 1, err
		}

		result := l.session.Execute(ctx, line)
		switch result.Status {
		case command.StatusExit:
			l.logger.Debug("exit %d", result.ExitCode)
			return result.ExitCode, nil
		case command.StatusFailure:
			l.report(result.Err)
		}
	}
}

func (l *Loop) report(err error) {
	out := l.session.IO().Err
	verbose := l.session.Variables().GetBool(variables.ShowStacktrace, false)
	l.errors.Handle(out, err, verbose)
	if ferr := out.Flush(); ferr != nil {
		l.logger.Warn("flush error output: %v", ferr)
	}
}

// RunLine executes a single line the way -c does: a failure is reported
// and turned into its exit code.
func RunLine(ctx context.Context, session Session, line string, handler ErrorHandler) int {
	return Report(session, session.Execute(ctx, line), handler)
}

// Report hands a failed result to handler and returns the exit code the
// result stands for.
func Report(session Session, result command.Result, handler ErrorHandler) int {
	if handler == nil {
		handler = DefaultErrorHandler{}
	}
	switch result.Status {
	case command.StatusExit:
		return result.ExitCode
	case command.StatusFailure:
		out := session.IO().Err
		handler.Handle(out, result.Err, session.Variables().GetBool(variables.ShowStacktrace, false))
		_ = out.Flush()
		return ExitCode(result.Err)
	default:
		return 0
	}
}

// ExitCode maps a failure to a process exit code.
func ExitCode(err error) int {
	if e, ok := errs.As(err); ok {
		return e.GetExitCode()
	}
	return 1
}
