package command

import (
	"context"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/variables"
)

// Shell is the handle a running command has on its session.
type Shell interface {
	// ID identifies the session.
	ID() string

	// Variables returns the session's root scope.
	Variables() *variables.Variables

	// Execute runs a line in the session scope.
	Execute(ctx context.Context, line string) Result
}

// Executor runs a line on behalf of a command, layering over the command's scope.
type Executor func(ctx context.Context, scope *variables.Variables, line string) Result

// Context is everything one invocation of a command can see.
type Context struct {
	Ctx context.Context

	// Name is the name the command was invoked by.
	Name string

	Descriptor *Descriptor
	Shell      Shell
	Args       *cli.Bound

	// Variables is the invocation's own scope, a child of the caller's.
	Variables *variables.Variables

	IO     *IO
	Logger domain.Logger

	exec Executor
}

// NewContext assembles a Context. exec backs Execute.
func NewContext(ctx context.Context, name string, desc *Descriptor, sh Shell, args *cli.Bound, vars *variables.Variables, io *IO, logger domain.Logger, exec Executor) *Context {
	return &Context{
		Ctx:        ctx,
		Name:       name,
		Descriptor: desc,
		Shell:      sh,
		Args:       args,
		Variables:  vars,
		IO:         io,
		Logger:     logger,
		exec:       exec,
	}
}

// Raw returns the unbound argument tokens.
func (c *Context) Raw() []string {
	if c.Args == nil {
		return nil
	}
	return c.Args.Raw()
}

// Execute runs line nested under this invocation, so the variables the
// command has set are visible to it.
func (c *Context) Execute(line string) Result {
	if c.exec == nil {
		return c.Shell.Execute(c.Ctx, line)
	}
	return c.exec(c.Ctx, c.Variables, line)
}
