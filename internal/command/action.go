package command

// Action is the runtime behaviour of a command.
//
// Execute returns the command's result value. Returning Exit(code) ends the
// session; any other returned error is reported as an execution failure.
type Action interface {
	Execute(ctx *Context) (any, error)
}

// ActionFunc adapts a function to Action.
type ActionFunc func(ctx *Context) (any, error)

// Execute calls f(ctx).
func (f ActionFunc) Execute(ctx *Context) (any, error) {
	return f(ctx)
}

// Factory yields the Action for one invocation.
type Factory interface {
	Instance() Action
	isFactory()
}

type singleton struct {
	action Action
}

func (s singleton) Instance() Action { return s.action }

func (singleton) isFactory() {}

type prototype struct {
	create func() Action
}

func (p prototype) Instance() Action { return p.create() }

func (prototype) isFactory() {}

// Singleton shares one action across every invocation. The action must be
// safe for concurrent use if sessions run in parallel.
func Singleton(a Action) Factory {
	return singleton{action: a}
}

// Prototype creates a fresh action per invocation, so per-call state never
// leaks between calls.
func Prototype(create func() Action) Factory {
	return prototype{create: create}
}

// IsPrototype reports whether f creates a fresh action per invocation.
func IsPrototype(f Factory) bool {
	_, ok := f.(prototype)
	return ok
}
