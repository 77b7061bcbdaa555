// Package dispatchers runs input lines: it parses them, resolves every
// invocation against the registry, binds arguments and invokes the command.
package dispatchers

import (
	"context"
	"fmt"
	"runtime/debug"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/log"
	"github.com/footprint-tools/gshell/internal/metrics"
	"github.com/footprint-tools/gshell/internal/parser"
	"github.com/footprint-tools/gshell/internal/registry"
	"github.com/footprint-tools/gshell/internal/variables"
)

// DefaultMaxDepth bounds how deeply executions may nest through aliases
// and sourced scripts.
const DefaultMaxDepth = 32

const tracerName = "github.com/footprint-tools/gshell/dispatchers"

// Session is the shell a line runs in.
type Session interface {
	command.Shell

	// IO returns the streams commands of the session write to.
	IO() *command.IO
}

type depthKey struct{}

func depthFrom(ctx context.Context) int {
	d, _ := ctx.Value(depthKey{}).(int)
	return d
}

// Dispatcher executes lines against a registry.
type Dispatcher struct {
	registry *registry.Registry
	prefs    domain.PreferenceStore
	metrics  *metrics.Metrics
	tracer   trace.Tracer
	logger   domain.Logger
	maxDepth int
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

func WithLogger(l domain.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithPreferences sets the store that fills parameters bound to a preference.
func WithPreferences(p domain.PreferenceStore) Option {
	return func(d *Dispatcher) { d.prefs = p }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(d *Dispatcher) { d.metrics = m }
}

func WithTracer(t trace.Tracer) Option {
	return func(d *Dispatcher) {
		if t != nil {
			d.tracer = t
		}
	}
}

// WithMaxDepth overrides DefaultMaxDepth. Values below 1 are ignored.
func WithMaxDepth(n int) Option {
	return func(d *Dispatcher) {
		if n > 0 {
			d.maxDepth = n
		}
	}
}

// New creates a Dispatcher resolving against reg.
func New(reg *registry.Registry, opts ...Option) *Dispatcher {
	d := &Dispatcher{
		registry: reg,
		tracer:   otel.Tracer(tracerName),
		logger:   log.NopLogger{},
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Registry returns the registry commands are resolved against.
func (d *Dispatcher) Registry() *registry.Registry {
	return d.registry
}

// Execute parses line with scope and runs its invocations in order. The
// first invocation that fails or requests exit ends the line, and its
// result is returned. Otherwise the result of the last invocation is.
func (d *Dispatcher) Execute(ctx context.Context, sess Session, scope *variables.Variables, line string) command.Result {
	if ctx == nil {
		ctx = context.Background()
	}
	depth := depthFrom(ctx)
	if depth >= d.maxDepth {
		return command.Failure(errs.NestingDepth(d.maxDepth))
	}

	cl, err := parser.Parse(line, scope)
	if err != nil {
		return command.Failure(err)
	}

	result := command.Success(nil)
	for _, cmd := range cl.Commands {
		result = d.ExecuteCommand(ctx, sess, scope, cmd.Name(), cmd.Args()...)
		if !result.OK() {
			break
		}
	}
	return result
}

// ExecuteCommand resolves name and runs it with args. The arguments are
// taken as they are; no parsing or substitution happens.
func (d *Dispatcher) ExecuteCommand(ctx context.Context, sess Session, scope *variables.Variables, name string, args ...string) (result command.Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, span := d.tracer.Start(ctx, "gshell.execute", trace.WithAttributes(
		attribute.String("gshell.command", name),
		attribute.Int("gshell.args", len(args)),
		attribute.Int("gshell.depth", depthFrom(ctx)),
	))
	defer span.End()

	io := sess.IO()
	defer func() {
		if err := io.Flush(); err != nil {
			d.logger.Warn("flush after %s: %v", name, err)
		}
	}()

	defer func() {
		span.SetAttributes(attribute.String("gshell.status", result.Status.String()))
		if result.Err != nil {
			span.RecordError(result.Err)
			span.SetStatus(codes.Error, result.Err.Error())
		}
	}()

	desc, err := d.registry.Resolve(name, scope.GetString(variables.ShellGroup, ""))
	if err != nil {
		d.logger.Debug("resolve %q: %v", name, err)
		return command.Failure(err)
	}

	start := time.Now()
	defer func() {
		d.metrics.Observe(desc.Name, result.Status.String(), time.Since(start))
	}()

	bound, err := d.bind(desc, args)
	if err != nil {
		d.logger.Debug("bind %s %v: %v", desc.Name, args, err)
		return command.Failure(err)
	}

	if bound.Help {
		io.Out.Pager(Usage(desc))
		return command.Usage()
	}

	child := scope.Child()
	exec := func(ctx context.Context, s *variables.Variables, line string) command.Result {
		return d.Execute(context.WithValue(ctx, depthKey{}, depthFrom(ctx)+1), sess, s, line)
	}
	cctx := command.NewContext(ctx, name, desc, sess, bound, child, io, d.logger, exec)

	value, err := invoke(desc.Factory.Instance(), cctx)

	if exit, ok := command.AsExit(value); ok && err == nil {
		d.logger.Debug("%s requested exit %d", desc.Name, exit.Code)
		return command.Exited(exit.Code)
	}

	if err != nil {
		e, ok := err.(*errs.Error)
		if !ok {
			e = errs.Execution(desc.Name, args, err)
		}
		if e.Kind == errs.ErrExecution {
			d.logger.Error("%s %s: %v", desc.Name, strings.Join(args, " "), e)
		} else {
			d.logger.Debug("%s %s: %v", desc.Name, strings.Join(args, " "), e)
		}
		return command.Failure(e)
	}

	if err := scope.Set(variables.LastResult, value); err != nil {
		d.logger.Warn("store last result of %s: %v", desc.Name, err)
	}
	return command.Success(value)
}

func (d *Dispatcher) bind(desc *command.Descriptor, args []string) (*cli.Bound, error) {
	if desc.Opaque {
		return cli.NewBound(args), nil
	}

	bound, err := cli.Bind(desc.Params, args)
	if err != nil {
		return nil, withUsage(err, desc)
	}
	if bound.Help {
		return bound, nil
	}
	if err := d.applyPreferences(desc, bound); err != nil {
		return nil, withUsage(err, desc)
	}
	return bound, nil
}

// applyPreferences fills parameters that were not given on the command
// line from their stored preference.
func (d *Dispatcher) applyPreferences(desc *command.Descriptor, bound *cli.Bound) error {
	if d.prefs == nil {
		return nil
	}

	params := slices.Concat(desc.Params.Options(), desc.Params.Arguments())
	for _, p := range params {
		if p.Preference == "" || bound.Has(p.Name) {
			continue
		}

		raw, ok, err := d.prefs.GetPreference(p.Preference)
		if err != nil {
			d.logger.Warn("read preference %s: %v", p.Preference, err)
			continue
		}
		if !ok {
			continue
		}

		var value any
		if c, isCollector := p.Handler.(cli.Collector); isCollector {
			value, err = c.Collect(strings.Fields(raw))
		} else {
			value, err = p.Handler.Convert(raw)
		}
		if err != nil {
			return errs.InvalidValue(p.Name, raw, fmt.Errorf("preference %s: %w", p.Preference, err))
		}
		bound.Default(p.Name, value)
	}
	return nil
}

func withUsage(err error, desc *command.Descriptor) error {
	if e, ok := errs.As(err); ok && e.Usage == "" {
		e.Usage = Usage(desc)
	}
	return err
}

func invoke(action command.Action, ctx *command.Context) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = errs.Panic(ctx.Descriptor.Name, ctx.Raw(), r, debug.Stack())
		}
	}()
	return action.Execute(ctx)
}
