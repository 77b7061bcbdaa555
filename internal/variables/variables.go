// Package variables implements the scoped variable environment commands run in.
//
// A session owns one root scope. Every command execution receives a child of
// the scope it was called from, so writes made by the command are visible to
// anything it executes in turn, and vanish when it returns. Lookups walk from
// the innermost scope outwards.
package variables

import (
	"fmt"
	"sort"
	"strconv"
	"sync"

	"github.com/footprint-tools/gshell/internal/errs"
)

type entry struct {
	value    any
	readOnly bool
}

// Variables is one scope in the chain.
type Variables struct {
	mu      sync.RWMutex
	parent  *Variables
	entries map[string]entry
}

// Option configures a single Set call.
type Option func(*entry)

// ReadOnly marks the variable as immutable. Later writes to it, including
// shadowing it from a child scope, fail with a variable error.
func ReadOnly() Option {
	return func(e *entry) {
		e.readOnly = true
	}
}

// New creates a root scope.
func New() *Variables {
	return &Variables{entries: make(map[string]entry)}
}

// Child creates a scope whose lookups fall back to v.
func (v *Variables) Child() *Variables {
	return &Variables{parent: v, entries: make(map[string]entry)}
}

// Parent returns the enclosing scope, or nil for a root.
func (v *Variables) Parent() *Variables {
	return v.parent
}

// Root returns the outermost scope of the chain.
func (v *Variables) Root() *Variables {
	s := v
	for s.parent != nil {
		s = s.parent
	}
	return s
}

func (v *Variables) local(name string) (entry, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	e, ok := v.entries[name]
	return e, ok
}

func (v *Variables) find(name string) (entry, bool) {
	for s := v; s != nil; s = s.parent {
		if e, ok := s.local(name); ok {
			return e, true
		}
	}
	return entry{}, false
}

// Set binds name in this scope.
func (v *Variables) Set(name string, value any, opts ...Option) error {
	if name == "" {
		return errs.MissingArgument("name")
	}
	if existing, ok := v.find(name); ok && existing.readOnly {
		return errs.Immutable(name)
	}

	e := entry{value: value}
	for _, opt := range opts {
		opt(&e)
	}

	v.mu.Lock()
	v.entries[name] = e
	v.mu.Unlock()
	return nil
}

// Get returns the value visible from this scope.
func (v *Variables) Get(name string) (any, bool) {
	e, ok := v.find(name)
	return e.value, ok
}

// Contains reports whether name is visible from this scope.
func (v *Variables) Contains(name string) bool {
	_, ok := v.find(name)
	return ok
}

// IsReadOnly reports whether the visible binding for name is immutable.
func (v *Variables) IsReadOnly(name string) bool {
	e, ok := v.find(name)
	return ok && e.readOnly
}

// Unset removes name from this scope only. Removing a name that is not bound
// here is not an error.
func (v *Variables) Unset(name string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	e, ok := v.entries[name]
	if !ok {
		return nil
	}
	if e.readOnly {
		return errs.Immutable(name)
	}
	delete(v.entries, name)
	return nil
}

// GetString returns the value formatted as a string, or def when unset.
func (v *Variables) GetString(name, def string) string {
	value, ok := v.Get(name)
	if !ok || value == nil {
		return def
	}
	return Format(value)
}

// GetBool interprets the value as a boolean, or returns def when unset or unparseable.
func (v *Variables) GetBool(name string, def bool) bool {
	value, ok := v.Get(name)
	if !ok {
		return def
	}
	switch b := value.(type) {
	case bool:
		return b
	case string:
		parsed, err := strconv.ParseBool(b)
		if err != nil {
			return def
		}
		return parsed
	default:
		return def
	}
}

// Lookup returns the string form of a variable. It satisfies parser.Lookup.
func (v *Variables) Lookup(name string) (string, bool) {
	value, ok := v.Get(name)
	if !ok {
		return "", false
	}
	return Format(value), true
}

// Names returns every name visible from this scope, sorted.
func (v *Variables) Names() []string {
	seen := make(map[string]struct{})
	for s := v; s != nil; s = s.parent {
		s.mu.RLock()
		for name := range s.entries {
			seen[name] = struct{}{}
		}
		s.mu.RUnlock()
	}

	names := make([]string, 0, len(seen))
	for name := range seen {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Snapshot returns the visible bindings, inner scopes winning.
func (v *Variables) Snapshot() map[string]any {
	out := make(map[string]any)
	for _, name := range v.Names() {
		value, _ := v.Get(name)
		out[name] = value
	}
	return out
}

// Format renders a variable value the way it is substituted into command lines.
func Format(value any) string {
	switch val := value.(type) {
	case nil:
		return ""
	case string:
		return val
	case fmt.Stringer:
		return val.String()
	default:
		return fmt.Sprint(val)
	}
}
