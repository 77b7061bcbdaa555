// Package registry holds the commands and aliases a shell can run and
// resolves names against them.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/log"
)

// Registry maps names to command descriptors and aliases.
//
// Reads take mu. Mutations take pub for the whole change plus event
// delivery, and mu only while touching the maps, so observers can read the
// registry from OnEvent and every observer sees events in mutation order.
type Registry struct {
	mu       sync.RWMutex
	commands map[string]*command.Descriptor
	aliases  map[string]string

	pub       sync.Mutex
	observers []attached
	nextID    int

	store  domain.AliasStore
	logger domain.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger.
func WithLogger(l domain.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithAliasStore persists alias definitions through s.
func WithAliasStore(s domain.AliasStore) Option {
	return func(r *Registry) {
		r.store = s
	}
}

// New creates an empty registry.
func New(opts ...Option) *Registry {
	r := &Registry{
		commands: make(map[string]*command.Descriptor),
		aliases:  make(map[string]string),
		logger:   log.NopLogger{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds desc, replacing any command already registered under its name.
func (r *Registry) Register(desc *command.Descriptor) error {
	if err := check(desc); err != nil {
		return err
	}

	r.pub.Lock()
	defer r.pub.Unlock()

	r.mu.Lock()
	_, replaced := r.commands[desc.Name]
	r.commands[desc.Name] = desc
	r.mu.Unlock()

	if replaced {
		r.logger.Debug("registry: replaced command %s", desc.Name)
	} else {
		r.logger.Debug("registry: registered command %s", desc.Name)
	}
	r.publish(Event{Kind: CommandRegistered, Name: desc.Name, Descriptor: desc})
	return nil
}

func check(desc *command.Descriptor) error {
	if err := desc.Validate(); err != nil {
		return fmt.Errorf("register: %w", err)
	}
	if desc.Params != nil && desc.Opaque {
		return fmt.Errorf("register %s: opaque commands cannot declare parameters", desc.Name)
	}
	return nil
}

// Unregister removes the command registered under name.
func (r *Registry) Unregister(name string) error {
	r.pub.Lock()
	defer r.pub.Unlock()

	r.mu.Lock()
	desc, ok := r.commands[name]
	if ok {
		delete(r.commands, name)
	}
	r.mu.Unlock()

	if !ok {
		return errs.Unresolved(name)
	}

	r.logger.Debug("registry: removed command %s", name)
	r.publish(Event{Kind: CommandRemoved, Name: name, Descriptor: desc})
	return nil
}

// Lookup returns the command registered under exactly name.
func (r *Registry) Lookup(name string) (*command.Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.commands[name]
	return d, ok
}

// Commands returns every registered descriptor sorted by name.
func (r *Registry) Commands() []*command.Descriptor {
	r.mu.RLock()
	out := make([]*command.Descriptor, 0, len(r.commands))
	for _, d := range r.commands {
		out = append(out, d)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Names returns every command and alias name, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	names := make([]string, 0, len(r.commands)+len(r.aliases))
	for name := range r.commands {
		names = append(names, name)
	}
	for name := range r.aliases {
		if _, dup := r.commands[name]; !dup {
			names = append(names, name)
		}
	}
	r.mu.RUnlock()

	sort.Strings(names)
	return names
}

// Attach adds an observer after replaying the current commands and
// aliases to it. The returned function detaches it.
func (r *Registry) Attach(o Observer) (detach func()) {
	r.pub.Lock()
	defer r.pub.Unlock()

	for _, d := range r.Commands() {
		o.OnEvent(Event{Kind: CommandRegistered, Name: d.Name, Descriptor: d})
	}
	for _, name := range sortedKeys(r.Aliases()) {
		target, _ := r.Alias(name)
		o.OnEvent(Event{Kind: AliasDefined, Name: name, Target: target})
	}

	r.nextID++
	id := r.nextID
	r.observers = append(r.observers, attached{id: id, observer: o})

	return func() {
		r.pub.Lock()
		defer r.pub.Unlock()
		for i, existing := range r.observers {
			if existing.id == id {
				r.observers = append(r.observers[:i], r.observers[i+1:]...)
				return
			}
		}
	}
}

// publish must be called with pub held.
func (r *Registry) publish(e Event) {
	for _, a := range r.observers {
		a.observer.OnEvent(e)
	}
}

type attached struct {
	id       int
	observer Observer
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
