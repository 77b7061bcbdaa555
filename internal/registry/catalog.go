package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/footprint-tools/gshell/internal/command"
)

// Constructor builds the descriptor for a command set entry.
type Constructor func(e Entry) (*command.Descriptor, error)

// Catalog maps action names used in command sets to constructors.
type Catalog struct {
	mu    sync.RWMutex
	ctors map[string]Constructor
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{ctors: make(map[string]Constructor)}
}

// Add registers a constructor under name, replacing any previous one.
func (c *Catalog) Add(name string, ctor Constructor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ctors[name] = ctor
}

// AddDescriptor makes desc available under its own name. Entries that use it
// get a renamed copy.
func (c *Catalog) AddDescriptor(desc *command.Descriptor) {
	c.Add(desc.Name, func(Entry) (*command.Descriptor, error) {
		return desc, nil
	})
}

// Build creates the descriptor for e, registered under e.Name.
func (c *Catalog) Build(e Entry) (*command.Descriptor, error) {
	c.mu.RLock()
	ctor, ok := c.ctors[e.ActionName()]
	c.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown action %q", e.ActionName())
	}

	desc, err := ctor(e)
	if err != nil {
		return nil, err
	}
	desc = desc.Renamed(e.Name)
	if e.Summary != "" {
		desc.Summary = e.Summary
	}
	if e.Category != "" {
		desc.Category = command.ParseCategory(e.Category)
	}
	return desc, nil
}

// Names lists the catalog's action names.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]string, 0, len(c.ctors))
	for name := range c.ctors {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
