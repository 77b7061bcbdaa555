// Package command defines what the shell executes: descriptors registered
// under a name, the actions behind them, and the context and result types
// that pass between the dispatcher and a running command.
package command

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/gshell/internal/cli"
)

// Descriptor is the registered, immutable description of a command.
type Descriptor struct {
	// Name may be path-qualified, e.g. "pref/set".
	Name        string
	Summary     string
	Description string
	Category    Category
	Params      *cli.Spec

	// Opaque commands receive their tokens unbound.
	Opaque bool

	Factory Factory
}

// Base returns the last path segment of the name.
func (d *Descriptor) Base() string {
	if i := strings.LastIndex(d.Name, "/"); i >= 0 {
		return d.Name[i+1:]
	}
	return d.Name
}

// Group returns the path of the group the command lives in, or "".
func (d *Descriptor) Group() string {
	if i := strings.LastIndex(d.Name, "/"); i >= 0 {
		return d.Name[:i]
	}
	return ""
}

// Synopsis renders the one-line usage of the command.
func (d *Descriptor) Synopsis() string {
	if d.Opaque && d.Params == nil {
		return d.Name + " [args...]"
	}
	if d.Params == nil {
		return d.Name
	}
	return d.Params.Synopsis(d.Name)
}

// Renamed returns a copy registered under another name.
func (d *Descriptor) Renamed(name string) *Descriptor {
	c := *d
	c.Name = name
	return &c
}

// Validate reports declaration errors that would make the command unusable.
func (d *Descriptor) Validate() error {
	if d == nil {
		return fmt.Errorf("nil descriptor")
	}
	if d.Name == "" {
		return fmt.Errorf("command without a name")
	}
	if strings.ContainsAny(d.Name, " \t;'\"") {
		return fmt.Errorf("command name %q contains separators", d.Name)
	}
	for _, seg := range strings.Split(d.Name, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("command name %q has an invalid path segment", d.Name)
		}
	}
	if d.Factory == nil {
		return fmt.Errorf("command %q has no action", d.Name)
	}
	return nil
}
