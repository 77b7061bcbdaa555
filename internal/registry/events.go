package registry

import "github.com/footprint-tools/gshell/internal/command"

// EventKind names a registry mutation.
type EventKind int

const (
	CommandRegistered EventKind = iota
	CommandRemoved
	AliasDefined
	AliasRemoved
)

func (k EventKind) String() string {
	switch k {
	case CommandRegistered:
		return "command-registered"
	case CommandRemoved:
		return "command-removed"
	case AliasDefined:
		return "alias-defined"
	case AliasRemoved:
		return "alias-removed"
	default:
		return "unknown"
	}
}

// Event describes one mutation. Descriptor is set for command events,
// Target for alias events.
type Event struct {
	Kind       EventKind
	Name       string
	Descriptor *command.Descriptor
	Target     string
}

// Observer receives registry events. OnEvent runs synchronously while the
// mutation is in progress; it may read the registry but must not mutate it.
type Observer interface {
	OnEvent(Event)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(Event)

// OnEvent calls f(e).
func (f ObserverFunc) OnEvent(e Event) {
	f(e)
}
