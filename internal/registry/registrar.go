package registry

import (
	"fmt"
	"sync"

	"github.com/Masterminds/semver/v3"

	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/log"
)

// Report summarizes one Apply call.
type Report struct {
	Registered []string
	Removed    []string
	Skipped    []string
	// Shadowed lists names the source provides that a higher ranked set
	// of another source still overrides.
	Shadowed []string
	Failed   map[string]error
}

// candidate is one enabled entry a source offers for a name.
type candidate struct {
	desc  *command.Descriptor
	rank  int
	order int // source order
	set   int
	entry int
}

// outranks reports whether c takes precedence over o: higher rank first,
// then the later source, then the later set and entry.
func (c candidate) outranks(o candidate) bool {
	if c.rank != o.rank {
		return c.rank > o.rank
	}
	if c.order != o.order {
		return c.order > o.order
	}
	if c.set != o.set {
		return c.set > o.set
	}
	return c.entry > o.entry
}

type source struct {
	order  int
	names  []string
	offers map[string]candidate
}

// Registrar registers command sets into a Registry. It keeps what every
// source offers so that each name is held by the highest ranked offer
// across all sources, and a source can be re-applied as a diff.
type Registrar struct {
	registry *Registry
	catalog  *Catalog
	version  *semver.Version
	logger   domain.Logger

	mu      sync.Mutex
	sources map[string]*source
}

// NewRegistrar creates a registrar for a shell at version.
func NewRegistrar(reg *Registry, catalog *Catalog, version string, logger domain.Logger) (*Registrar, error) {
	v, err := semver.NewVersion(version)
	if err != nil {
		return nil, fmt.Errorf("invalid shell version %q: %w", version, err)
	}
	if logger == nil {
		logger = log.NopLogger{}
	}
	return &Registrar{
		registry: reg,
		catalog:  catalog,
		version:  v,
		logger:   logger,
		sources:  make(map[string]*source),
	}, nil
}

// Apply replaces what source offers with sets and updates the registry.
// Each name is held by its highest ranked offer over all sources; equal
// ranks go to the source applied first later, then to the later set and
// entry. Disabled sets and entries are skipped, as are sets whose requires
// constraint excludes the shell version. A failing entry is logged and the
// rest of the batch continues. A name no source offers any more is
// unregistered; one another source still offers falls back to that offer.
func (r *Registrar) Apply(name string, sets []CommandSet) Report {
	r.mu.Lock()
	defer r.mu.Unlock()

	report := Report{Failed: make(map[string]error)}

	src, ok := r.sources[name]
	if !ok {
		src = &source{order: len(r.sources)}
		r.sources[name] = src
	}
	previous := src.names
	src.names = nil
	src.offers = make(map[string]candidate)

	for si, set := range sets {
		if !set.IsEnabled() {
			r.logger.Debug("registrar: set %s disabled", set.Name)
			report.Skipped = append(report.Skipped, set.Name)
			continue
		}
		if ok, err := r.compatible(set); !ok {
			if err != nil {
				r.logger.Warn("registrar: set %s: %v", set.Name, err)
			} else {
				r.logger.Info("registrar: set %s requires %s, shell is %s", set.Name, set.Requires, r.version)
			}
			report.Skipped = append(report.Skipped, set.Name)
			continue
		}

		for ei, e := range set.Commands {
			if !e.IsEnabled() {
				report.Skipped = append(report.Skipped, e.Name)
				continue
			}
			desc, err := r.catalog.Build(e)
			if err == nil {
				err = check(desc)
			}
			if err != nil {
				r.logger.Error("registrar: set %s: command %s: %v", set.Name, e.Name, err)
				report.Failed[e.Name] = err
				continue
			}

			c := candidate{desc: desc, rank: set.Rank, order: src.order, set: si, entry: ei}
			held, dup := src.offers[e.Name]
			if !dup {
				src.names = append(src.names, e.Name)
			}
			if !dup || c.outranks(held) {
				src.offers[e.Name] = c
			}
		}
	}

	for _, n := range src.names {
		winner, _ := r.winner(n)
		if winner.order != src.order {
			report.Shadowed = append(report.Shadowed, n)
			r.logger.Debug("registrar: %s: %s is overridden by a higher ranked set", name, n)
			continue
		}
		if err := r.registry.Register(winner.desc); err != nil {
			r.logger.Error("registrar: register %s: %v", n, err)
			report.Failed[n] = err
			continue
		}
		report.Registered = append(report.Registered, n)
	}

	for _, n := range previous {
		if _, still := src.offers[n]; still {
			continue
		}
		if winner, ok := r.winner(n); ok {
			if err := r.registry.Register(winner.desc); err != nil {
				r.logger.Error("registrar: restore %s: %v", n, err)
			}
			continue
		}
		if err := r.registry.Unregister(n); err != nil {
			r.logger.Warn("registrar: remove %s: %v", n, err)
			continue
		}
		report.Removed = append(report.Removed, n)
	}

	r.logger.Info("registrar: %s: %d registered, %d removed, %d shadowed, %d skipped, %d failed",
		name, len(report.Registered), len(report.Removed), len(report.Shadowed), len(report.Skipped), len(report.Failed))
	return report
}

// Sources returns the names each source currently offers, whether or not
// its offer holds the name.
func (r *Registrar) Sources() map[string][]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[string][]string, len(r.sources))
	for k, src := range r.sources {
		out[k] = append([]string(nil), src.names...)
	}
	return out
}

// winner must be called with mu held.
func (r *Registrar) winner(name string) (candidate, bool) {
	var best candidate
	found := false
	for _, src := range r.sources {
		c, ok := src.offers[name]
		if ok && (!found || c.outranks(best)) {
			best, found = c, true
		}
	}
	return best, found
}

func (r *Registrar) compatible(set CommandSet) (bool, error) {
	if set.Requires == "" {
		return true, nil
	}
	c, err := semver.NewConstraint(set.Requires)
	if err != nil {
		return false, fmt.Errorf("invalid requires constraint %q: %w", set.Requires, err)
	}
	return c.Check(r.version), nil
}
