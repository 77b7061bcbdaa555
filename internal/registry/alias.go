package registry

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/parser"
)

// DefineAlias maps name to a target command line. Redefining an alias
// replaces it. A definition that would make name reach itself through
// other aliases fails with an alias-cycle error.
func (r *Registry) DefineAlias(name, target string) error {
	if err := validateAliasName(name); err != nil {
		return err
	}
	target = strings.TrimSpace(target)
	if target == "" {
		return errs.MissingArgument("target")
	}

	r.pub.Lock()
	defer r.pub.Unlock()

	if err := r.checkDefinition(name, target); err != nil {
		return err
	}

	if r.store != nil {
		if err := r.store.PutAlias(name, target); err != nil {
			return fmt.Errorf("save alias %s: %w", name, err)
		}
	}

	r.mu.Lock()
	r.aliases[name] = target
	r.mu.Unlock()

	r.logger.Debug("registry: alias %s -> %s", name, target)
	r.publish(Event{Kind: AliasDefined, Name: name, Target: target})
	return nil
}

// RemoveAlias deletes an alias.
func (r *Registry) RemoveAlias(name string) error {
	r.pub.Lock()
	defer r.pub.Unlock()

	r.mu.RLock()
	_, ok := r.aliases[name]
	r.mu.RUnlock()
	if !ok {
		return errs.Unresolved(name)
	}

	if r.store != nil {
		if err := r.store.DeleteAlias(name); err != nil {
			return fmt.Errorf("delete alias %s: %w", name, err)
		}
	}

	r.mu.Lock()
	delete(r.aliases, name)
	r.mu.Unlock()

	r.logger.Debug("registry: removed alias %s", name)
	r.publish(Event{Kind: AliasRemoved, Name: name})
	return nil
}

// Alias returns the target of an alias.
func (r *Registry) Alias(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	target, ok := r.aliases[name]
	return target, ok
}

// Aliases returns a copy of the alias table.
func (r *Registry) Aliases() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]string, len(r.aliases))
	for k, v := range r.aliases {
		out[k] = v
	}
	return out
}

// LoadAliases defines every alias kept in the alias store. Entries that are
// invalid or would form a cycle are logged and skipped.
func (r *Registry) LoadAliases() (int, error) {
	if r.store == nil {
		return 0, nil
	}
	stored, err := r.store.ListAliases()
	if err != nil {
		return 0, fmt.Errorf("load aliases: %w", err)
	}

	r.pub.Lock()
	defer r.pub.Unlock()

	loaded := 0
	for _, name := range sortedKeys(stored) {
		target := stored[name]
		if err := validateAliasName(name); err != nil {
			r.logger.Warn("registry: skipping stored alias %q: %v", name, err)
			continue
		}
		if err := r.checkDefinition(name, target); err != nil {
			r.logger.Warn("registry: skipping stored alias %q: %v", name, err)
			continue
		}
		r.mu.Lock()
		r.aliases[name] = target
		r.mu.Unlock()
		r.publish(Event{Kind: AliasDefined, Name: name, Target: target})
		loaded++
	}
	return loaded, nil
}

// checkDefinition reports the cycle name -> target would create.
func (r *Registry) checkDefinition(name, target string) error {
	r.mu.RLock()
	table := make(map[string]string, len(r.aliases)+1)
	for k, v := range r.aliases {
		table[k] = v
	}
	r.mu.RUnlock()

	table[name] = target
	return aliasCycle(table, name)
}

// aliasCycle walks every invocation of each alias target reachable from
// name and reports the first alias that leads back onto the current path.
func aliasCycle(table map[string]string, name string) error {
	var chain []string
	onPath := make(map[string]bool)
	done := make(map[string]bool)

	var visit func(alias string) error
	visit = func(alias string) error {
		chain = append(chain, alias)
		if onPath[alias] {
			return errs.AliasCycle(chain)
		}
		if done[alias] {
			chain = chain[:len(chain)-1]
			return nil
		}
		onPath[alias] = true
		for _, next := range invoked(table[alias]) {
			if _, isAlias := table[next]; !isAlias {
				continue
			}
			if err := visit(next); err != nil {
				return err
			}
		}
		onPath[alias] = false
		done[alias] = true
		chain = chain[:len(chain)-1]
		return nil
	}
	return visit(name)
}

// invoked returns the command name of every invocation in line.
func invoked(line string) []string {
	cl, err := parser.Parse(line, nil)
	if err != nil {
		return []string{firstWord(line)}
	}
	names := make([]string, 0, len(cl.Commands))
	for _, c := range cl.Commands {
		names = append(names, c.Name())
	}
	return names
}

func firstWord(line string) string {
	words := strings.Fields(line)
	if len(words) == 0 {
		return ""
	}
	return words[0]
}

func validateAliasName(name string) error {
	if name == "" {
		return errs.MissingArgument("name")
	}
	if strings.ContainsAny(name, " \t\n;'\"$#/\\") || name == "." || name == ".." {
		return errs.InvalidValue("name", name, fmt.Errorf("alias names cannot contain spaces, quotes, '/', '$', '#' or ';'"))
	}
	return nil
}

// aliasAction re-executes the target with the invocation's arguments
// appended, joined by single spaces.
type aliasAction struct {
	target string
}

func (a aliasAction) Execute(ctx *command.Context) (any, error) {
	line := a.target
	if raw := ctx.Raw(); len(raw) > 0 {
		line += " " + strings.Join(raw, " ")
	}
	ctx.Logger.Debug("alias %s expands to %q", ctx.Name, line)
	return command.Propagate(ctx.Execute(line))
}

func aliasDescriptor(name, target string) *command.Descriptor {
	return &command.Descriptor{
		Name:     name,
		Summary:  "alias for " + target,
		Category: command.CategoryAliases,
		Opaque:   true,
		Factory:  command.Singleton(aliasAction{target: target}),
	}
}
