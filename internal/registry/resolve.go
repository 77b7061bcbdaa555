package registry

import (
	"sort"
	"strings"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/errs"
)

const maxSuggestions = 3

// Resolve finds what name refers to when the current group is group.
//
// An alias with exactly that name wins. Otherwise "/a/b" is looked up from
// the root, and any other name is tried relative to group first and then
// relative to the root. "." and ".." segments move within the group tree.
func (r *Registry) Resolve(name, group string) (*command.Descriptor, error) {
	if name == "" {
		return nil, errs.Unresolved(name)
	}

	r.mu.RLock()
	target, isAlias := r.aliases[name]
	var cycleErr error
	if isAlias {
		cycleErr = aliasCycle(r.aliases, name)
	}
	r.mu.RUnlock()

	if isAlias {
		if cycleErr != nil {
			return nil, cycleErr
		}
		return aliasDescriptor(name, target), nil
	}

	for _, candidate := range r.candidates(name, group) {
		if d, ok := r.Lookup(candidate); ok {
			return d, nil
		}
	}

	return nil, errs.Unresolved(name, r.suggest(name, group)...)
}

func (r *Registry) candidates(name, group string) []string {
	if strings.HasPrefix(name, "/") {
		if p, ok := JoinPath("", name); ok {
			return []string{p}
		}
		return nil
	}

	var out []string
	if g := strings.Trim(group, "/"); g != "" {
		if p, ok := JoinPath(g, name); ok {
			out = append(out, p)
		}
	}
	if p, ok := JoinPath("", name); ok && (len(out) == 0 || out[0] != p) {
		out = append(out, p)
	}
	return out
}

func (r *Registry) suggest(name, group string) []string {
	names := r.Names()
	if g := strings.Trim(group, "/"); g != "" {
		prefix := g + "/"
		for _, n := range names {
			if strings.HasPrefix(n, prefix) {
				names = append(names, strings.TrimPrefix(n, prefix))
			}
		}
	}
	return cli.Similar(strings.TrimPrefix(name, "/"), dedupe(names), maxSuggestions)
}

// JoinPath applies rel to the group path base. A leading "/" in rel starts
// from the root; "." is skipped and ".." moves up, stopping at the root.
// The result has no leading or trailing slash. ok is false when the path
// names nothing.
func JoinPath(base, rel string) (string, bool) {
	var segs []string
	if !strings.HasPrefix(rel, "/") {
		for _, s := range strings.Split(base, "/") {
			if s != "" {
				segs = append(segs, s)
			}
		}
	}
	for _, s := range strings.Split(rel, "/") {
		switch s {
		case "", ".":
		case "..":
			if len(segs) > 0 {
				segs = segs[:len(segs)-1]
			}
		default:
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return "", false
	}
	return strings.Join(segs, "/"), true
}

// Groups returns every group path that contains at least one command.
func (r *Registry) Groups() []string {
	seen := make(map[string]bool)
	for _, d := range r.Commands() {
		g := d.Group()
		for g != "" {
			seen[g] = true
			i := strings.LastIndex(g, "/")
			if i < 0 {
				break
			}
			g = g[:i]
		}
	}
	out := make([]string, 0, len(seen))
	for g := range seen {
		out = append(out, g)
	}
	sort.Strings(out)
	return out
}

// HasGroup reports whether group contains any command. The root always exists.
func (r *Registry) HasGroup(group string) bool {
	group = strings.Trim(group, "/")
	if group == "" {
		return true
	}
	for _, g := range r.Groups() {
		if g == group {
			return true
		}
	}
	return false
}

func dedupe(in []string) []string {
	seen := make(map[string]bool, len(in))
	out := in[:0]
	for _, s := range in {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}
