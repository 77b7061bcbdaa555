package cli

import (
	"fmt"
	"slices"
	"sort"
	"strings"
)

var helpFlags = []string{"-h", "--help"}

// Spec is the validated parameter table of a command.
type Spec struct {
	options   []Parameter
	arguments []Parameter
	byFlag    map[string]int
	help      bool
}

// NewSpec validates the declared parameters.
func NewSpec(params ...*ParamBuilder) (*Spec, error) {
	s := &Spec{byFlag: make(map[string]int)}
	names := make(map[string]bool)
	stops := 0
	next := 0

	for _, b := range params {
		p := b.p
		if p.Name == "" {
			return nil, fmt.Errorf("parameter without a name")
		}
		if names[p.Name] {
			return nil, fmt.Errorf("duplicate parameter %q", p.Name)
		}
		names[p.Name] = true

		if p.Handler == nil {
			return nil, fmt.Errorf("parameter %q has no handler", p.Name)
		}

		switch p.Kind {
		case KindOption:
			if len(p.Names) == 0 {
				return nil, fmt.Errorf("option %q has no flags", p.Name)
			}
			for _, flag := range p.Names {
				if !strings.HasPrefix(flag, "-") || flag == "-" {
					return nil, fmt.Errorf("option %q: flag %q must start with '-'", p.Name, flag)
				}
				if _, dup := s.byFlag[flag]; dup {
					return nil, fmt.Errorf("flag %q declared twice", flag)
				}
				s.byFlag[flag] = len(s.options)
			}
			if isStop(p.Handler) {
				stops++
			}
			s.options = append(s.options, p)

		case KindArgument:
			if !b.indexSet {
				p.Index = next
			}
			next++
			if isStop(p.Handler) {
				return nil, fmt.Errorf("argument %q cannot stop processing", p.Name)
			}
			s.arguments = append(s.arguments, p)
		}
	}

	if stops > 1 {
		return nil, fmt.Errorf("at most one stop-processing option is allowed")
	}

	sort.SliceStable(s.arguments, func(i, j int) bool {
		return s.arguments[i].Index < s.arguments[j].Index
	})
	for i, a := range s.arguments {
		if a.Index != i {
			return nil, fmt.Errorf("argument indices must be unique and contiguous from 0, got %d at position %d", a.Index, i)
		}
		if _, ok := a.Handler.(Collector); ok && i != len(s.arguments)-1 {
			return nil, fmt.Errorf("argument %q collects remaining tokens and must be last", a.Name)
		}
	}

	s.help = true
	for _, flag := range helpFlags {
		if _, ok := s.byFlag[flag]; ok {
			s.help = false
		}
	}

	return s, nil
}

// MustSpec is NewSpec for static tables; it panics on an invalid declaration.
func MustSpec(params ...*ParamBuilder) *Spec {
	s, err := NewSpec(params...)
	if err != nil {
		panic(err)
	}
	return s
}

// Options returns the declared options in declaration order.
func (s *Spec) Options() []Parameter {
	if s == nil {
		return nil
	}
	return slices.Clone(s.options)
}

// Arguments returns the declared arguments by index.
func (s *Spec) Arguments() []Parameter {
	if s == nil {
		return nil
	}
	return slices.Clone(s.arguments)
}

// Flags returns every declared flag token, sorted.
func (s *Spec) Flags() []string {
	if s == nil {
		return helpFlags
	}
	out := make([]string, 0, len(s.byFlag)+len(helpFlags))
	for flag := range s.byFlag {
		out = append(out, flag)
	}
	if s.help {
		out = append(out, helpFlags...)
	}
	sort.Strings(out)
	return out
}

// Synopsis renders the one-line usage of a command named name.
func (s *Spec) Synopsis(name string) string {
	parts := []string{name}
	for _, o := range s.Options() {
		flag := o.Names[0]
		if o.Handler.TakesValue() {
			flag += " " + o.Hint()
		}
		if o.Required {
			parts = append(parts, flag)
		} else {
			parts = append(parts, "["+flag+"]")
		}
	}
	for _, a := range s.Arguments() {
		hint := a.Hint()
		if _, ok := a.Handler.(Collector); ok {
			hint += "..."
		}
		if a.Required {
			parts = append(parts, "<"+hint+">")
		} else {
			parts = append(parts, "["+hint+"]")
		}
	}
	return strings.Join(parts, " ")
}
