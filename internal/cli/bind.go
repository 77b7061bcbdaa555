package cli

import (
	"slices"
	"strings"

	"github.com/footprint-tools/gshell/internal/errs"
)

// Bind matches tokens against spec. It has no side effects: the same spec
// and tokens always produce the same result.
//
// A nil spec accepts no options or arguments. A help flag returns a Bound
// with Help set, regardless of anything missing.
func Bind(spec *Spec, tokens []string) (*Bound, error) {
	if spec == nil {
		spec = &Spec{byFlag: map[string]int{}, help: true}
	}

	b := newBound(tokens)
	var positionals []string
	stopped := false

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		if stopped || !strings.HasPrefix(tok, "-") {
			positionals = append(positionals, tok)
			continue
		}

		flag, inline, hasInline := strings.Cut(tok, "=")
		idx, declared := spec.byFlag[flag]

		if !declared {
			if !looksLikeFlag(tok) {
				positionals = append(positionals, tok)
				continue
			}
			if spec.help && slices.Contains(helpFlags, flag) {
				b.Help = true
				return b, nil
			}
			return nil, errs.InvalidFlag(flag, Similar(flag, spec.Flags(), 3)...)
		}
		opt := spec.options[idx]

		switch {
		case isStop(opt.Handler):
			if hasInline {
				return nil, errs.InvalidValue(opt.Name, inline, nil)
			}
			b.set(opt.Name, true)
			stopped = true

		case !opt.Handler.TakesValue():
			value := any(true)
			if hasInline {
				v, err := opt.Handler.Convert(inline)
				if err != nil {
					return nil, errs.InvalidValue(opt.Name, inline, err)
				}
				value = v
			}
			b.set(opt.Name, value)

		default:
			raw := inline
			if !hasInline {
				if i+1 >= len(tokens) {
					return nil, errs.MissingArgument(opt.Name)
				}
				i++
				raw = tokens[i]
			}
			v, err := opt.Handler.Convert(raw)
			if err != nil {
				return nil, errs.InvalidValue(opt.Name, raw, err)
			}
			b.set(opt.Name, v)
		}
	}

	if err := bindArguments(spec, b, positionals); err != nil {
		return nil, err
	}

	for _, o := range spec.options {
		if o.Required && !b.Has(o.Name) {
			return nil, errs.MissingArgument(o.Names[0])
		}
	}

	return b, nil
}

func bindArguments(spec *Spec, b *Bound, positionals []string) error {
	pos := 0
	for _, a := range spec.arguments {
		if c, ok := a.Handler.(Collector); ok {
			rest := positionals[pos:]
			pos = len(positionals)
			if len(rest) == 0 {
				if a.Required {
					return errs.MissingArgument(a.Name)
				}
				continue
			}
			v, err := c.Collect(rest)
			if err != nil {
				return errs.InvalidValue(a.Name, strings.Join(rest, " "), err)
			}
			b.set(a.Name, v)
			continue
		}

		if pos >= len(positionals) {
			if a.Required {
				return errs.MissingArgument(a.Name)
			}
			continue
		}

		raw := positionals[pos]
		pos++
		v, err := a.Handler.Convert(raw)
		if err != nil {
			return errs.InvalidValue(a.Name, raw, err)
		}
		b.set(a.Name, v)
	}

	if pos < len(positionals) {
		return errs.ExtraArgument(positionals[pos])
	}
	return nil
}

// looksLikeFlag treats "-" and negative numbers as positional values.
func looksLikeFlag(tok string) bool {
	if len(tok) < 2 || tok[0] != '-' {
		return false
	}
	c := tok[1]
	return !(c >= '0' && c <= '9')
}
