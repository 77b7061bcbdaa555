package cli

import (
	"fmt"
	"net/url"
	"slices"
)

// Bound provides typed access to the values produced by Bind.
type Bound struct {
	raw    []string
	values map[string]any

	// Help is true when a help flag was given; nothing else is bound then.
	Help bool
}

func newBound(raw []string) *Bound {
	return &Bound{raw: slices.Clone(raw), values: make(map[string]any)}
}

// NewBound creates an empty Bound over raw tokens, for commands that skip binding.
func NewBound(raw []string) *Bound {
	return newBound(raw)
}

func (b *Bound) set(name string, value any) {
	b.values[name] = value
}

// Default stores value under name unless a value is already bound.
func (b *Bound) Default(name string, value any) {
	if _, ok := b.values[name]; !ok {
		b.values[name] = value
	}
}

// Raw returns the tokens the values were bound from.
func (b *Bound) Raw() []string {
	return b.raw
}

// Has returns true if name has a value.
func (b *Bound) Has(name string) bool {
	_, ok := b.values[name]
	return ok
}

// Value returns the raw bound value.
func (b *Bound) Value(name string) (any, bool) {
	v, ok := b.values[name]
	return v, ok
}

// String returns the value of name, or defaultVal if not present.
func (b *Bound) String(name, defaultVal string) string {
	v, ok := b.values[name]
	if !ok {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Int returns the integer value of name, or defaultVal if not present or not an integer.
func (b *Bound) Int(name string, defaultVal int) int {
	if n, ok := b.values[name].(int); ok {
		return n
	}
	return defaultVal
}

// Bool returns true if name was bound to true.
func (b *Bound) Bool(name string) bool {
	v, _ := b.values[name].(bool)
	return v
}

// Strings returns the list bound by a collecting argument.
func (b *Bound) Strings(name string) []string {
	switch v := b.values[name].(type) {
	case []string:
		return v
	case string:
		return []string{v}
	default:
		return nil
	}
}

// URL returns the value bound by the URI handler, or nil.
func (b *Bound) URL(name string) *url.URL {
	u, _ := b.values[name].(*url.URL)
	return u
}
