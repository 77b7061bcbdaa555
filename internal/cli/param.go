package cli

import "strings"

// Kind tells options from positional arguments.
type Kind int

const (
	KindOption Kind = iota
	KindArgument
)

// Parameter describes one option or positional argument of a command.
type Parameter struct {
	Kind Kind

	// Name is the key the bound value is stored under.
	Name string

	// Names holds the flag tokens of an option, e.g. "-n", "--lines".
	Names []string

	// Index is the position of an argument among the positional tokens.
	Index int

	Required    bool
	Handler     Handler
	ValueHint   string
	Description string

	// Preference names a stored preference that supplies the value when
	// the parameter is not given on the command line.
	Preference string
}

// Hint returns the placeholder shown for the parameter's value in usage text.
func (p Parameter) Hint() string {
	if p.ValueHint != "" {
		return p.ValueHint
	}
	if p.Kind == KindArgument {
		return p.Name
	}
	return p.Handler.Name()
}

// ParamBuilder assembles a Parameter.
type ParamBuilder struct {
	p        Parameter
	indexSet bool
}

// Option starts an option declaration. The bind key defaults to the longest
// flag without its dashes.
func Option(names ...string) *ParamBuilder {
	name := ""
	for _, n := range names {
		trimmed := strings.TrimLeft(n, "-")
		if len(trimmed) > len(name) {
			name = trimmed
		}
	}
	return &ParamBuilder{p: Parameter{
		Kind:    KindOption,
		Name:    name,
		Names:   names,
		Handler: Bool,
	}}
}

// Argument starts a positional argument declaration.
func Argument(name string) *ParamBuilder {
	return &ParamBuilder{p: Parameter{
		Kind:    KindArgument,
		Name:    name,
		Handler: String,
	}}
}

// Type sets the value handler.
func (b *ParamBuilder) Type(h Handler) *ParamBuilder {
	b.p.Handler = h
	return b
}

// Required marks the parameter as mandatory.
func (b *ParamBuilder) Required() *ParamBuilder {
	b.p.Required = true
	return b
}

// Describe sets the one-line description shown in usage text.
func (b *ParamBuilder) Describe(s string) *ParamBuilder {
	b.p.Description = s
	return b
}

// Hint sets the value placeholder shown in usage text.
func (b *ParamBuilder) Hint(s string) *ParamBuilder {
	b.p.ValueHint = s
	return b
}

// As overrides the bind key.
func (b *ParamBuilder) As(name string) *ParamBuilder {
	b.p.Name = name
	return b
}

// At pins a positional argument to an explicit index.
func (b *ParamBuilder) At(index int) *ParamBuilder {
	b.p.Index = index
	b.indexSet = true
	return b
}

// Preference names the stored preference used as the default value.
func (b *ParamBuilder) Preference(key string) *ParamBuilder {
	b.p.Preference = key
	return b
}
