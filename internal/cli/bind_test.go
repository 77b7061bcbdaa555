package cli

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/gshell/internal/errs"
)

func lsSpec() *Spec {
	return MustSpec(
		Option("-l", "--long").Describe("long listing"),
		Option("-n", "--lines").Type(Int),
		Option("--sort").Type(Enum("name", "size")),
		Argument("path").Type(File),
	)
}

func TestBind(t *testing.T) {
	b, err := Bind(lsSpec(), []string{"-l", "/tmp/../tmp"})
	require.NoError(t, err)
	require.True(t, b.Bool("long"))
	require.Equal(t, "/tmp", b.String("path", ""))
	require.False(t, b.Has("lines"))
	require.Equal(t, []string{"-l", "/tmp/../tmp"}, b.Raw())
}

func TestBind_OptionValues(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		lines  int
	}{
		{"separate value", []string{"-n", "5"}, 5},
		{"inline value", []string{"--lines=7"}, 7},
		{"last wins", []string{"-n", "1", "-n", "2"}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Bind(lsSpec(), tt.tokens)
			require.NoError(t, err)
			require.Equal(t, tt.lines, b.Int("lines", 0))
		})
	}
}

func TestBind_Errors(t *testing.T) {
	tests := []struct {
		name   string
		tokens []string
		kind   errs.Kind
		param  string
	}{
		{"bad int", []string{"-n", "abc"}, errs.ErrInvalidValue, "lines"},
		{"missing option value", []string{"-n"}, errs.ErrMissingArgument, "lines"},
		{"bad enum", []string{"--sort", "date"}, errs.ErrInvalidValue, "sort"},
		{"unknown flag", []string{"--bogus"}, errs.ErrInvalidFlag, "--bogus"},
		{"extra positional", []string{"a", "b"}, errs.ErrExtraArgument, "b"},
		{"bool with bad inline", []string{"--long=maybe"}, errs.ErrInvalidValue, "long"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Bind(lsSpec(), tt.tokens)
			require.Error(t, err)
			e, ok := errs.As(err)
			require.True(t, ok)
			require.Equal(t, tt.kind, e.Kind)
			require.Equal(t, tt.param, e.Param)
			require.Equal(t, errs.ClassUsage, e.Class())
		})
	}
}

func TestBind_UnknownFlagSuggests(t *testing.T) {
	_, err := Bind(lsSpec(), []string{"--lnog"})
	e, ok := errs.As(err)
	require.True(t, ok)
	require.Contains(t, e.Suggestions, "--long")
}

func TestBind_MissingRequired(t *testing.T) {
	spec := MustSpec(Argument("path").Type(File).Required())

	_, err := Bind(spec, nil)
	require.True(t, errs.Is(err, errs.ErrMissingArgument))

	e, _ := errs.As(err)
	require.Equal(t, "path", e.Param)
}

func TestBind_RequiredOption(t *testing.T) {
	spec := MustSpec(Option("--name").Type(String).Required())

	_, err := Bind(spec, nil)
	require.True(t, errs.Is(err, errs.ErrMissingArgument))

	b, err := Bind(spec, []string{"--name", "x"})
	require.NoError(t, err)
	require.Equal(t, "x", b.String("name", ""))
}

func TestBind_HelpShortCircuits(t *testing.T) {
	spec := MustSpec(Argument("path").Type(File).Required())

	b, err := Bind(spec, []string{"--help"})
	require.NoError(t, err)
	require.True(t, b.Help)

	b, err = Bind(spec, []string{"-h", "--bogus"})
	require.NoError(t, err)
	require.True(t, b.Help)
}

func TestBind_StopProcessing(t *testing.T) {
	spec := MustSpec(
		Option("-n").As("newline"),
		Option("--").Type(Stop).As("stop"),
		Argument("words").Type(Rest),
	)

	b, err := Bind(spec, []string{"--", "-n", "--help", "x"})
	require.NoError(t, err)
	require.False(t, b.Help)
	require.False(t, b.Has("newline"))
	require.True(t, b.Bool("stop"))
	require.Equal(t, []string{"-n", "--help", "x"}, b.Strings("words"))

	// Order matters: flags before the stop token are still options.
	b, err = Bind(spec, []string{"-n", "--", "-n"})
	require.NoError(t, err)
	require.True(t, b.Bool("newline"))
	require.Equal(t, []string{"-n"}, b.Strings("words"))
}

func TestBind_RestRequired(t *testing.T) {
	spec := MustSpec(Argument("name").Required(), Argument("target").Type(Rest).Required())

	_, err := Bind(spec, []string{"ll"})
	require.True(t, errs.Is(err, errs.ErrMissingArgument))

	b, err := Bind(spec, []string{"ll", "ls", "-l"})
	require.Error(t, err, "-l is an unknown flag before any stop option")

	b, err = Bind(spec, []string{"ll", "ls", "x"})
	require.NoError(t, err)
	require.Equal(t, "ll", b.String("name", ""))
	require.Equal(t, []string{"ls", "x"}, b.Strings("target"))
}

func TestBind_NegativeNumberIsPositional(t *testing.T) {
	spec := MustSpec(Argument("n").Type(Int))

	b, err := Bind(spec, []string{"-5"})
	require.NoError(t, err)
	require.Equal(t, -5, b.Int("n", 0))
}

func TestBind_DeclaredNumericFlag(t *testing.T) {
	spec := MustSpec(Option("-1").Type(URI).As("uri"))

	for _, tokens := range [][]string{{"-1", "foo:bar"}, {"-1=foo:bar"}} {
		b, err := Bind(spec, tokens)
		require.NoError(t, err)
		u := b.URL("uri")
		require.NotNil(t, u)
		require.Equal(t, "foo", u.Scheme)
		require.Equal(t, "bar", u.Opaque)
	}

	_, err := Bind(spec, []string{"-1", "no-scheme"})
	require.True(t, errs.Is(err, errs.ErrInvalidValue))
}

func TestBind_NilSpec(t *testing.T) {
	b, err := Bind(nil, nil)
	require.NoError(t, err)
	require.False(t, b.Help)

	_, err = Bind(nil, []string{"x"})
	require.True(t, errs.Is(err, errs.ErrExtraArgument))

	b, err = Bind(nil, []string{"--help"})
	require.NoError(t, err)
	require.True(t, b.Help)
}

func TestBind_Pure(t *testing.T) {
	spec := lsSpec()
	tokens := []string{"-l", "-n", "3", "dir"}

	first, err := Bind(spec, tokens)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Bind(spec, tokens)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	require.Equal(t, []string{"-l", "-n", "3", "dir"}, tokens)
}

func TestBound_Default(t *testing.T) {
	b := NewBound(nil)
	b.Default("color", "auto")
	require.Equal(t, "auto", b.String("color", ""))

	b.Default("color", "never")
	require.Equal(t, "auto", b.String("color", ""))
}

func TestBind_Location(t *testing.T) {
	spec := MustSpec(Argument("file").Type(Location).Required())

	b, err := Bind(spec, []string{"dir/../setup.gsh"})
	require.NoError(t, err)
	require.Equal(t, "setup.gsh", b.String("file", ""))
	require.Nil(t, b.URL("file"))

	b, err = Bind(spec, []string{"file:///tmp/setup.gsh"})
	require.NoError(t, err)
	u := b.URL("file")
	require.NotNil(t, u)
	require.Equal(t, "file", u.Scheme)
	require.Equal(t, "/tmp/setup.gsh", u.Path)

	_, err = Bind(spec, []string{"://nothing"})
	require.True(t, errs.Is(err, errs.ErrInvalidValue))
}
