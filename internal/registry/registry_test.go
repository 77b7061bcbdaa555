package registry

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/testutil"
)

func nop(name string) *command.Descriptor {
	return &command.Descriptor{
		Name:    name,
		Summary: "does nothing",
		Factory: command.Singleton(command.ActionFunc(func(*command.Context) (any, error) {
			return nil, nil
		})),
	}
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) OnEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind.String() + ":" + e.Name
	}
	return out
}

func TestRegistry_RegisterAndUnregister(t *testing.T) {
	r := New()
	rec := &recorder{}
	r.Attach(rec)

	require.NoError(t, r.Register(nop("echo")))
	require.NoError(t, r.Register(nop("pref/set")))

	d, ok := r.Lookup("pref/set")
	require.True(t, ok)
	require.Equal(t, "set", d.Base())
	require.Equal(t, "pref", d.Group())

	require.NoError(t, r.Unregister("echo"))
	err := r.Unregister("echo")
	require.True(t, errs.Is(err, errs.ErrUnresolved))

	require.Equal(t, []string{
		"command-registered:echo",
		"command-registered:pref/set",
		"command-removed:echo",
	}, rec.kinds())
}

func TestRegistry_RegisterRejectsInvalid(t *testing.T) {
	r := New()

	tests := []struct {
		name string
		desc *command.Descriptor
	}{
		{"nil", nil},
		{"empty name", nop("")},
		{"space in name", nop("a b")},
		{"dot segment", nop("a/../b")},
		{"leading slash", nop("/abs")},
		{"no factory", &command.Descriptor{Name: "x"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, r.Register(tt.desc))
		})
	}
}

func TestRegistry_AttachReplaysOnce(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(nop("b")))
	require.NoError(t, r.Register(nop("a")))
	require.NoError(t, r.DefineAlias("q", "a"))

	rec := &recorder{}
	detach := r.Attach(rec)
	require.Equal(t, []string{
		"command-registered:a",
		"command-registered:b",
		"alias-defined:q",
	}, rec.kinds())

	require.NoError(t, r.Register(nop("c")))
	require.Len(t, rec.kinds(), 4)

	detach()
	require.NoError(t, r.Register(nop("d")))
	require.Len(t, rec.kinds(), 4)
}

func TestRegistry_ObserverMayReadRegistry(t *testing.T) {
	r := New()
	var seen []string
	r.Attach(ObserverFunc(func(e Event) {
		if e.Kind == CommandRegistered {
			_, ok := r.Lookup(e.Name)
			require.True(t, ok)
			seen = append(seen, r.Names()...)
		}
	}))

	require.NoError(t, r.Register(nop("x")))
	require.Equal(t, []string{"x"}, seen)
}

func TestRegistry_Aliases(t *testing.T) {
	r := New()
	rec := &recorder{}
	r.Attach(rec)

	require.NoError(t, r.DefineAlias("ll", "ls -l"))
	target, ok := r.Alias("ll")
	require.True(t, ok)
	require.Equal(t, "ls -l", target)

	require.NoError(t, r.DefineAlias("ll", "ls -la"))
	require.Equal(t, map[string]string{"ll": "ls -la"}, r.Aliases())

	require.NoError(t, r.RemoveAlias("ll"))
	require.True(t, errs.Is(r.RemoveAlias("ll"), errs.ErrUnresolved))

	require.Equal(t, []string{
		"alias-defined:ll",
		"alias-defined:ll",
		"alias-removed:ll",
	}, rec.kinds())
}

func TestRegistry_AliasValidation(t *testing.T) {
	r := New()

	require.True(t, errs.Is(r.DefineAlias("", "x"), errs.ErrMissingArgument))
	require.True(t, errs.Is(r.DefineAlias("a b", "x"), errs.ErrInvalidValue))
	require.True(t, errs.Is(r.DefineAlias("a/b", "x"), errs.ErrInvalidValue))
	require.True(t, errs.Is(r.DefineAlias("x", "   "), errs.ErrMissingArgument))
}

func TestRegistry_AliasCycle(t *testing.T) {
	tests := []struct {
		name    string
		setup   map[string]string
		alias   string
		target  string
		message string
	}{
		{"self", nil, "a", "a", "alias cycle: a -> a"},
		{"self with args", nil, "a", "a --verbose", "alias cycle: a -> a"},
		{"pair", map[string]string{"b": "a"}, "a", "b", "alias cycle: a -> b -> a"},
		{"triple", map[string]string{"b": "c x", "c": "a"}, "a", "b", "alias cycle: a -> b -> c -> a"},
		{"sequenced", map[string]string{"a": "echo tick; b"}, "b", "a", "alias cycle: b -> a -> b"},
		{"later invocation", map[string]string{"b": "echo x; c y", "c": "a"}, "a", "b", "alias cycle: a -> b -> c -> a"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New()
			for name, target := range tt.setup {
				require.NoError(t, r.DefineAlias(name, target))
			}

			err := r.DefineAlias(tt.alias, tt.target)
			require.True(t, errs.Is(err, errs.ErrAliasCycle))
			require.EqualError(t, err, tt.message)

			_, defined := r.Alias(tt.alias)
			require.False(t, defined)
		})
	}
}

func TestRegistry_AliasRepeatedTargetIsNotACycle(t *testing.T) {
	r := New()
	require.NoError(t, r.DefineAlias("y", "echo y"))
	require.NoError(t, r.DefineAlias("x", "y; y; echo done"))
	require.NoError(t, r.DefineAlias("z", "x; y"))

	_, err := r.Resolve("z", "")
	require.NoError(t, err)
}

func TestRegistry_AliasPersistence(t *testing.T) {
	s := testutil.NewTestStore(t)

	first := New(WithAliasStore(s))
	require.NoError(t, first.DefineAlias("ll", "ls -l"))
	require.NoError(t, first.DefineAlias("q", "exit"))
	require.NoError(t, first.RemoveAlias("q"))

	testutil.SeedAliases(t, s, map[string]string{"loop": "loop"})

	second := New(WithAliasStore(s))
	n, err := second.LoadAliases()
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, map[string]string{"ll": "ls -l"}, second.Aliases())
}

func TestRegistry_Resolve(t *testing.T) {
	r := New()
	for _, name := range []string{"echo", "set", "pref/set", "pref/list", "pref/deep/get"} {
		require.NoError(t, r.Register(nop(name)))
	}
	require.NoError(t, r.DefineAlias("ll", "ls -l"))

	tests := []struct {
		name  string
		input string
		group string
		want  string
	}{
		{"root name", "echo", "", "echo"},
		{"qualified", "pref/set", "", "pref/set"},
		{"group relative first", "set", "pref", "pref/set"},
		{"falls back to root", "echo", "pref", "echo"},
		{"absolute ignores group", "/set", "pref", "set"},
		{"dot", "./list", "pref", "pref/list"},
		{"dot dot", "../set", "pref/deep", "pref/set"},
		{"dot dot above root", "../../echo", "pref", "echo"},
		{"group with slashes", "get", "/pref/deep/", "pref/deep/get"},
		{"alias", "ll", "", "ll"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := r.Resolve(tt.input, tt.group)
			require.NoError(t, err)
			require.Equal(t, tt.want, d.Name)
		})
	}
}

func TestRegistry_ResolveAliasDescriptor(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(nop("ls")))
	require.NoError(t, r.Register(nop("list")))
	require.NoError(t, r.DefineAlias("list", "ls -l"))

	// the alias table is consulted before commands
	d, err := r.Resolve("list", "")
	require.NoError(t, err)
	require.True(t, d.Opaque)
	require.Equal(t, command.CategoryAliases, d.Category)
	require.Equal(t, "alias for ls -l", d.Summary)
}

func TestRegistry_ResolveUnknown(t *testing.T) {
	r := New()
	require.NoError(t, r.Register(nop("echo")))
	require.NoError(t, r.Register(nop("exit")))

	_, err := r.Resolve("ecoh", "")
	e, ok := errs.As(err)
	require.True(t, ok)
	require.Equal(t, errs.ErrUnresolved, e.Kind)
	require.Equal(t, "unknown command: ecoh", e.Error())
	require.Contains(t, e.Suggestions, "echo")

	_, err = r.Resolve("", "")
	require.True(t, errs.Is(err, errs.ErrUnresolved))
}

func TestJoinPath(t *testing.T) {
	tests := []struct {
		base, rel string
		want      string
		ok        bool
	}{
		{"", "a", "a", true},
		{"g", "a", "g/a", true},
		{"g", "/a", "a", true},
		{"g/h", "..", "g", true},
		{"g", "..", "", false},
		{"", "/", "", false},
		{"g", "./a//b", "g/a/b", true},
	}
	for _, tt := range tests {
		t.Run(tt.base+"+"+tt.rel, func(t *testing.T) {
			got, ok := JoinPath(tt.base, tt.rel)
			require.Equal(t, tt.ok, ok)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry_Groups(t *testing.T) {
	r := New()
	for _, name := range []string{"echo", "pref/set", "pref/deep/get", "tools/x"} {
		require.NoError(t, r.Register(nop(name)))
	}

	require.Equal(t, []string{"pref", "pref/deep", "tools"}, r.Groups())
	require.True(t, r.HasGroup("/pref/deep"))
	require.True(t, r.HasGroup(""))
	require.False(t, r.HasGroup("missing"))
}
