package actions

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/dispatchers"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/help"
	"github.com/footprint-tools/gshell/internal/metrics"
	"github.com/footprint-tools/gshell/internal/registry"
	"github.com/footprint-tools/gshell/internal/shell"
	"github.com/footprint-tools/gshell/internal/store"
	"github.com/footprint-tools/gshell/internal/testutil"
	"github.com/footprint-tools/gshell/internal/ui/style"
	"github.com/footprint-tools/gshell/internal/variables"
)

type harness struct {
	t         *testing.T
	reg       *registry.Registry
	registrar *registry.Registrar
	store     *store.Store
	sh        *shell.Shell
	out       *bytes.Buffer
	errOut    *bytes.Buffer
	home      string
	work      string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	style.Init(false, nil)

	st := testutil.NewTestStore(t)
	reg := registry.New(registry.WithAliasStore(st))
	topics, err := help.NewManager()
	require.NoError(t, err)
	m := metrics.New()

	deps := Deps{
		Registry: reg,
		Help:     topics,
		Prefs:    st,
		History:  st,
		Metrics:  m,
		Version:  "1.2.3",
	}
	registrar, err := registry.NewRegistrar(reg, Catalog(deps), "1.2.3", nil)
	require.NoError(t, err)
	report := registrar.Apply(BuiltinSetName, []registry.CommandSet{BuiltinSet(deps)})
	require.Empty(t, report.Failed)

	h := &harness{
		t:         t,
		reg:       reg,
		registrar: registrar,
		store:     st,
		out:       &bytes.Buffer{},
		errOut:    &bytes.Buffer{},
		home:      t.TempDir(),
		work:      t.TempDir(),
	}

	d := dispatchers.New(reg, dispatchers.WithPreferences(st), dispatchers.WithMetrics(m))
	h.sh = shell.New(d,
		shell.WithIO(command.NewIO(strings.NewReader(""), h.out, h.errOut)),
		shell.WithHistory(st),
		shell.WithHome("/opt/gsh"),
		shell.WithVersion("1.2.3"),
		shell.WithUserHome(h.home),
		shell.WithUserDir(h.work),
	)
	require.NoError(t, h.sh.Open(context.Background()))
	return h
}

func (h *harness) run(line string) command.Result {
	h.t.Helper()
	return h.sh.Execute(context.Background(), line)
}

func (h *harness) mustRun(line string) command.Result {
	h.t.Helper()
	r := h.run(line)
	require.True(h.t, r.OK(), "%s: %v", line, r.Err)
	return r
}

func (h *harness) takeOutput() string {
	s := h.out.String()
	h.out.Reset()
	return s
}

func (h *harness) userDir() string {
	return h.sh.Variables().GetString(variables.ShellUserDir, "")
}

func (h *harness) writeFile(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.work, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

// fakeLs records how it was invoked.
func (h *harness) fakeLs() *[]string {
	var calls []string
	require.NoError(h.t, h.reg.Register(&command.Descriptor{
		Name: "ls",
		Params: cli.MustSpec(
			cli.Option("-l"),
			cli.Argument("dir"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			call := "ls"
			if ctx.Args.Bool("l") {
				call += " -l"
			}
			if ctx.Args.Has("dir") {
				call += " " + ctx.Args.String("dir", "")
			}
			calls = append(calls, call)
			return call, nil
		})),
	}))
	return &calls
}

func TestCd_NonexistentFails(t *testing.T) {
	h := newHarness(t)

	r := h.run("cd /nonexistent")

	require.Equal(t, command.StatusFailure, r.Status)
	require.True(t, errs.Is(r.Err, errs.ErrExecution))
	require.Contains(t, r.Err.Error(), "no such directory")
	require.Equal(t, h.work, h.userDir())
}

func TestCd_NoArgumentGoesHome(t *testing.T) {
	h := newHarness(t)

	h.mustRun("cd")

	require.Equal(t, h.home, h.userDir())
}

func TestCd_RelativeAndParent(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.Mkdir(filepath.Join(h.work, "sub"), 0o700))

	h.mustRun("cd sub")
	require.Equal(t, filepath.Join(h.work, "sub"), h.userDir())

	h.mustRun("cd ..")
	require.Equal(t, h.work, h.userDir())

	h.mustRun("pwd")
	require.Equal(t, h.work+"\n", h.takeOutput())
}

func TestCd_TildeExpandsHome(t *testing.T) {
	h := newHarness(t)
	require.NoError(t, os.Mkdir(filepath.Join(h.home, "docs"), 0o700))

	h.mustRun("cd ~/docs")

	require.Equal(t, filepath.Join(h.home, "docs"), h.userDir())
}

func TestCd_FileIsNotADirectory(t *testing.T) {
	h := newHarness(t)
	h.writeFile("notes.txt", "x")

	r := h.run("cd notes.txt")

	require.Equal(t, command.StatusFailure, r.Status)
	require.Contains(t, r.Err.Error(), "not a directory")
}

func TestAlias_ExpandsWithTrailingArguments(t *testing.T) {
	h := newHarness(t)
	calls := h.fakeLs()

	h.mustRun("alias ll 'ls -l'")
	h.mustRun("ll /tmp")
	h.mustRun("ls -l /tmp")

	require.Equal(t, []string{"ls -l /tmp", "ls -l /tmp"}, *calls)

	stored, err := h.store.ListAliases()
	require.NoError(t, err)
	require.Equal(t, "ls -l", stored["ll"])
}

func TestAlias_DefineWithStopOption(t *testing.T) {
	h := newHarness(t)
	calls := h.fakeLs()

	h.mustRun("alias -- la ls -l")
	h.mustRun("la")

	require.Equal(t, []string{"ls -l"}, *calls)
}

func TestAlias_ListAndShow(t *testing.T) {
	h := newHarness(t)
	h.mustRun("alias ll 'ls -l'")
	h.mustRun("alias h history")
	h.takeOutput()

	h.mustRun("alias")
	require.Equal(t, "alias h='history'\nalias ll='ls -l'\n", h.takeOutput())

	h.mustRun("alias ll")
	require.Equal(t, "alias ll='ls -l'\n", h.takeOutput())

	r := h.run("alias nope")
	require.True(t, errs.Is(r.Err, errs.ErrUnresolved))
}

func TestAlias_CycleRejected(t *testing.T) {
	h := newHarness(t)
	h.mustRun("alias a b")

	r := h.run("alias b a")

	require.Equal(t, command.StatusFailure, r.Status)
	require.True(t, errs.Is(r.Err, errs.ErrAliasCycle))
	_, defined := h.reg.Alias("b")
	require.False(t, defined)
}

func TestUnalias(t *testing.T) {
	h := newHarness(t)
	h.mustRun("alias ll 'ls -l'")

	h.mustRun("unalias ll")
	_, defined := h.reg.Alias("ll")
	require.False(t, defined)

	r := h.run("unalias ll")
	require.True(t, errs.Is(r.Err, errs.ErrUnresolved))
}

func TestSet_ValueIsSubstitutedLater(t *testing.T) {
	h := newHarness(t)

	h.mustRun("set greeting hello world")
	h.mustRun(`echo "${greeting}!"`)

	require.Equal(t, "hello world!\n", h.takeOutput())
}

func TestSet_SubstitutionHappensWhenLineIsParsed(t *testing.T) {
	h := newHarness(t)

	h.mustRun("set x 1; set x 2; echo ${x}")
	require.Equal(t, "${x}\n", h.takeOutput())
}

func TestSet_ImmutableVariable(t *testing.T) {
	h := newHarness(t)

	r := h.run("set shell.home /tmp")

	require.True(t, errs.Is(r.Err, errs.ErrImmutable))
	require.Equal(t, "/opt/gsh", h.sh.Variables().GetString(variables.ShellHome, ""))
}

func TestSet_ReservedName(t *testing.T) {
	h := newHarness(t)

	r := h.run("set _ x")
	require.True(t, errs.Is(r.Err, errs.ErrReserved))
}

func TestSet_ListsVariables(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set color blue")
	h.takeOutput()

	h.mustRun("set")

	out := h.takeOutput()
	require.Contains(t, out, "color=blue\n")
	require.Contains(t, out, "shell.home=/opt/gsh (read-only)\n")
}

func TestUnset(t *testing.T) {
	h := newHarness(t)
	h.mustRun("set foo bar")
	require.True(t, h.sh.Variables().Contains("foo"))

	h.mustRun("unset foo")
	require.False(t, h.sh.Variables().Contains("foo"))

	// unsetting something undefined is fine
	h.mustRun("unset foo")

	r := h.run("unset shell.version")
	require.True(t, errs.Is(r.Err, errs.ErrImmutable))
}

func TestEcho(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"echo hello   world", "hello world\n"},
		{"echo -n hi", "hi"},
		{"echo -- -x val", "-x val\n"},
		{`echo 'a  b'`, "a  b\n"},
		{"echo", "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			h := newHarness(t)
			h.mustRun(tt.line)
			require.Equal(t, tt.want, h.takeOutput())
		})
	}
}

func TestEcho_UnknownFlag(t *testing.T) {
	h := newHarness(t)

	r := h.run("echo -x")

	e, ok := errs.As(r.Err)
	require.True(t, ok)
	require.Equal(t, errs.ErrInvalidFlag, e.Kind)
	require.Contains(t, e.Usage, "echo [-n] [--] [args...]")
}

func TestSource_RunsLines(t *testing.T) {
	h := newHarness(t)
	h.writeFile("setup.gsh", "# comment\n\nset x 1\necho ${x}\n")

	h.mustRun("source setup.gsh")

	require.Equal(t, "1\n", h.takeOutput())
	require.Equal(t, "1", h.sh.Variables().GetString("x", ""))
}

func TestSource_FileURL(t *testing.T) {
	h := newHarness(t)
	path := h.writeFile("url.gsh", "echo via url\n")

	h.mustRun("source file://" + path)

	require.Equal(t, "via url\n", h.takeOutput())
}

func TestSource_FailureStopsWithLineNumber(t *testing.T) {
	h := newHarness(t)
	h.writeFile("broken.gsh", "echo ok\nnope\necho never\n")

	r := h.run("source broken.gsh")

	require.Equal(t, command.StatusFailure, r.Status)
	require.Contains(t, r.Err.Error(), "broken.gsh:2")
	require.True(t, errs.Is(r.Err, errs.ErrExecution))
	require.Equal(t, "ok\n", h.takeOutput())
}

func TestSource_ExitPropagates(t *testing.T) {
	h := newHarness(t)
	h.writeFile("quit.gsh", "exit 7\necho never\n")

	r := h.run("source quit.gsh; echo after")

	require.Equal(t, command.StatusExit, r.Status)
	require.Equal(t, 7, r.ExitCode)
	require.Empty(t, h.takeOutput())
}

func TestSource_NestedScriptsRunIndependently(t *testing.T) {
	h := newHarness(t)
	h.writeFile("inner.gsh", "echo inner\n")
	h.writeFile("outer.gsh", "echo before\nsource inner.gsh\necho after\n")

	h.mustRun("source outer.gsh")

	require.Equal(t, "before\ninner\nafter\n", h.takeOutput())

	d, ok := h.reg.Lookup("source")
	require.True(t, ok)
	require.True(t, command.IsPrototype(d.Factory))
}

func TestSource_RejectsOtherSchemes(t *testing.T) {
	h := newHarness(t)

	r := h.run("source https://example.com/setup.gsh")
	require.Equal(t, command.StatusFailure, r.Status)
	require.True(t, errs.Is(r.Err, errs.ErrInvalidValue))
}

func TestSource_MissingFile(t *testing.T) {
	h := newHarness(t)

	r := h.run("source missing.gsh")
	require.Equal(t, command.StatusFailure, r.Status)
}

func TestHistory_ListsAndHonorsPreference(t *testing.T) {
	h := newHarness(t)
	h.mustRun("echo one")
	h.mustRun("echo two")
	h.takeOutput()

	h.mustRun("history")
	out := h.takeOutput()
	require.Contains(t, out, "echo one")
	require.Contains(t, out, "echo two")

	h.mustRun("pref/set history.limit 1")
	h.takeOutput()

	h.mustRun("history")
	lines := strings.Split(strings.TrimSpace(h.takeOutput()), "\n")
	require.Len(t, lines, 1)
	require.Contains(t, lines[0], "pref/set history.limit 1")

	h.mustRun("history -n 2")
	lines = strings.Split(strings.TrimSpace(h.takeOutput()), "\n")
	require.Len(t, lines, 2)
}

func TestHistory_Clear(t *testing.T) {
	h := newHarness(t)
	h.mustRun("echo one")

	h.mustRun("history --clear")

	entries, err := h.store.RecentHistory(0)
	require.NoError(t, err)
	// only the clear itself is recorded afterwards
	require.Len(t, entries, 1)
	require.Equal(t, "history --clear", entries[0].Line)
}

func TestHistory_RecordsFailures(t *testing.T) {
	h := newHarness(t)
	h.run("nope")

	entries, err := h.store.RecentHistory(0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "failure", entries[0].Status)
	require.NotZero(t, entries[0].ExitCode)
	require.Equal(t, h.sh.ID(), entries[0].SessionID)
}

func TestGroup_Navigation(t *testing.T) {
	h := newHarness(t)
	h.mustRun("pref/set color blue")
	h.takeOutput()

	h.mustRun("group pref")
	h.mustRun("group")
	require.Equal(t, "/pref\n", h.takeOutput())

	h.mustRun("list")
	require.Equal(t, "color=blue\n", h.takeOutput())

	h.mustRun("group ..")
	require.Equal(t, "", h.sh.Variables().GetString(variables.ShellGroup, "x"))

	r := h.run("group nowhere")
	require.Equal(t, command.StatusFailure, r.Status)
}

func TestHelp_ListsCommandsAndTopics(t *testing.T) {
	h := newHarness(t)
	h.mustRun("alias ll 'ls -l'")

	h.mustRun("help")

	out := h.takeOutput()
	require.Contains(t, out, "session")
	require.Contains(t, out, "cd")
	require.Contains(t, out, "pref/set")
	require.Contains(t, out, "ll")
	require.Contains(t, out, "conceptual guides")
	require.Contains(t, out, "quoting")
}

func TestHelp_Command(t *testing.T) {
	h := newHarness(t)

	h.mustRun("help cd")

	require.Contains(t, h.takeOutput(), "cd - Change the working directory")
}

func TestHelp_FlagOnCommand(t *testing.T) {
	h := newHarness(t)

	r := h.run("history --help")

	require.Equal(t, command.StatusUsage, r.Status)
	require.Contains(t, h.takeOutput(), "(preference history.limit)")
}

func TestHelp_Topic(t *testing.T) {
	h := newHarness(t)

	h.mustRun("help quoting")

	require.Contains(t, h.takeOutput(), "Quoting and substitution")
}

func TestHelp_UnknownSuggests(t *testing.T) {
	h := newHarness(t)

	r := h.run("help cdd")

	e, ok := errs.As(r.Err)
	require.True(t, ok)
	require.Equal(t, errs.ErrUnresolved, e.Kind)
	require.Contains(t, e.Suggestions, "cd")
}

func TestVersion(t *testing.T) {
	h := newHarness(t)

	r := h.mustRun("version")

	require.Equal(t, "1.2.3", r.Value)
	require.Equal(t, "gsh version 1.2.3\n", h.takeOutput())
}

func TestExit(t *testing.T) {
	h := newHarness(t)

	r := h.run("exit 3")
	require.Equal(t, command.StatusExit, r.Status)
	require.Equal(t, 3, r.ExitCode)

	r = h.run("exit")
	require.Equal(t, 0, r.ExitCode)

	r = h.run("exit soon")
	require.True(t, errs.Is(r.Err, errs.ErrInvalidValue))
}

func TestScriptAction_FromCommandSet(t *testing.T) {
	h := newHarness(t)

	report := h.registrar.Apply("manifest:test", []registry.CommandSet{{
		Name: "custom",
		Rank: 10,
		Commands: []registry.Entry{
			{Name: "hi", Action: ScriptAction, Line: "echo hi"},
			{Name: "bye", Action: ScriptAction},
		},
	}})

	require.Equal(t, []string{"hi"}, report.Registered)
	require.Contains(t, report.Failed, "bye")

	h.mustRun("hi there")
	require.Equal(t, "hi there\n", h.takeOutput())
}

func TestColumn(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"echo", "echo    "},
		{"héllo", "héllo   "},
		{"ñññññññññññ", "ñññññññ…"},
		{"数据数据数据", "数据数… "},
		{"tools/very-long-name", "tools/v…"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := column(tt.in, 8)
			require.Equal(t, tt.want, got)
			require.True(t, utf8.ValidString(got))
		})
	}
}

func TestStats(t *testing.T) {
	h := newHarness(t)
	h.mustRun("echo a")
	h.run("exit 1")
	h.takeOutput()

	h.mustRun("stats")

	out := h.takeOutput()
	require.Contains(t, out, "COMMAND")
	require.Contains(t, out, "echo")
	require.Contains(t, out, "exit")
}
