package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/config"
	"github.com/footprint-tools/gshell/internal/errs"
)

func bind(t *testing.T, name string, tokens ...string) *cli.Bound {
	t.Helper()
	for _, d := range Commands(config.NewProvider(filepath.Join(t.TempDir(), ".gshrc"))) {
		if d.Name == name {
			b, err := cli.Bind(d.Params, tokens)
			require.NoError(t, err)
			return b
		}
	}
	t.Fatalf("no command %s", name)
	return nil
}

func capture(printed *string) (func(string, ...any) (int, error), func(...any) (int, error)) {
	return func(format string, a ...any) (int, error) {
			*printed += fmt.Sprintf(format, a...)
			return 0, nil
		}, func(a ...any) (int, error) {
			*printed += fmt.Sprintln(a...)
			return 0, nil
		}
}

// =========== GET TESTS ===========

func TestGet_Success(t *testing.T) {
	var printed string
	printf, printLine := capture(&printed)
	deps := Deps{
		Get: func(key string) (string, bool) {
			if key == "theme" {
				return "mono", true
			}
			return "", false
		},
		Printf:  printf,
		Println: printLine,
	}

	value, err := get(bind(t, "config/get", "theme"), deps)
	require.NoError(t, err)
	require.Equal(t, "mono", value)
	require.Equal(t, "mono\n", printed)
}

func TestGet_KeyNotFound(t *testing.T) {
	deps := Deps{Get: func(string) (string, bool) { return "", false }}

	_, err := get(bind(t, "config/get", "theme"), deps)
	require.True(t, errs.Is(err, errs.ErrInvalidValue))
	require.ErrorIs(t, err, errUnknownKey)
}

func TestGet_RejectsUnknownKeyAtBind(t *testing.T) {
	for _, d := range Commands(config.NewProvider(filepath.Join(t.TempDir(), ".gshrc"))) {
		if d.Name == "config/get" {
			_, err := cli.Bind(d.Params, []string{"nonexistent"})
			require.True(t, errs.Is(err, errs.ErrInvalidValue))
			return
		}
	}
	t.Fatal("config/get not found")
}

// =========== SET TESTS ===========

func TestSet_JoinsValue(t *testing.T) {
	var printed, gotKey, gotValue string
	printf, printLine := capture(&printed)
	deps := Deps{
		Set: func(key, value string) error {
			gotKey, gotValue = key, value
			return nil
		},
		Printf:  printf,
		Println: printLine,
	}

	_, err := set(bind(t, "config/set", "prompt", "gsh", ">"), deps)
	require.NoError(t, err)
	require.Equal(t, "prompt", gotKey)
	require.Equal(t, "gsh >", gotValue)
	require.Equal(t, "prompt=gsh >\n", printed)
}

func TestSet_WriteError(t *testing.T) {
	deps := Deps{Set: func(string, string) error { return errors.New("disk full") }}

	_, err := set(bind(t, "config/set", "theme", "mono"), deps)
	require.EqualError(t, err, "disk full")
}

// =========== UNSET TESTS ===========

func TestUnset(t *testing.T) {
	var printed, removed string
	printf, printLine := capture(&printed)
	deps := Deps{
		Unset:   func(key string) error { removed = key; return nil },
		Printf:  printf,
		Println: printLine,
	}

	_, err := unset(bind(t, "config/unset", "theme"), deps)
	require.NoError(t, err)
	require.Equal(t, "theme", removed)
	require.Equal(t, "unset theme\n", printed)

	_, err = unset(bind(t, "config/unset", "bogus"), deps)
	require.True(t, errs.Is(err, errs.ErrInvalidValue))
}

// =========== LIST TESTS ===========

func TestList_HidesEmptyOptionalKeys(t *testing.T) {
	values := map[string]string{
		"theme":       "default",
		"color_error": "",
		"manifest":    "",
	}

	var printed string
	printf, printLine := capture(&printed)
	deps := Deps{
		GetAll:  func() (map[string]string, error) { return values, nil },
		Printf:  printf,
		Println: printLine,
	}

	_, err := list(bind(t, "config/list"), deps)
	require.NoError(t, err)
	require.Contains(t, printed, "theme=default")
	require.NotContains(t, printed, "manifest=")

	printed = ""
	_, err = list(bind(t, "config/list", "--all"), deps)
	require.NoError(t, err)
	require.Contains(t, printed, "manifest=")
}

// =========== FILE ROUND TRIP ===========

func TestCommandsAgainstFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".gshrc")
	provider := config.NewProvider(path)

	var printed string
	printf, printLine := capture(&printed)
	deps := DefaultDeps(provider, nil)
	deps.Printf, deps.Println = printf, printLine

	_, err := set(bind(t, "config/set", "theme", "contrast"), deps)
	require.NoError(t, err)

	value, ok := provider.Get("theme")
	require.True(t, ok)
	require.Equal(t, "contrast", value)

	_, err = unset(bind(t, "config/unset", "theme"), deps)
	require.NoError(t, err)

	value, _ = provider.Get("theme")
	require.Equal(t, "default", value)
}
