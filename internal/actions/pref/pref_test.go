package pref

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/errs"
)

type memStore map[string]string

func (m memStore) GetPreference(key string) (string, bool, error) {
	v, ok := m[key]
	return v, ok, nil
}

func (m memStore) PutPreference(key, value string) error {
	m[key] = value
	return nil
}

func (m memStore) DeletePreference(key string) error {
	delete(m, key)
	return nil
}

func (m memStore) ListPreferences() (map[string]string, error) {
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out, nil
}

func (m memStore) deps(printed *string) Deps {
	return Deps{
		Get: func(key string) (string, bool, error) {
			v, ok := m[key]
			return v, ok, nil
		},
		Put: func(key, value string) error {
			m[key] = value
			return nil
		},
		Delete: func(key string) error {
			delete(m, key)
			return nil
		},
		List: func() (map[string]string, error) {
			out := make(map[string]string, len(m))
			for k, v := range m {
				out[k] = v
			}
			return out, nil
		},
		Printf: func(format string, a ...any) (int, error) {
			*printed += fmt.Sprintf(format, a...)
			return 0, nil
		},
	}
}

func bind(t *testing.T, name string, tokens ...string) *cli.Bound {
	t.Helper()
	for _, d := range Commands(memStore{}) {
		if d.Name == name {
			b, err := cli.Bind(d.Params, tokens)
			require.NoError(t, err)
			return b
		}
	}
	t.Fatalf("no command %s", name)
	return nil
}

// =========== GET TESTS ===========

func TestGet_Success(t *testing.T) {
	var printed string
	store := memStore{"history.limit": "50"}

	value, err := get(bind(t, "pref/get", "history.limit"), store.deps(&printed))

	require.NoError(t, err)
	require.Equal(t, "50", value)
	require.Equal(t, "50\n", printed)
}

func TestGet_NotSet(t *testing.T) {
	var printed string

	_, err := get(bind(t, "pref/get", "nope"), memStore{}.deps(&printed))

	require.True(t, errs.Is(err, errs.ErrInvalidValue))
	require.Contains(t, err.Error(), "nope")
}

func TestGet_StoreError(t *testing.T) {
	deps := Deps{
		Get: func(string) (string, bool, error) {
			return "", false, errors.New("db locked")
		},
	}

	_, err := get(bind(t, "pref/get", "k"), deps)
	require.EqualError(t, err, "db locked")
}

// =========== SET TESTS ===========

func TestSet_AddNew(t *testing.T) {
	var printed string
	store := memStore{}

	_, err := set(bind(t, "pref/set", "greeting", "hello", "there"), store.deps(&printed))

	require.NoError(t, err)
	require.Equal(t, "hello there", store["greeting"])
	require.Equal(t, "added greeting=hello there\n", printed)
}

func TestSet_UpdateExisting(t *testing.T) {
	var printed string
	store := memStore{"history.limit": "20"}

	_, err := set(bind(t, "pref/set", "history.limit", "5"), store.deps(&printed))

	require.NoError(t, err)
	require.Equal(t, "5", store["history.limit"])
	require.Equal(t, "updated history.limit=5\n", printed)
}

func TestSet_ValueStartingWithDash(t *testing.T) {
	var printed string
	store := memStore{}

	_, err := set(bind(t, "pref/set", "--", "ls.flags", "-la"), store.deps(&printed))

	require.NoError(t, err)
	require.Equal(t, "-la", store["ls.flags"])
}

// =========== UNSET TESTS ===========

func TestUnset_Existing(t *testing.T) {
	var printed string
	store := memStore{"a": "1", "b": "2"}

	_, err := unset(bind(t, "pref/unset", "a"), store.deps(&printed))

	require.NoError(t, err)
	require.NotContains(t, store, "a")
	require.Contains(t, store, "b")
	require.Equal(t, "unset a\n", printed)
}

func TestUnset_Missing(t *testing.T) {
	var printed string

	_, err := unset(bind(t, "pref/unset", "a"), memStore{}.deps(&printed))
	require.True(t, errs.Is(err, errs.ErrInvalidValue))
}

func TestUnset_All(t *testing.T) {
	var printed string
	store := memStore{"a": "1", "b": "2"}

	n, err := unset(bind(t, "pref/unset", "--all"), store.deps(&printed))

	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Empty(t, store)
	require.Equal(t, "all preferences removed\n", printed)
}

func TestUnset_AllWithKey(t *testing.T) {
	var printed string

	_, err := unset(bind(t, "pref/unset", "--all", "a"), memStore{"a": "1"}.deps(&printed))
	require.True(t, errs.Is(err, errs.ErrExtraArgument))
}

// =========== LIST TESTS ===========

func TestList_Sorted(t *testing.T) {
	var printed string
	store := memStore{"z": "last", "a": "first"}

	n, err := list(nil, store.deps(&printed))

	require.NoError(t, err)
	require.Equal(t, 2, n)
	require.Equal(t, "a=first\nz=last\n", printed)
}
