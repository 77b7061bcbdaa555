package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	path := tempConfig(t, "theme=mono\ncustom=x\n")

	v, ok := Get(path, "theme")
	require.True(t, ok)
	require.Equal(t, "mono", v)

	v, ok = Get(path, "console")
	require.True(t, ok)
	require.Equal(t, "auto", v)

	v, ok = Get(path, "custom")
	require.True(t, ok)
	require.Equal(t, "x", v)

	_, ok = Get(path, "never_defined")
	require.False(t, ok)
}

func TestGet_EnvOverrides(t *testing.T) {
	path := tempConfig(t, "log_level=warn\n")
	t.Setenv("GSH_LOG_LEVEL", "debug")

	v, ok := Get(path, "log_level")
	require.True(t, ok)
	require.Equal(t, "debug", v)
}

func TestGetAll_MergesDefaults(t *testing.T) {
	path := tempConfig(t, "pager=cat\n")

	all, err := GetAll(path)
	require.NoError(t, err)
	require.Equal(t, "cat", all["pager"])
	require.Equal(t, "default", all["theme"])
}

func TestLoadSettings(t *testing.T) {
	path := tempConfig(t, "history_size=50\nshow_stacktrace=true\nprompt=\"gsh> \"\n")

	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, 50, s.HistorySize)
	require.True(t, s.ShowStacktrace)
	require.Equal(t, "gsh> ", s.Prompt)
	require.Equal(t, "auto", s.Console)
	require.True(t, s.EnableLog)
}

func TestLoad_InvalidFile(t *testing.T) {
	path := tempConfig(t, "not an assignment\n")
	_, err := Load(path)
	require.Error(t, err)
}

func TestProvider_SetUnset(t *testing.T) {
	path := tempConfig(t, "# my shell\ntheme=mono\n")
	p := NewProvider(path)

	require.NoError(t, p.Set("prompt", "gsh> "))
	require.NoError(t, p.Set("theme", "contrast"))

	v, ok := p.Get("prompt")
	require.True(t, ok)
	require.Equal(t, "gsh> ", v)

	lines, err := ReadLines(path)
	require.NoError(t, err)
	require.Equal(t, []string{"# my shell", "theme=contrast", `prompt="gsh> "`}, lines)

	require.NoError(t, p.Unset("theme"))
	v, _ = p.Get("theme")
	require.Equal(t, "default", v)

	require.Error(t, p.Set("bogus_key", "1"))
}
