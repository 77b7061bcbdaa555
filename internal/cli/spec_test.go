package cli

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewSpec_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params []*ParamBuilder
		errMsg string
	}{
		{
			name:   "duplicate flag",
			params: []*ParamBuilder{Option("-v", "--verbose"), Option("-v").As("value")},
			errMsg: "declared twice",
		},
		{
			name:   "duplicate name",
			params: []*ParamBuilder{Argument("path"), Argument("path")},
			errMsg: "duplicate parameter",
		},
		{
			name: "two stop options",
			params: []*ParamBuilder{
				Option("--").Type(Stop).As("stop"),
				Option("--end").Type(Stop),
			},
			errMsg: "at most one",
		},
		{
			name:   "gap in indices",
			params: []*ParamBuilder{Argument("a").At(0), Argument("b").At(2)},
			errMsg: "contiguous",
		},
		{
			name:   "same index twice",
			params: []*ParamBuilder{Argument("a").At(1), Argument("b").At(1)},
			errMsg: "contiguous",
		},
		{
			name:   "collector not last",
			params: []*ParamBuilder{Argument("rest").Type(Rest), Argument("path")},
			errMsg: "must be last",
		},
		{
			name:   "flag without dash",
			params: []*ParamBuilder{Option("verbose")},
			errMsg: "must start with '-'",
		},
		{
			name:   "unnamed stop option",
			params: []*ParamBuilder{Option("--").Type(Stop)},
			errMsg: "without a name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSpec(tt.params...)
			require.Error(t, err)
			require.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestNewSpec_ExplicitIndicesAreOrdered(t *testing.T) {
	s, err := NewSpec(Argument("second").At(1), Argument("first").At(0))
	require.NoError(t, err)

	args := s.Arguments()
	require.Equal(t, "first", args[0].Name)
	require.Equal(t, "second", args[1].Name)
}

func TestMustSpec_Panics(t *testing.T) {
	require.Panics(t, func() {
		MustSpec(Argument("a").At(3))
	})
}

func TestOptionDefaultName(t *testing.T) {
	s := MustSpec(Option("-n", "--lines").Type(Int))
	require.Equal(t, "lines", s.Options()[0].Name)
}

func TestSynopsis(t *testing.T) {
	s := MustSpec(
		Option("-n", "--lines").Type(Int).Hint("N"),
		Option("--clear"),
		Argument("path").Type(File).Required(),
		Argument("args").Type(Rest),
	)
	require.Equal(t, "history [-n N] [--clear] <path> [args...]", s.Synopsis("history"))
}

func TestFlags_IncludesHelp(t *testing.T) {
	s := MustSpec(Option("--clear"))
	require.Equal(t, []string{"--clear", "--help", "-h"}, s.Flags())

	own := MustSpec(Option("-h", "--host").Type(String))
	require.Equal(t, []string{"--host", "-h"}, own.Flags())
}
