// Package pref holds the pref group: commands that manage the stored
// preferences parameters fall back to.
package pref

import (
	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/domain"
)

// Commands returns the pref group backed by store.
func Commands(store domain.PreferenceStore) []*command.Descriptor {
	run := func(fn func(*cli.Bound, Deps) (any, error)) command.Factory {
		return command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			return fn(ctx.Args, DefaultDeps(store, ctx.IO.Out))
		}))
	}

	return []*command.Descriptor{
		{
			Name:     "pref/list",
			Summary:  "List stored preferences",
			Category: command.CategoryVariables,
			Factory:  run(list),
		},
		{
			Name:     "pref/get",
			Summary:  "Print one preference",
			Category: command.CategoryVariables,
			Params: cli.MustSpec(
				cli.Argument("key").Required().Describe("preference key"),
			),
			Factory: run(get),
		},
		{
			Name:        "pref/set",
			Summary:     "Store a preference",
			Description: "Parameters that name the preference use it when not given on the\ncommand line. See 'help preferences'.",
			Category:    command.CategoryVariables,
			Params: cli.MustSpec(
				cli.Option("--").Type(cli.Stop).As("end").Describe("the rest is the value, even if it starts with -"),
				cli.Argument("key").Required().Describe("preference key"),
				cli.Argument("value").Type(cli.Rest).Required().Describe("value to store"),
			),
			Factory: run(set),
		},
		{
			Name:     "pref/unset",
			Summary:  "Remove a preference",
			Category: command.CategoryVariables,
			Params: cli.MustSpec(
				cli.Option("--all").Describe("remove every preference"),
				cli.Argument("key").Describe("preference key"),
			),
			Factory: run(unset),
		},
	}
}
