// Package config holds the config group: commands that read and edit the
// configuration file. Changes apply to sessions started afterwards.
package config

import (
	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/domain"
)

// Commands returns the config group backed by provider.
func Commands(provider domain.ConfigProvider) []*command.Descriptor {
	run := func(fn func(*cli.Bound, Deps) (any, error)) command.Factory {
		return command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			return fn(ctx.Args, DefaultDeps(provider, ctx.IO.Out))
		}))
	}

	keys := make([]string, 0, len(domain.ConfigKeys))
	for _, k := range domain.VisibleConfigKeys() {
		keys = append(keys, k.Name)
	}

	return []*command.Descriptor{
		{
			Name:     "config/list",
			Summary:  "List configuration values",
			Category: command.CategoryShell,
			Params: cli.MustSpec(
				cli.Option("-a", "--all").Describe("include keys that are empty"),
			),
			Factory: run(list),
		},
		{
			Name:     "config/get",
			Summary:  "Print one configuration value",
			Category: command.CategoryShell,
			Params: cli.MustSpec(
				cli.Argument("key").Required().Type(cli.Enum(keys...)).Hint("key").Describe("configuration key"),
			),
			Factory: run(get),
		},
		{
			Name:        "config/set",
			Summary:     "Write a configuration value",
			Description: "The file keeps its comments and layout.",
			Category:    command.CategoryShell,
			Params: cli.MustSpec(
				cli.Option("--").Type(cli.Stop).As("end").Describe("the rest is the value, even if it starts with -"),
				cli.Argument("key").Required().Type(cli.Enum(keys...)).Hint("key").Describe("configuration key"),
				cli.Argument("value").Type(cli.Rest).Required().Describe("value to write"),
			),
			Factory: run(set),
		},
		{
			Name:     "config/unset",
			Summary:  "Remove a configuration value",
			Category: command.CategoryShell,
			Params: cli.MustSpec(
				cli.Argument("key").Required().Describe("configuration key"),
			),
			Factory: run(unset),
		},
	}
}
