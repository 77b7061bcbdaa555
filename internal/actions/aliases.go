package actions

import (
	"sort"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/errs"
)

func aliasCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:        "alias",
		Summary:     "Define or list aliases",
		Description: "Arguments given to an alias are appended to its target.\nSee 'help aliases'.",
		Category:    command.CategoryAliases,
		Params: cli.MustSpec(
			cli.Option("--").Type(cli.Stop).As("end").Describe("the rest is the target, even if it starts with -"),
			cli.Argument("name").Describe("alias to define or show"),
			cli.Argument("target").Type(cli.Rest).Describe("command line the alias runs"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			reg := deps.Registry

			if !ctx.Args.Has("name") {
				aliases := reg.Aliases()
				for _, name := range sortedNames(aliases) {
					_, _ = ctx.IO.Out.Printf("alias %s='%s'\n", name, aliases[name])
				}
				return len(aliases), nil
			}

			name := ctx.Args.String("name", "")
			if !ctx.Args.Has("target") {
				target, ok := reg.Alias(name)
				if !ok {
					return nil, errs.Unresolved(name)
				}
				_, _ = ctx.IO.Out.Printf("alias %s='%s'\n", name, target)
				return target, nil
			}

			target := joinArgs(ctx.Args.Strings("target"))
			if err := reg.DefineAlias(name, target); err != nil {
				return nil, err
			}
			return target, nil
		})),
	}
}

func unaliasCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:     "unalias",
		Summary:  "Remove an alias",
		Category: command.CategoryAliases,
		Params: cli.MustSpec(
			cli.Argument("name").Required().Describe("alias to remove"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			return nil, deps.Registry.RemoveAlias(ctx.Args.String("name", ""))
		})),
	}
}

func sortedNames(m map[string]string) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
