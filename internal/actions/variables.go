package actions

import (
	"sort"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/ui/style"
	"github.com/footprint-tools/gshell/internal/variables"
)

func setCommand() *command.Descriptor {
	return &command.Descriptor{
		Name:        "set",
		Summary:     "Set a session variable, or list them all",
		Description: "The value is the remaining arguments joined by single spaces.\nSee 'help variables'.",
		Category:    command.CategoryVariables,
		Params: cli.MustSpec(
			cli.Option("--").Type(cli.Stop).As("end").Describe("the rest is the value, even if it starts with -"),
			cli.Argument("name").Describe("variable to set"),
			cli.Argument("value").Type(cli.Rest).Describe("value to assign"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			session := ctx.Shell.Variables()

			if !ctx.Args.Has("name") {
				listVariables(ctx, session)
				return nil, nil
			}

			name := ctx.Args.String("name", "")
			if variables.IsReserved(name) {
				return nil, errs.Reserved(name)
			}
			value := joinArgs(ctx.Args.Strings("value"))
			if err := session.Set(name, value); err != nil {
				return nil, err
			}
			return value, nil
		})),
	}
}

func listVariables(ctx *command.Context, vars *variables.Variables) {
	snapshot := vars.Snapshot()
	names := make([]string, 0, len(snapshot))
	for name := range snapshot {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		line := name + "=" + variables.Format(snapshot[name])
		if vars.IsReadOnly(name) {
			line += " " + style.Muted("(read-only)")
		}
		_, _ = ctx.IO.Out.Println(line)
	}
}

func unsetCommand() *command.Descriptor {
	return &command.Descriptor{
		Name:     "unset",
		Summary:  "Remove a session variable",
		Category: command.CategoryVariables,
		Params: cli.MustSpec(
			cli.Argument("name").Required().Describe("variable to remove"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			name := ctx.Args.String("name", "")
			if variables.IsReserved(name) {
				return nil, errs.Reserved(name)
			}
			return nil, ctx.Shell.Variables().Unset(name)
		})),
	}
}
