package actions

import (
	"sort"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/dispatchers"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/help"
	"github.com/footprint-tools/gshell/internal/ui/style"
	"github.com/footprint-tools/gshell/internal/variables"
)

const maxHelpSuggestions = 3

func helpCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:     "help",
		Summary:  "Show help for commands and topics",
		Category: command.CategoryHelp,
		Params: cli.MustSpec(
			cli.Argument("name").Describe("command, alias or topic"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			return showHelp(ctx, deps)
		})),
	}
}

func showHelp(ctx *command.Context, deps Deps) (any, error) {
	reg := deps.Registry

	var topics []*help.Topic
	if deps.Help != nil {
		topics = deps.Help.Topics()
	}

	if !ctx.Args.Has("name") {
		ctx.IO.Out.Pager(dispatchers.CommandList(reg.Commands(), reg.Aliases(), topics))
		return nil, nil
	}

	name := ctx.Args.String("name", "")
	group := ctx.Variables.GetString(variables.ShellGroup, "")

	if desc, err := reg.Resolve(name, group); err == nil {
		ctx.IO.Out.Pager(dispatchers.Usage(desc))
		return desc.Name, nil
	}

	if deps.Help != nil {
		if topic, ok := deps.Help.Lookup(name); ok {
			width := ctx.IO.Out.Width(80)
			ctx.IO.Out.Pager(help.Render(topic.Content, width, style.Enabled()))
			return topic.Name, nil
		}
	}

	candidates := reg.Names()
	for _, t := range topics {
		candidates = append(candidates, t.Name)
	}
	sort.Strings(candidates)
	return nil, errs.Unresolved(name, cli.Similar(name, candidates, maxHelpSuggestions)...)
}
