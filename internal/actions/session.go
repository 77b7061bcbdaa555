package actions

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/format"
	"github.com/footprint-tools/gshell/internal/ui/style"
	"github.com/footprint-tools/gshell/internal/variables"
)

const defaultHistoryLimit = 20

// HistoryLimitPreference is the preference behind history -n.
const HistoryLimitPreference = "history.limit"

func exitCommand() *command.Descriptor {
	return &command.Descriptor{
		Name:     "exit",
		Summary:  "Leave the shell",
		Category: command.CategoryShell,
		Params: cli.MustSpec(
			cli.Argument("code").Type(cli.Int).Describe("exit status, 0 when omitted"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			return command.Exit(ctx.Args.Int("code", 0)), nil
		})),
	}
}

func historyCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:        "history",
		Summary:     "Show recent input lines",
		Description: "Lines from every session are kept until cleared.",
		Category:    command.CategoryShell,
		Params: cli.MustSpec(
			cli.Option("-n", "--lines").Type(cli.Int).Hint("N").
				Describe("number of lines to show").Preference(HistoryLimitPreference),
			cli.Option("--clear").Describe("forget every recorded line"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			return history(ctx, deps)
		})),
	}
}

func history(ctx *command.Context, deps Deps) (any, error) {
	if deps.History == nil {
		return nil, errors.New("history is not recorded in this shell")
	}

	if ctx.Args.Bool("clear") {
		if err := deps.History.ClearHistory(); err != nil {
			return nil, err
		}
		_, _ = ctx.IO.Out.Println("history cleared")
		return 0, nil
	}

	limit := ctx.Args.Int("lines", defaultHistoryLimit)
	entries, err := deps.History.RecentHistory(limit)
	if err != nil {
		return nil, err
	}

	for i, e := range entries {
		line := e.Line
		if e.Status == command.StatusFailure.String() {
			line += " " + style.Muted(fmt.Sprintf("(exit %d)", e.ExitCode))
		}
		_, _ = ctx.IO.Out.Printf("%5d  %s  %s\n", i+1, style.Muted(deps.Clock.DateTimeShort(e.ExecutedAt.Local())), line)
	}
	return len(entries), nil
}

func versionCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:     "version",
		Summary:  "Show the shell version",
		Category: command.CategoryShell,
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			program := ctx.Variables.GetString(variables.ShellProgram, "gsh")
			_, _ = ctx.IO.Out.Printf("%s version %v\n", program, deps.Version)
			return deps.Version, nil
		})),
	}
}

func statsCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:     "stats",
		Summary:  "Show execution counts and timings",
		Category: command.CategoryHelp,
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			if deps.Metrics == nil {
				return nil, errors.New("metrics are disabled")
			}
			stats, err := deps.Metrics.Snapshot()
			if err != nil {
				return nil, err
			}
			if len(stats) == 0 {
				_, _ = ctx.IO.Out.Println("no commands executed yet")
				return 0, nil
			}

			_, _ = ctx.IO.Out.Printf("%s\n", style.Header(fmt.Sprintf("%-20s %6s %6s %10s", "COMMAND", "RUNS", "FAILED", "MEAN")))
			for _, s := range stats {
				_, _ = ctx.IO.Out.Printf("%s %6d %6d %10s\n",
					column(s.Command, 20), s.Total, s.Statuses[command.StatusFailure.String()], format.Duration(s.Mean))
			}
			return len(stats), nil
		})),
	}
}

// column fits s into width terminal cells.
func column(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "…"), width)
}

// joinArgs rebuilds a value from the tokens it was split into.
func joinArgs(tokens []string) string {
	return strings.Join(tokens, " ")
}
