package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/term"

	"github.com/footprint-tools/gshell/internal/app"
	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/console"
	"github.com/footprint-tools/gshell/internal/dispatchers"
	"github.com/footprint-tools/gshell/internal/errs"
)

var processCommand = &command.Descriptor{
	Name:        "gsh",
	Summary:     "interactive command shell",
	Description: "Without -c or a script, reads lines from the terminal until exit.",
	Params: cli.MustSpec(
		cli.Option("-c", "--command").Type(cli.String).Hint("LINE").Describe("run LINE and exit with its status"),
		cli.Option("--console").Type(cli.Enum("auto", "line", "tui", "plain")).Describe("line reader to use"),
		cli.Option("--no-color").Describe("disable colored output"),
		cli.Option("--no-pager").Describe("never page long output"),
		cli.Option("--pager").Type(cli.String).Hint("CMD").Describe("pager command for long output"),
		cli.Option("--version").Describe("print the version and exit"),
		cli.Argument("script").Type(cli.File).Describe("script to source instead of reading the terminal"),
	),
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags, err := cli.Bind(processCommand.Params, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		if e, ok := errs.As(err); ok {
			if hint := e.Hint(); hint != "" {
				fmt.Fprintln(os.Stderr, hint)
			}
			return e.GetExitCode()
		}
		return 2
	}
	if flags.Help {
		fmt.Print(dispatchers.Usage(processCommand))
		return 0
	}
	if flags.Bool("version") {
		fmt.Printf("gsh version %s\n", app.Version)
		return 0
	}

	opts := app.DefaultOptions()
	// Enable styling if stdout is a terminal and --no-color is not set
	opts.StyleEnabled = term.IsTerminal(int(os.Stdout.Fd())) && !flags.Bool("no-color")
	opts.PagerDisabled = flags.Bool("no-pager")
	opts.PagerOverride = flags.String("pager", "")

	line := flags.String("command", "")
	script := flags.String("script", "")
	opts.WatchManifest = line == "" && script == ""

	a, err := app.New(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gsh:", err)
		return 1
	}
	defer func() { _ = a.Close() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	switch {
	case line != "":
		return a.RunLine(ctx, line)
	case script != "":
		return a.RunCommand(ctx, "source", script)
	}

	reader, err := a.NewReader(flags.String("console", ""))
	if err != nil {
		fmt.Fprintln(os.Stderr, "gsh:", err)
		return 1
	}
	defer func() { _ = reader.Close() }()

	if console.IsInteractive(os.Stdin) {
		fmt.Println(a.Banner())
	}

	code, err := a.Run(ctx, reader)
	if err != nil {
		fmt.Fprintln(os.Stderr, "gsh:", err)
	}
	return code
}
