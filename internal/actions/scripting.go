package actions

import (
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/errs"
	"github.com/footprint-tools/gshell/internal/registry"
	"github.com/footprint-tools/gshell/internal/shell"
	"github.com/footprint-tools/gshell/internal/variables"
)

func echoCommand() *command.Descriptor {
	return &command.Descriptor{
		Name:     "echo",
		Summary:  "Print arguments",
		Category: command.CategoryScripting,
		Params: cli.MustSpec(
			cli.Option("-n").Describe("do not print the trailing newline"),
			cli.Option("--").Type(cli.Stop).As("end").Describe("print the rest even if it starts with -"),
			cli.Argument("args").Type(cli.Rest).Describe("text to print"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			text := joinArgs(ctx.Args.Strings("args"))
			if ctx.Args.Bool("n") {
				_, _ = ctx.IO.Out.Printf("%s", text)
			} else {
				_, _ = ctx.IO.Out.Println(text)
			}
			return text, nil
		})),
	}
}

func sourceCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:        "source",
		Summary:     "Run the commands in a file",
		Description: "Blank lines and lines starting with # are skipped. The first failing\nline stops the file. See 'help scripting'.",
		Category:    command.CategoryScripting,
		Params: cli.MustSpec(
			cli.Argument("file").Type(cli.Location).Required().Hint("file").Describe("path or file:// URL of the script"),
		),
		Factory: command.Prototype(func() command.Action {
			return &sourceAction{open: deps.Open}
		}),
	}
}

// sourceAction runs one script and keeps the state of that run.
type sourceAction struct {
	open func(string) (io.ReadCloser, error)
	path string
	ran  int
}

func (a *sourceAction) Execute(ctx *command.Context) (any, error) {
	value, _ := ctx.Args.Value("file")
	path, err := scriptPath(value, ctx.Variables)
	if err != nil {
		return nil, err
	}
	a.path = path

	f, err := a.open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := shell.RunScript(f, path, func(line string) command.Result {
		a.ran++
		return ctx.Execute(line)
	})
	ctx.Logger.Debug("source %s: %d lines run, %s", a.path, a.ran, r.Status)
	return command.Propagate(r)
}

// scriptPath turns a bound file argument into a path, resolving file://
// URLs and paths relative to the working directory.
func scriptPath(value any, vars *variables.Variables) (string, error) {
	var arg string
	switch v := value.(type) {
	case *url.URL:
		if v.Scheme != "file" {
			return "", errs.InvalidValue("file", v.String(), fmt.Errorf("unsupported scheme %q", v.Scheme))
		}
		arg = v.Path
	case string:
		arg = v
	default:
		return "", errs.MissingArgument("file")
	}

	arg = expandHome(arg, vars.GetString(variables.ShellUserHome, ""))
	if !filepath.IsAbs(arg) {
		arg = filepath.Join(vars.GetString(variables.ShellUserDir, ""), arg)
	}
	return arg, nil
}

// scriptCommand builds a command set entry that runs a fixed command line
// with the caller's arguments appended.
func scriptCommand(e registry.Entry) (*command.Descriptor, error) {
	line := strings.TrimSpace(e.Line)
	if line == "" {
		return nil, fmt.Errorf("script %s has no line", e.Name)
	}

	summary := e.Summary
	if summary == "" {
		summary = "runs " + line
	}
	return &command.Descriptor{
		Name:     e.Name,
		Summary:  summary,
		Category: command.CategoryScripting,
		Opaque:   true,
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			full := line
			if raw := ctx.Raw(); len(raw) > 0 {
				full += " " + joinArgs(raw)
			}
			return command.Propagate(ctx.Execute(full))
		})),
	}, nil
}
