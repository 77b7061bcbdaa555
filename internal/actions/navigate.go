package actions

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/registry"
	"github.com/footprint-tools/gshell/internal/variables"
)

func cdCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:        "cd",
		Summary:     "Change the working directory",
		Description: "Without a directory, changes to the user home directory.",
		Category:    command.CategoryNavigation,
		Params: cli.MustSpec(
			cli.Argument("dir").Type(cli.File).Hint("dir").Describe("directory to change to"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			return changeDir(ctx, deps)
		})),
	}
}

func changeDir(ctx *command.Context, deps Deps) (any, error) {
	session := ctx.Shell.Variables()

	dir := ctx.Args.String("dir", "")
	if dir == "" {
		dir = session.GetString(variables.ShellUserHome, "")
		if dir == "" {
			return nil, fmt.Errorf("no home directory to change to")
		}
	}

	dir = expandHome(dir, session.GetString(variables.ShellUserHome, ""))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(session.GetString(variables.ShellUserDir, ""), dir)
	}

	info, err := deps.Stat(dir)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%s: no such directory", dir)
	}
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: not a directory", dir)
	}

	if err := session.Set(variables.ShellUserDir, dir); err != nil {
		return nil, err
	}
	ctx.Logger.Debug("cd %s", dir)
	return dir, nil
}

func expandHome(path, home string) string {
	if home == "" {
		return path
	}
	if path == "~" {
		return home
	}
	if strings.HasPrefix(path, "~/") {
		return filepath.Join(home, path[2:])
	}
	return path
}

func pwdCommand() *command.Descriptor {
	return &command.Descriptor{
		Name:     "pwd",
		Summary:  "Print the working directory",
		Category: command.CategoryNavigation,
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			dir := ctx.Variables.GetString(variables.ShellUserDir, "")
			_, _ = ctx.IO.Out.Println(dir)
			return dir, nil
		})),
	}
}

func groupCommand(deps Deps) *command.Descriptor {
	return &command.Descriptor{
		Name:        "group",
		Summary:     "Show or change the current command group",
		Description: "Commands in the current group can be run without their group prefix.\nSee 'help groups'.",
		Category:    command.CategoryNavigation,
		Params: cli.MustSpec(
			cli.Argument("path").Describe("group to enter; / is the root, .. the parent"),
		),
		Factory: command.Singleton(command.ActionFunc(func(ctx *command.Context) (any, error) {
			session := ctx.Shell.Variables()
			current := session.GetString(variables.ShellGroup, "")

			if !ctx.Args.Has("path") {
				_, _ = ctx.IO.Out.Println("/" + current)
				return "/" + current, nil
			}

			target, _ := registry.JoinPath(current, ctx.Args.String("path", ""))
			if !deps.Registry.HasGroup(target) {
				return nil, fmt.Errorf("no such group: /%s", target)
			}
			if err := session.Set(variables.ShellGroup, target); err != nil {
				return nil, err
			}
			return "/" + target, nil
		})),
	}
}
