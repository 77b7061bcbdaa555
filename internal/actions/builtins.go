// Package actions implements the builtin commands and the catalog that
// command sets draw them from.
package actions

import (
	"github.com/footprint-tools/gshell/internal/actions/config"
	"github.com/footprint-tools/gshell/internal/actions/pref"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/registry"
)

// BuiltinSetName names the command set holding the builtins.
const BuiltinSetName = "builtin"

// ScriptAction is the catalog action that runs an entry's line.
const ScriptAction = "script"

// Descriptors returns every builtin command.
func Descriptors(deps Deps) []*command.Descriptor {
	deps = deps.withDefaults()

	descs := []*command.Descriptor{
		helpCommand(deps),
		exitCommand(),
		echoCommand(),
		setCommand(),
		unsetCommand(),
		aliasCommand(deps),
		unaliasCommand(deps),
		cdCommand(deps),
		pwdCommand(),
		sourceCommand(deps),
		historyCommand(deps),
		groupCommand(deps),
		versionCommand(deps),
		statsCommand(deps),
	}
	if deps.Prefs != nil {
		descs = append(descs, pref.Commands(deps.Prefs)...)
	}
	if deps.Config != nil {
		descs = append(descs, config.Commands(deps.Config)...)
	}
	return descs
}

// Catalog makes every builtin available to command sets under its own
// name, plus the script action.
func Catalog(deps Deps) *registry.Catalog {
	c := registry.NewCatalog()
	for _, d := range Descriptors(deps) {
		c.AddDescriptor(d)
	}
	c.Add(ScriptAction, scriptCommand)
	return c
}

// BuiltinSet is the lowest ranked command set. Manifests override its
// names with higher ranks.
func BuiltinSet(deps Deps) registry.CommandSet {
	set := registry.CommandSet{Name: BuiltinSetName, Rank: 0}
	for _, d := range Descriptors(deps) {
		set.Commands = append(set.Commands, registry.Entry{Name: d.Name})
	}
	return set
}
