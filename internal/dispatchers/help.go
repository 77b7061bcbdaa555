package dispatchers

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/footprint-tools/gshell/internal/cli"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/help"
	"github.com/footprint-tools/gshell/internal/ui/style"
)

// commandDisplayOrder defines explicit ordering within categories.
// Commands not listed appear alphabetically after listed ones.
var commandDisplayOrder = map[string]int{
	// session
	"exit":    1,
	"history": 2,
	"version": 3,
	// navigate
	"cd":    1,
	"pwd":   2,
	"group": 3,
	// variables and preferences
	"set":   1,
	"unset": 2,
	// aliases
	"alias":   1,
	"unalias": 2,
}

// formatUsage styles the usage line with the command in Info color and the rest muted.
func formatUsage(usage string) string {
	cmdEnd := len(usage)
	for i, c := range usage {
		if c == '[' || c == '<' {
			cmdEnd = i
			break
		}
	}

	cmd := strings.TrimSpace(usage[:cmdEnd])
	rest := ""
	if cmdEnd < len(usage) {
		rest = usage[cmdEnd:]
	}

	if rest == "" {
		return style.Info(cmd)
	}
	return style.Info(cmd) + " " + style.Muted(rest)
}

// pad right-fills s to width display cells, so wide runes line up.
func pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// Usage renders the help page of one command.
func Usage(desc *command.Descriptor) string {
	var out bytes.Buffer

	out.WriteString(desc.Name)
	if desc.Summary != "" {
		out.WriteString(" - ")
		out.WriteString(desc.Summary)
	}
	out.WriteString("\n\n")

	out.WriteString("USAGE\n   ")
	out.WriteString(formatUsage(desc.Synopsis()))
	out.WriteString("\n\n")

	if desc.Description != "" {
		out.WriteString(strings.TrimRight(desc.Description, "\n"))
		out.WriteString("\n\n")
	}

	if opts := desc.Params.Options(); len(opts) > 0 {
		out.WriteString("OPTIONS\n")
		rows := make([][2]string, 0, len(opts))
		for _, o := range opts {
			name := strings.Join(o.Names, ", ")
			if o.Handler.TakesValue() {
				name += " " + o.Hint()
			}
			rows = append(rows, [2]string{name, describe(o)})
		}
		writeRows(&out, rows)
		out.WriteString("\n")
	}

	if args := desc.Params.Arguments(); len(args) > 0 {
		out.WriteString("ARGUMENTS\n")
		rows := make([][2]string, 0, len(args))
		for _, a := range args {
			hint := a.Hint()
			if _, ok := a.Handler.(cli.Collector); ok {
				hint += "..."
			}
			rows = append(rows, [2]string{hint, describe(a)})
		}
		writeRows(&out, rows)
		out.WriteString("\n")
	}

	return out.String()
}

func describe(p cli.Parameter) string {
	d := p.Description
	if p.Preference != "" {
		if d != "" {
			d += " "
		}
		d += style.Muted("(preference " + p.Preference + ")")
	}
	return d
}

func writeRows(out *bytes.Buffer, rows [][2]string) {
	width := 0
	for _, r := range rows {
		if w := runewidth.StringWidth(r[0]); w > width {
			width = w
		}
	}
	for _, r := range rows {
		fmt.Fprintf(out, "   %s  %s\n", style.Info(pad(r[0], width)), r[1])
	}
}

// CommandList renders the overview shown by help without arguments:
// commands grouped by category, then the help topics.
func CommandList(descs []*command.Descriptor, aliases map[string]string, topics []*help.Topic) string {
	var out bytes.Buffer

	grouped := make(map[command.Category][]*command.Descriptor)
	width := 12
	for _, d := range descs {
		grouped[d.Category] = append(grouped[d.Category], d)
		if w := runewidth.StringWidth(d.Name); w > width {
			width = w
		}
	}

	for _, cat := range command.CategoryOrder() {
		cmds := grouped[cat]
		if len(cmds) == 0 {
			continue
		}

		out.WriteString(style.Header(cat.String()))
		out.WriteString("\n")

		sort.Slice(cmds, func(i, j int) bool {
			orderI, hasI := commandDisplayOrder[cmds[i].Name]
			orderJ, hasJ := commandDisplayOrder[cmds[j].Name]
			if hasI && hasJ {
				return orderI < orderJ
			}
			if hasI {
				return true
			}
			if hasJ {
				return false
			}
			return cmds[i].Name < cmds[j].Name
		})

		for _, cmd := range cmds {
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(pad(cmd.Name, width)), cmd.Summary)
		}
		out.WriteString("\n")
	}

	if len(aliases) > 0 {
		out.WriteString(style.Header("aliases"))
		out.WriteString("\n")
		names := make([]string, 0, len(aliases))
		for name := range aliases {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(&out, "   %s  %s\n", style.Info(pad(name, width)), style.Muted(aliases[name]))
		}
		out.WriteString("\n")
	}

	if len(topics) > 0 {
		out.WriteString(style.Header("conceptual guides"))
		out.WriteString("\n")
		for _, topic := range topics {
			fmt.Fprintf(&out, "   %s  %s\n", style.Muted(pad(topic.Name, width)), topic.Summary)
		}
		out.WriteString("\n")
	}

	fmt.Fprintf(&out, "See 'help <command>' for detailed help on a specific command.\n")
	fmt.Fprintf(&out, "See 'help <topic>' for conceptual documentation.\n")
	return out.String()
}
