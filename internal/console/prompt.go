package console

import (
	"strings"

	"github.com/footprint-tools/gshell/internal/ui/style"
	"github.com/footprint-tools/gshell/internal/variables"
)

// ExpandPrompt substitutes ${name} references in template with variables
// from vars. Unknown names and unterminated references stay as written.
func ExpandPrompt(template string, vars *variables.Variables) string {
	var b strings.Builder
	rest := template
	for {
		i := strings.Index(rest, "${")
		if i < 0 {
			b.WriteString(rest)
			break
		}
		b.WriteString(rest[:i])

		end := strings.IndexByte(rest[i+2:], '}')
		if end < 0 {
			b.WriteString(rest[i:])
			break
		}
		name := rest[i+2 : i+2+end]
		ref := rest[i : i+3+end]
		rest = rest[i+3+end:]

		value, ok := "", false
		if vars != nil {
			value, ok = vars.Lookup(name)
		}
		if ok {
			b.WriteString(value)
		} else {
			b.WriteString(ref)
		}
	}
	return b.String()
}

// Prompt renders the prompt for the next line from shell.prompt.
func Prompt(vars *variables.Variables, fallback string) string {
	template := fallback
	if vars != nil {
		template = vars.GetString(variables.ShellPrompt, fallback)
	}
	return style.Prompt(ExpandPrompt(template, vars))
}
