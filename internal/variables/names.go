package variables

// Names the shell reserves for itself.
const (
	ShellHome      = "shell.home"
	ShellProgram   = "shell.program"
	ShellVersion   = "shell.version"
	ShellUserHome  = "shell.user.home"
	ShellUserDir   = "shell.user.dir"
	ShellGroup     = "shell.group"
	ShellPrompt    = "shell.prompt"
	ShellHistory   = "shell.history"
	ShowStacktrace = "shell.show-stacktrace"
	Verbose        = "shell.verbose"

	// LastResult holds the value returned by the most recent command.
	LastResult = "_"
)

// IsReserved reports whether users may not assign name with the set builtin.
func IsReserved(name string) bool {
	return name == LastResult
}
