package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/footprint-tools/gshell/internal/command"
)

// RunScript runs every line of r through run. Blank lines and lines whose
// first non-blank character is '#' are skipped. The first failure stops the
// script and is reported with its line number; an exit request stops it and
// is returned unchanged.
func RunScript(r io.Reader, name string, run func(line string) command.Result) command.Result {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)

	result := command.Success(nil)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		result = run(line)
		switch result.Status {
		case command.StatusFailure:
			return command.Failure(fmt.Errorf("%s:%d: %w", name, lineNo, result.Err))
		case command.StatusExit:
			return result
		}
	}

	if err := scanner.Err(); err != nil {
		return command.Failure(fmt.Errorf("failed to read %s: %w", name, err))
	}
	return result
}
