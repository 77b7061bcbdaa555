package console

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
)

// LinerReader edits lines in the terminal with history and tab completion.
type LinerReader struct {
	line        *liner.State
	historyFile string
}

// NewLinerReader takes over the terminal until Close. History is loaded
// from and saved to historyFile when it is set.
func NewLinerReader(complete Completer, historyFile string) *LinerReader {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	line.SetTabCompletionStyle(liner.TabPrints)
	if complete != nil {
		line.SetCompleter(liner.Completer(complete))
	}

	r := &LinerReader{line: line, historyFile: historyFile}
	r.loadHistory()
	return r
}

func (r *LinerReader) loadHistory() {
	if r.historyFile == "" {
		return
	}
	if f, err := os.Open(r.historyFile); err == nil {
		_, _ = r.line.ReadHistory(f)
		_ = f.Close()
	}
}

func (r *LinerReader) saveHistory() error {
	if r.historyFile == "" {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(r.historyFile), 0700); err != nil {
		return err
	}
	f, err := os.OpenFile(r.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = r.line.WriteHistory(f)
	return err
}

func (r *LinerReader) ReadLine(prompt string) (string, error) {
	input, err := r.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrInterrupted
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		r.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves the history and gives the terminal back.
func (r *LinerReader) Close() error {
	errSave := r.saveHistory()
	if err := r.line.Close(); err != nil {
		return err
	}
	return errSave
}

var _ io.Closer = (*LinerReader)(nil)
