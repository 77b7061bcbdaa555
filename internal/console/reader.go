// Package console drives a shell from a terminal or a stream: it reads
// lines, runs them and reports failures until exit or end of input.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
)

// ErrInterrupted is returned by a LineReader when the user abandons the
// current line, e.g. with Ctrl+C.
var ErrInterrupted = errors.New("interrupted")

// LineReader reads input lines. It returns io.EOF at end of input.
type LineReader interface {
	ReadLine(prompt string) (string, error)
	Close() error
}

// Completer returns full replacement lines for a partial line.
type Completer func(line string) []string

// Mode selects a LineReader.
type Mode string

const (
	ModeAuto  Mode = "auto"
	ModeLine  Mode = "line"
	ModeTUI   Mode = "tui"
	ModePlain Mode = "plain"
)

// ParseMode maps the console setting to a Mode; anything unknown is auto.
func ParseMode(s string) Mode {
	switch Mode(s) {
	case ModeLine, ModeTUI, ModePlain:
		return Mode(s)
	default:
		return ModeAuto
	}
}

// IsInteractive reports whether f is a terminal.
func IsInteractive(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// ReaderOptions configures NewReader.
type ReaderOptions struct {
	Mode        Mode
	In          *os.File
	Out         io.Writer
	Completer   Completer
	HistoryFile string
}

// NewReader picks a reader for opts.Mode. Auto uses line editing when
// opts.In is a terminal and plain reading otherwise.
func NewReader(opts ReaderOptions) (LineReader, error) {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	mode := opts.Mode
	if mode == ModeAuto || mode == "" {
		mode = ModePlain
		if IsInteractive(opts.In) {
			mode = ModeLine
		}
	}

	switch mode {
	case ModeLine:
		return NewLinerReader(opts.Completer, opts.HistoryFile), nil
	case ModeTUI:
		return NewTUIReader(opts.In, opts.Out, opts.Completer), nil
	case ModePlain:
		return NewPlainReader(opts.In, nil), nil
	default:
		return nil, fmt.Errorf("unknown console mode %q", mode)
	}
}

// PlainReader reads lines from a stream without editing. The prompt is
// written only when a prompt writer is set.
type PlainReader struct {
	scanner *bufio.Scanner
	prompt  io.Writer
}

// NewPlainReader reads from in, writing prompts to prompt when not nil.
func NewPlainReader(in io.Reader, prompt io.Writer) *PlainReader {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	return &PlainReader{scanner: scanner, prompt: prompt}
}

func (r *PlainReader) ReadLine(prompt string) (string, error) {
	if r.prompt != nil {
		_, _ = fmt.Fprint(r.prompt, prompt)
	}
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return r.scanner.Text(), nil
}

func (r *PlainReader) Close() error { return nil }
