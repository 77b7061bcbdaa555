// Package ui provides buffered command output with pager support.
//
// The pager intentionally runs the command configured by the user (config
// key "pager" or $PAGER), the same way git and man do.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"

	"golang.org/x/term"

	"github.com/footprint-tools/gshell/internal/domain"
)

// Writer is a buffered domain.OutputWriter. Output reaches the underlying
// stream on Flush or when the buffer fills.
type Writer struct {
	mu  sync.Mutex
	out io.Writer
	buf *bufio.Writer

	pagerDisabled bool
	pagerOverride string
	configGetter  func(string) (string, bool)
	envGetter     func(string) string
}

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithPagerDisabled disables the pager.
func WithPagerDisabled() WriterOption {
	return func(w *Writer) {
		w.pagerDisabled = true
	}
}

// WithPagerOverride sets a pager command override.
func WithPagerOverride(cmd string) WriterOption {
	return func(w *Writer) {
		w.pagerOverride = cmd
	}
}

// WithConfigGetter sets the config getter function.
func WithConfigGetter(fn func(string) (string, bool)) WriterOption {
	return func(w *Writer) {
		w.configGetter = fn
	}
}

// WithEnvGetter sets the environment variable getter function.
func WithEnvGetter(fn func(string) string) WriterOption {
	return func(w *Writer) {
		w.envGetter = fn
	}
}

// NewWriter creates a new Writer that writes to stdout.
func NewWriter(opts ...WriterOption) *Writer {
	return NewWriterTo(os.Stdout, opts...)
}

// NewWriterTo creates a new Writer that writes to the specified writer.
func NewWriterTo(out io.Writer, opts ...WriterOption) *Writer {
	w := &Writer{
		out:       out,
		buf:       bufio.NewWriter(out),
		envGetter: os.Getenv,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (n int, err error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Write(p)
}

// Printf formats and prints to the output.
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return fmt.Fprintf(w, format, args...)
}

// Println prints a line to the output.
func (w *Writer) Println(args ...any) (int, error) {
	return fmt.Fprintln(w, args...)
}

// Flush writes buffered output to the underlying stream.
func (w *Writer) Flush() error {
	if w == nil {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.Flush()
}

// IsTerminal reports whether the underlying stream is a terminal.
func (w *Writer) IsTerminal() bool {
	f, ok := w.out.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Width returns the terminal width, or fallback when it is unknown.
func (w *Writer) Width(fallback int) int {
	f, ok := w.out.(*os.File)
	if !ok {
		return fallback
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}

// Pager displays content through a pager if appropriate.
func (w *Writer) Pager(content string) {
	// 1. Pager disabled, or not a terminal
	if w.pagerDisabled || !w.IsTerminal() {
		_, _ = io.WriteString(w, content)
		return
	}

	// Anything buffered must appear before the pager takes the screen.
	_ = w.Flush()

	// 2. Pager override
	if w.pagerOverride != "" {
		w.runPagerCmd(w.pagerOverride, content)
		return
	}

	// 3. Config pager
	if w.configGetter != nil {
		if configPager, ok := w.configGetter("pager"); ok && configPager != "" {
			w.runPagerCmd(configPager, content)
			return
		}
	}

	// 4. $PAGER environment variable
	if w.envGetter != nil {
		if envPager := w.envGetter("PAGER"); envPager != "" {
			w.runPagerCmd(envPager, content)
			return
		}
	}

	// 5. Default: less with standard flags
	w.runPager("less", []string{"-FRSX"}, content)
}

func (w *Writer) runPagerCmd(pagerCmd string, content string) {
	parts := strings.Fields(pagerCmd)
	if len(parts) == 0 || parts[0] == "cat" {
		_, _ = io.WriteString(w, content)
		return
	}
	w.runPager(parts[0], parts[1:], content)
}

func (w *Writer) runPager(pager string, args []string, content string) {
	cmd := exec.Command(pager, args...)
	cmd.Stdin = strings.NewReader(content)
	cmd.Stdout = w.out
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		_, _ = io.WriteString(w, content)
	}
}

// Verify Writer implements domain.OutputWriter
var _ domain.OutputWriter = (*Writer)(nil)
