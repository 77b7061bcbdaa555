package command

import (
	"io"
	"os"

	"github.com/footprint-tools/gshell/internal/ui"
)

// IO holds the streams a command reads and writes.
type IO struct {
	In  io.Reader
	Out *ui.Writer
	Err *ui.Writer
}

// StandardIO wires the process streams.
func StandardIO(opts ...ui.WriterOption) *IO {
	return &IO{
		In:  os.Stdin,
		Out: ui.NewWriterTo(os.Stdout, opts...),
		Err: ui.NewWriterTo(os.Stderr, ui.WithPagerDisabled()),
	}
}

// NewIO wires arbitrary streams, with the pager off.
func NewIO(in io.Reader, out, errOut io.Writer) *IO {
	return &IO{
		In:  in,
		Out: ui.NewWriterTo(out, ui.WithPagerDisabled()),
		Err: ui.NewWriterTo(errOut, ui.WithPagerDisabled()),
	}
}

// Flush flushes both output streams.
func (s *IO) Flush() error {
	if s == nil {
		return nil
	}
	errOut := s.Err.Flush()
	if err := s.Out.Flush(); err != nil {
		return err
	}
	return errOut
}
