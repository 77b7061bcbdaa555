package actions

import (
	"io"
	"os"
	"time"

	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/format"
	"github.com/footprint-tools/gshell/internal/help"
	"github.com/footprint-tools/gshell/internal/metrics"
	"github.com/footprint-tools/gshell/internal/registry"
)

// Deps is what the builtin commands reach outside their invocation context.
// Nil stores disable the commands that need them.
type Deps struct {
	Registry *registry.Registry
	Help     *help.Manager
	Prefs    domain.PreferenceStore
	Config   domain.ConfigProvider
	History  domain.HistoryStore
	Metrics  *metrics.Metrics
	Version  string
	Clock    format.Clock

	Stat func(string) (os.FileInfo, error)
	Open func(string) (io.ReadCloser, error)
	Now  func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Stat == nil {
		d.Stat = os.Stat
	}
	if d.Open == nil {
		d.Open = func(path string) (io.ReadCloser, error) { return os.Open(path) }
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Clock == (format.Clock{}) {
		d.Clock = format.NewClock("", "")
	}
	return d
}
