// Package app is the composition root: it builds a ready shell from the
// configuration file, the database and the command-set manifest.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/footprint-tools/gshell/internal/actions"
	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/completions"
	"github.com/footprint-tools/gshell/internal/config"
	"github.com/footprint-tools/gshell/internal/console"
	"github.com/footprint-tools/gshell/internal/dispatchers"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/format"
	"github.com/footprint-tools/gshell/internal/help"
	"github.com/footprint-tools/gshell/internal/log"
	"github.com/footprint-tools/gshell/internal/metrics"
	"github.com/footprint-tools/gshell/internal/paths"
	"github.com/footprint-tools/gshell/internal/registry"
	"github.com/footprint-tools/gshell/internal/shell"
	"github.com/footprint-tools/gshell/internal/store"
	"github.com/footprint-tools/gshell/internal/ui"
	"github.com/footprint-tools/gshell/internal/ui/style"
	"github.com/footprint-tools/gshell/internal/variables"
)

// Version is the shell version, checked against the requires constraint
// of command sets.
const Version = "0.4.0"

// Options configures the application factory. Empty paths fall back to the
// locations in package paths.
type Options struct {
	ConfigPath   string
	DBPath       string
	LogPath      string
	ManifestPath string

	// Pager options
	PagerDisabled bool
	PagerOverride string

	// Style options
	StyleEnabled bool

	// WatchManifest reloads the manifest when it changes.
	WatchManifest bool

	// IO replaces the process streams, mostly for tests.
	IO *command.IO

	// WorkDir is the initial shell.user.dir; the process directory when empty.
	WorkDir string
	// UserHome overrides the user's home directory.
	UserHome string
}

// DefaultOptions returns the options for an interactive process.
func DefaultOptions() Options {
	configPath, _ := paths.ConfigFilePath()
	return Options{
		ConfigPath:    configPath,
		DBPath:        paths.DBPath(),
		LogPath:       paths.LogFilePath(),
		StyleEnabled:  true,
		WatchManifest: true,
	}
}

// App holds the wired components of one process.
type App struct {
	Settings   config.Settings
	Config     domain.ConfigProvider
	Logger     domain.Logger
	Styler     domain.Styler
	Store      *store.Store
	Registry   *registry.Registry
	Registrar  *registry.Registrar
	Help       *help.Manager
	Index      *completions.Index
	Metrics    *metrics.Metrics
	Dispatcher *dispatchers.Dispatcher
	Shell      *shell.Shell

	manifest string
	cancel   context.CancelFunc
}

// New creates a new App with all dependencies wired up.
func New(opts Options) (*App, error) {
	if opts.ConfigPath == "" {
		p, err := paths.ConfigFilePath()
		if err != nil {
			return nil, fmt.Errorf("locate config: %w", err)
		}
		opts.ConfigPath = p
	}
	if opts.DBPath == "" {
		opts.DBPath = paths.DBPath()
	}
	if opts.LogPath == "" {
		opts.LogPath = paths.LogFilePath()
	}

	cfg := config.NewProvider(opts.ConfigPath)
	settings, err := cfg.Settings()
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", opts.ConfigPath, err)
	}
	all, _ := cfg.GetAll()

	a := &App{Settings: settings, Config: cfg}

	a.Logger = newLogger(opts.LogPath, settings)

	style.Init(opts.StyleEnabled, all)
	a.Styler = style.NewStyler()
	if !style.Enabled() {
		a.Styler = style.NopStyler{}
	}

	a.Store, err = store.New(opts.DBPath)
	if err != nil {
		_ = a.Logger.Close()
		return nil, fmt.Errorf("open store: %w", err)
	}
	if settings.HistorySize > 0 {
		if n, err := a.Store.TrimHistory(settings.HistorySize); err != nil {
			a.Logger.Warn("trim history: %v", err)
		} else if n > 0 {
			a.Logger.Debug("trimmed %d history lines", n)
		}
	}

	a.Registry = registry.New(registry.WithLogger(a.Logger), registry.WithAliasStore(a.Store))

	a.Index = completions.NewIndex()
	a.Registry.Attach(a.Index)
	a.Metrics = metrics.New()
	a.Registry.Attach(a.Metrics)

	a.Help, err = help.NewManager()
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Help.Subscribe(func(e help.Event) {
		switch e.Kind {
		case help.TopicAdded:
			a.Index.AddTopic(e.Topic.Name, e.Topic.Summary)
		case help.TopicRemoved:
			a.Index.RemoveTopic(e.Topic.Name)
		}
	})

	deps := actions.Deps{
		Registry: a.Registry,
		Help:     a.Help,
		Prefs:    a.Store,
		Config:   cfg,
		History:  a.Store,
		Metrics:  a.Metrics,
		Version:  Version,
		Clock:    format.NewClock(settings.DisplayDate, settings.DisplayTime),
	}
	a.Registrar, err = registry.NewRegistrar(a.Registry, actions.Catalog(deps), Version, a.Logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.Registrar.Apply(actions.BuiltinSetName, []registry.CommandSet{actions.BuiltinSet(deps)})

	if n, err := a.Registry.LoadAliases(); err != nil {
		a.Logger.Warn("load aliases: %v", err)
	} else {
		a.Logger.Debug("loaded %d aliases", n)
	}

	a.manifest = opts.ManifestPath
	if a.manifest == "" {
		a.manifest = settings.Manifest
	}
	if a.manifest == "" {
		a.manifest = paths.ManifestPath()
	}
	a.loadManifest(opts.WatchManifest)

	a.Dispatcher = dispatchers.New(a.Registry,
		dispatchers.WithLogger(a.Logger),
		dispatchers.WithPreferences(a.Store),
		dispatchers.WithMetrics(a.Metrics),
	)

	a.Shell = shell.New(a.Dispatcher, shellOptions(opts, settings, a)...)
	return a, nil
}

func newLogger(path string, settings config.Settings) domain.Logger {
	if !settings.EnableLog {
		return log.NopLogger{}
	}
	l, err := log.New(path, log.ParseLevel(settings.LogLevel))
	if err != nil {
		// Fall back to NopLogger on error
		return log.NopLogger{}
	}
	return l
}

func (a *App) loadManifest(watch bool) {
	sets, err := registry.LoadManifest(a.manifest)
	if err != nil {
		a.Logger.Error("load manifest %s: %v", a.manifest, err)
	} else if len(sets) > 0 {
		a.Registrar.Apply(registry.ManifestSource(a.manifest), sets)
	}

	if !watch {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	if err := a.Registrar.Watch(ctx, a.manifest, registry.DefaultDebounce); err != nil {
		cancel()
		a.Logger.Debug("manifest not watched: %v", err)
		return
	}
	a.cancel = cancel
}

func shellOptions(opts Options, settings config.Settings, a *App) []shell.Option {
	io := opts.IO
	if io == nil {
		var writerOpts []ui.WriterOption
		if opts.PagerDisabled {
			writerOpts = append(writerOpts, ui.WithPagerDisabled())
		}
		if opts.PagerOverride != "" {
			writerOpts = append(writerOpts, ui.WithPagerOverride(opts.PagerOverride))
		}
		writerOpts = append(writerOpts, ui.WithConfigGetter(a.Config.Get))
		io = command.StandardIO(writerOpts...)
	}

	userHome := opts.UserHome
	if userHome == "" {
		userHome, _ = os.UserHomeDir()
	}
	workDir := opts.WorkDir
	if workDir == "" {
		workDir, _ = os.Getwd()
	}
	home := ""
	if exe, err := os.Executable(); err == nil {
		home = filepath.Dir(exe)
	}

	vars := variables.New()
	_ = vars.Set(variables.ShowStacktrace, settings.ShowStacktrace)

	profile := settings.Profile
	if profile == "" {
		profile, _ = paths.ProfilePath()
	}

	return []shell.Option{
		shell.WithIO(io),
		shell.WithLogger(a.Logger),
		shell.WithHistory(a.Store),
		shell.WithVariables(vars),
		shell.WithVersion(Version),
		shell.WithHome(home),
		shell.WithUserHome(userHome),
		shell.WithUserDir(workDir),
		shell.WithPrompt(settings.Prompt),
		shell.WithProfile(profile),
	}
}

// Complete returns completion lines for a partial input line.
func (a *App) Complete(line string) []string {
	return a.Index.Lines(line)
}

// NewReader builds the console line reader for mode. An empty mode uses
// the console setting.
func (a *App) NewReader(mode string) (console.LineReader, error) {
	if mode == "" {
		mode = a.Settings.Console
	}
	return console.NewReader(console.ReaderOptions{
		Mode:        console.ParseMode(mode),
		Completer:   a.Complete,
		HistoryFile: paths.HistoryFilePath(),
	})
}

// Run reads and executes lines from reader until exit or end of input and
// returns the process exit code.
func (a *App) Run(ctx context.Context, reader console.LineReader) (int, error) {
	if err := a.Shell.Open(ctx); err != nil {
		return 1, err
	}
	loop := console.NewLoop(a.Shell, reader,
		console.WithLoopLogger(a.Logger),
		console.WithDefaultPrompt(a.Settings.Prompt),
	)
	return loop.Run(ctx)
}

// RunLine runs one line the way the -c flag does.
func (a *App) RunLine(ctx context.Context, line string) int {
	if err := a.Shell.Open(ctx); err != nil {
		a.Logger.Error("open shell: %v", err)
		return 1
	}
	return console.RunLine(ctx, a.Shell, line, nil)
}

// RunCommand runs one command with arguments taken as they are.
func (a *App) RunCommand(ctx context.Context, name string, args ...string) int {
	if err := a.Shell.Open(ctx); err != nil {
		a.Logger.Error("open shell: %v", err)
		return 1
	}
	return console.Report(a.Shell, a.Shell.ExecuteCommand(ctx, name, args...), nil)
}

// Banner is printed when an interactive session starts.
func (a *App) Banner() string {
	return a.Styler.Header("gsh "+Version) + " " +
		a.Styler.Muted("type 'help' for commands, 'exit' to leave")
}

// Close cleans up application resources.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}
	if a.Shell != nil {
		_ = a.Shell.Close()
	}
	if a.Store != nil {
		_ = a.Store.Close()
	}
	if a.Logger != nil {
		_ = a.Logger.Close()
	}
	return nil
}
