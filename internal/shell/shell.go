// Package shell holds the session: the durable variable scope, the streams
// and the history of one user driving the dispatcher.
package shell

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/footprint-tools/gshell/internal/command"
	"github.com/footprint-tools/gshell/internal/dispatchers"
	"github.com/footprint-tools/gshell/internal/domain"
	"github.com/footprint-tools/gshell/internal/log"
	"github.com/footprint-tools/gshell/internal/variables"
)

const (
	DefaultProgram = "gsh"
	DefaultPrompt  = "${shell.program}:${shell.user.dir}> "
)

// Shell is one session. Lines run one at a time.
type Shell struct {
	id         string
	dispatcher *dispatchers.Dispatcher
	vars       *variables.Variables
	io         *command.IO
	history    domain.HistoryStore
	logger     domain.Logger

	program  string
	version  string
	home     string
	userHome string
	userDir  string
	prompt   string
	profile  string

	mu     sync.Mutex
	opened bool

	// run serializes the lines of the session.
	run sync.Mutex
}

type runningKey struct{}

// serialize takes the run lock unless ctx already belongs to a line of s,
// so a command may execute further lines in its own session.
func (s *Shell) serialize(ctx context.Context) (context.Context, func()) {
	if ctx == nil {
		ctx = context.Background()
	}
	if ctx.Value(runningKey{}) == s {
		return ctx, func() {}
	}
	s.run.Lock()
	return context.WithValue(ctx, runningKey{}, s), s.run.Unlock
}

// Option configures a Shell.
type Option func(*Shell)

func WithIO(io *command.IO) Option {
	return func(s *Shell) { s.io = io }
}

func WithLogger(l domain.Logger) Option {
	return func(s *Shell) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHistory records every top-level line in h.
func WithHistory(h domain.HistoryStore) Option {
	return func(s *Shell) { s.history = h }
}

// WithVariables makes vars the session scope. Reserved names already bound
// there are kept as they are when the shell opens.
func WithVariables(vars *variables.Variables) Option {
	return func(s *Shell) {
		if vars != nil {
			s.vars = vars
		}
	}
}

func WithProgram(name string) Option {
	return func(s *Shell) { s.program = name }
}

func WithVersion(v string) Option {
	return func(s *Shell) { s.version = v }
}

// WithHome sets the directory the shell is installed in.
func WithHome(dir string) Option {
	return func(s *Shell) { s.home = dir }
}

func WithUserHome(dir string) Option {
	return func(s *Shell) { s.userHome = dir }
}

// WithUserDir sets the initial working directory.
func WithUserDir(dir string) Option {
	return func(s *Shell) { s.userDir = dir }
}

func WithPrompt(prompt string) Option {
	return func(s *Shell) { s.prompt = prompt }
}

// WithProfile names a script sourced when the shell opens. A missing file
// is skipped.
func WithProfile(path string) Option {
	return func(s *Shell) { s.profile = path }
}

// New creates a session over d. It is opened by Open or by the first
// execution.
func New(d *dispatchers.Dispatcher, opts ...Option) *Shell {
	s := &Shell{
		id:         uuid.NewString(),
		dispatcher: d,
		vars:       variables.New(),
		logger:     log.NopLogger{},
		program:    DefaultProgram,
		prompt:     DefaultPrompt,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.io == nil {
		s.io = command.StandardIO()
	}
	return s
}

// ID returns the session id.
func (s *Shell) ID() string {
	return s.id
}

// Variables returns the session scope.
func (s *Shell) Variables() *variables.Variables {
	return s.vars
}

// IO returns the session streams.
func (s *Shell) IO() *command.IO {
	return s.io
}

// Dispatcher returns the dispatcher lines run through.
func (s *Shell) Dispatcher() *dispatchers.Dispatcher {
	return s.dispatcher
}

// IsOpened reports whether Open has completed.
func (s *Shell) IsOpened() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// Open binds the reserved variables and sources the profile. It runs once;
// later calls do nothing.
func (s *Shell) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.opened {
		s.mu.Unlock()
		return nil
	}
	s.opened = true
	s.mu.Unlock()

	if err := s.setDefaults(); err != nil {
		return fmt.Errorf("failed to set session variables: %w", err)
	}

	if s.profile != "" {
		s.sourceProfile(ctx)
	}

	s.logger.Debug("session %s opened", s.id)
	return nil
}

func (s *Shell) setDefaults() error {
	userHome := s.userHome
	if userHome == "" {
		userHome, _ = os.UserHomeDir()
	}
	userDir := s.userDir
	if userDir == "" {
		userDir, _ = os.Getwd()
	}
	if userDir == "" {
		userDir = userHome
	}

	defaults := []struct {
		name     string
		value    any
		readOnly bool
	}{
		{variables.ShellHome, s.home, true},
		{variables.ShellProgram, s.program, true},
		{variables.ShellVersion, s.version, true},
		{variables.ShellUserHome, userHome, true},
		{variables.ShellUserDir, userDir, false},
		{variables.ShellGroup, "", false},
		{variables.ShellPrompt, s.prompt, false},
		{variables.ShellHistory, s.history != nil, false},
		{variables.ShowStacktrace, false, false},
	}

	for _, d := range defaults {
		if s.vars.Contains(d.name) {
			continue
		}
		var opts []variables.Option
		if d.readOnly {
			opts = append(opts, variables.ReadOnly())
		}
		if err := s.vars.Set(d.name, d.value, opts...); err != nil {
			return err
		}
	}
	return nil
}

func (s *Shell) sourceProfile(ctx context.Context) {
	f, err := os.Open(s.profile)
	if os.IsNotExist(err) {
		return
	}
	if err != nil {
		s.logger.Warn("open profile %s: %v", s.profile, err)
		return
	}
	defer f.Close()

	r := RunScript(f, s.profile, func(line string) command.Result {
		return s.dispatcher.Execute(ctx, s, s.vars, line)
	})
	switch r.Status {
	case command.StatusFailure:
		s.logger.Warn("profile %s: %v", s.profile, r.Err)
		_, _ = s.io.Err.Printf("%s: %v\n", s.profile, r.Err)
		_ = s.io.Err.Flush()
	case command.StatusExit:
		s.logger.Warn("profile %s requested exit %d, ignored", s.profile, r.ExitCode)
	}
}

// Execute runs line in the session scope and records it in the history.
// Lines of one session run one at a time.
func (s *Shell) Execute(ctx context.Context, line string) command.Result {
	ctx, done := s.serialize(ctx)
	defer done()

	if err := s.Open(ctx); err != nil {
		return command.Failure(err)
	}

	start := time.Now()
	r := s.dispatcher.Execute(ctx, s, s.vars, line)
	s.record(line, r, start)
	return r
}

// ExecuteCommand runs name with args taken as they are.
func (s *Shell) ExecuteCommand(ctx context.Context, name string, args ...string) command.Result {
	ctx, done := s.serialize(ctx)
	defer done()

	if err := s.Open(ctx); err != nil {
		return command.Failure(err)
	}
	return s.dispatcher.ExecuteCommand(ctx, s, s.vars, name, args...)
}

func (s *Shell) record(line string, r command.Result, start time.Time) {
	if s.history == nil || strings.TrimSpace(line) == "" {
		return
	}
	if !s.vars.GetBool(variables.ShellHistory, true) {
		return
	}

	exitCode := r.ExitCode
	if r.Status == command.StatusFailure {
		exitCode = 1
		if e, ok := r.Err.(interface{ GetExitCode() int }); ok {
			exitCode = e.GetExitCode()
		}
	}

	entry := domain.HistoryEntry{
		SessionID:  s.id,
		Line:       line,
		Status:     r.Status.String(),
		ExitCode:   exitCode,
		Duration:   time.Since(start),
		ExecutedAt: start,
	}
	if err := s.history.AppendHistory(entry); err != nil {
		s.logger.Warn("record history: %v", err)
	}
}

// Close flushes the streams. The session cannot be reopened.
func (s *Shell) Close() error {
	s.logger.Debug("closing session %s", s.id)
	return s.io.Flush()
}

var _ dispatchers.Session = (*Shell)(nil)
