package domain

import (
	"io"
	"time"
)

// ConfigProvider defines operations for reading and writing configuration.
type ConfigProvider interface {
	// Get returns the value for a configuration key.
	Get(key string) (string, bool)

	// GetAll returns all configuration values.
	GetAll() (map[string]string, error)

	// Set sets a configuration value.
	Set(key, value string) error

	// Unset removes a configuration value.
	Unset(key string) error
}

// Logger defines logging operations.
type Logger interface {
	// Debug logs a debug message.
	Debug(format string, args ...any)

	// Info logs an info message.
	Info(format string, args ...any)

	// Warn logs a warning message.
	Warn(format string, args ...any)

	// Error logs an error message.
	Error(format string, args ...any)

	// Close closes the logger.
	Close() error
}

// OutputWriter defines output operations.
type OutputWriter interface {
	io.Writer

	// Printf formats and prints to the output.
	Printf(format string, args ...any) (int, error)

	// Println prints a line to the output.
	Println(args ...any) (int, error)

	// Pager displays content through a pager if appropriate.
	Pager(content string)

	// Flush writes any buffered output.
	Flush() error
}

// Styler defines text styling operations.
type Styler interface {
	Enabled() bool
	Success(text string) string
	Warning(text string) string
	Error(text string) string
	Info(text string) string
	Muted(text string) string
	Header(text string) string
}

// AliasStore persists alias definitions across sessions.
type AliasStore interface {
	ListAliases() (map[string]string, error)
	PutAlias(name, target string) error
	DeleteAlias(name string) error
}

// PreferenceStore persists preference values that supply parameter defaults.
type PreferenceStore interface {
	GetPreference(key string) (string, bool, error)
	PutPreference(key, value string) error
	DeletePreference(key string) error
	ListPreferences() (map[string]string, error)
}

// HistoryEntry is one executed line.
type HistoryEntry struct {
	ID         int64
	SessionID  string
	Line       string
	Status     string
	ExitCode   int
	Duration   time.Duration
	ExecutedAt time.Time
}

// HistoryStore records executed lines.
type HistoryStore interface {
	AppendHistory(entry HistoryEntry) error
	RecentHistory(limit int) ([]HistoryEntry, error)
	ClearHistory() error
}
