// Package log writes the shell's diagnostic log to a private file.
package log

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/footprint-tools/gshell/internal/domain"
)

// Level is the severity of a log message.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

func (l Level) zap() zapcore.Level {
	switch l {
	case LevelDebug:
		return zapcore.DebugLevel
	case LevelInfo:
		return zapcore.InfoLevel
	case LevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}

// ParseLevel converts a string to a Level.
// Valid values: "debug", "info", "warn", "error" (case insensitive).
// Returns LevelWarn if the string is not recognized.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return LevelDebug
	case "info":
		return LevelInfo
	case "warn":
		return LevelWarn
	case "error":
		return LevelError
	default:
		return LevelWarn
	}
}

// Logger writes leveled messages to a file through zap. It is safe for
// concurrent use.
type Logger struct {
	mu      sync.Mutex
	file    *os.File
	sugar   *zap.SugaredLogger
	enabled atomic.Bool
}

var (
	defaultLogger   *Logger
	defaultLoggerMu sync.RWMutex
)

// Init installs the package-level logger.
func Init(logPath string, minLevel Level) error {
	l, err := New(logPath, minLevel)
	if err != nil {
		return err
	}
	defaultLoggerMu.Lock()
	old := defaultLogger
	defaultLogger = l
	defaultLoggerMu.Unlock()
	if old != nil {
		_ = old.Close()
	}
	return nil
}

// New creates a logger appending to logPath. The directory is created 0700
// and the file is kept at 0600.
func New(logPath string, minLevel Level) (*Logger, error) {
	logDir := filepath.Dir(logPath)
	if err := os.MkdirAll(logDir, 0700); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	if info, err := os.Stat(logPath); err == nil && info.Mode().Perm() != 0600 {
		if err := os.Chmod(logPath, 0600); err != nil {
			return nil, fmt.Errorf("chmod existing log file: %w", err)
		}
	}

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}

	l := &Logger{file: file, sugar: newSugar(file, minLevel)}
	l.enabled.Store(true)
	return l, nil
}

// NewWriterLogger logs to an arbitrary writer, e.g. stderr in debug runs.
func NewWriterLogger(w io.Writer, minLevel Level) *Logger {
	l := &Logger{sugar: newSugar(w, minLevel)}
	l.enabled.Store(true)
	return l
}

func newSugar(w io.Writer, minLevel Level) *zap.SugaredLogger {
	encCfg := zapcore.EncoderConfig{
		TimeKey:          "ts",
		LevelKey:         "level",
		MessageKey:       "msg",
		LineEnding:       zapcore.DefaultLineEnding,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		EncodeDuration:   zapcore.StringDurationEncoder,
		ConsoleSeparator: " ",
		EncodeTime: func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
			enc.AppendString("[" + t.Format("2006-01-02 15:04:05") + "]")
		},
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encCfg),
		zapcore.AddSync(w),
		zap.NewAtomicLevelAt(minLevel.zap()),
	)
	return zap.New(core).Sugar()
}

// Close flushes and closes the log file.
func (l *Logger) Close() error {
	if l == nil || l.sugar == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_ = l.sugar.Sync()
	if l.file == nil {
		return nil
	}
	err := l.file.Close()
	l.file = nil
	l.enabled.Store(false)
	return err
}

// SetEnabled turns logging on or off.
func (l *Logger) SetEnabled(enabled bool) {
	if l == nil {
		return
	}
	l.enabled.Store(enabled)
}

func (l *Logger) active() bool {
	return l != nil && l.sugar != nil && l.enabled.Load()
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...any) {
	if l.active() {
		l.sugar.Debugf(format, args...)
	}
}

// Info logs an informational message.
func (l *Logger) Info(format string, args ...any) {
	if l.active() {
		l.sugar.Infof(format, args...)
	}
}

// Warn logs a warning.
func (l *Logger) Warn(format string, args ...any) {
	if l.active() {
		l.sugar.Warnf(format, args...)
	}
}

// Error logs an error.
func (l *Logger) Error(format string, args ...any) {
	if l.active() {
		l.sugar.Errorf(format, args...)
	}
}

// Writer returns an io.Writer that logs each write at level.
func (l *Logger) Writer(level Level) io.Writer {
	return &logWriter{logger: l, level: level}
}

type logWriter struct {
	logger *Logger
	level  Level
}

func (w *logWriter) Write(p []byte) (n int, err error) {
	msg := strings.TrimRight(string(p), "\n")
	switch w.level {
	case LevelDebug:
		w.logger.Debug("%s", msg)
	case LevelInfo:
		w.logger.Info("%s", msg)
	case LevelError:
		w.logger.Error("%s", msg)
	default:
		w.logger.Warn("%s", msg)
	}
	return len(p), nil
}

func current() *Logger {
	defaultLoggerMu.RLock()
	defer defaultLoggerMu.RUnlock()
	return defaultLogger
}

// Debug logs to the package-level logger.
func Debug(format string, args ...any) { current().Debug(format, args...) }

// Info logs to the package-level logger.
func Info(format string, args ...any) { current().Info(format, args...) }

// Warn logs to the package-level logger.
func Warn(format string, args ...any) { current().Warn(format, args...) }

// Error logs to the package-level logger.
func Error(format string, args ...any) { current().Error(format, args...) }

// Close closes the package-level logger.
func Close() error {
	return current().Close()
}

// GetLogger returns the package-level logger, or nil before Init.
func GetLogger() *Logger {
	return current()
}

// NopLogger is a logger that discards all messages.
type NopLogger struct{}

func (NopLogger) Debug(_ string, _ ...any) {}
func (NopLogger) Info(_ string, _ ...any)  {}
func (NopLogger) Warn(_ string, _ ...any)  {}
func (NopLogger) Error(_ string, _ ...any) {}
func (NopLogger) Close() error             { return nil }

// Verify Logger implements domain.Logger
var _ domain.Logger = (*Logger)(nil)
var _ domain.Logger = NopLogger{}
