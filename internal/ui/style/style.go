// Package style provides semantic terminal styling using lipgloss.
//
// This package is the only place where lipgloss is imported for plain text
// output. All styling is semantic (Success, Warning, Error, etc.) rather
// than visual (RedBold, etc.).
//
// When disabled, all helpers return the input string unchanged with no ANSI codes.
package style

import (
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

var (
	mu      sync.RWMutex
	enabled bool
	colors  ColorConfig

	successStyle lipgloss.Style
	warningStyle lipgloss.Style
	errorStyle   lipgloss.Style
	infoStyle    lipgloss.Style
	headerStyle  lipgloss.Style
	mutedStyle   lipgloss.Style
	promptStyle  lipgloss.Style
)

// Init initializes the style package with the given enabled state and config.
// NO_COLOR and GSH_NO_COLOR disable styling regardless of enable.
//
// The cfg parameter supplies the theme and individual color overrides.
// If cfg is nil, default colors are used.
func Init(enable bool, cfg map[string]string) {
	mu.Lock()
	defer mu.Unlock()

	if os.Getenv("NO_COLOR") != "" || os.Getenv("GSH_NO_COLOR") != "" {
		enabled = false
		return
	}

	enabled = enable
	if !enabled {
		return
	}

	colors = LoadColorConfig(cfg)

	// Styles are rendered for a terminal even when lipgloss's own detection
	// says otherwise; callers decide whether color is wanted.
	lipgloss.SetColorProfile(termenv.ANSI256)

	successStyle = makeStyle(colors.Success)
	warningStyle = makeStyle(colors.Warning)
	errorStyle = makeStyle(colors.Error)
	infoStyle = makeStyle(colors.Info)
	mutedStyle = makeStyle(colors.Muted)
	headerStyle = makeStyle(colors.Header)
	promptStyle = makeStyle(colors.Prompt)
}

// makeStyle creates a lipgloss style from a color value.
// The value can be "bold" for bold styling, or an ANSI color number (0-255).
func makeStyle(value string) lipgloss.Style {
	if value == "bold" {
		return lipgloss.NewStyle().Bold(true)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(value))
}

// Enabled returns whether styling is currently enabled.
func Enabled() bool {
	mu.RLock()
	defer mu.RUnlock()
	return enabled
}

// GetColors returns the current color configuration.
func GetColors() ColorConfig {
	mu.RLock()
	defer mu.RUnlock()
	return colors
}

func render(s *lipgloss.Style, text string) string {
	mu.RLock()
	defer mu.RUnlock()
	if !enabled {
		return text
	}
	return s.Render(text)
}

// Success styles text for successful operations.
func Success(text string) string { return render(&successStyle, text) }

// Warning styles text for warning messages.
func Warning(text string) string { return render(&warningStyle, text) }

// Error styles text for error messages.
func Error(text string) string { return render(&errorStyle, text) }

// Info styles text for informational messages and command names.
func Info(text string) string { return render(&infoStyle, text) }

// Header styles text for section headers or titles.
func Header(text string) string { return render(&headerStyle, text) }

// Muted styles text for less important or secondary information.
func Muted(text string) string { return render(&mutedStyle, text) }

// Prompt styles the interactive prompt.
func Prompt(text string) string { return render(&promptStyle, text) }
