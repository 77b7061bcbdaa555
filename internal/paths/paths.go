// Package paths resolves where the shell keeps its files.
package paths

import (
	"os"
	"path/filepath"
	"runtime"
)

const appDirName = "gshell"

// AppDataDir returns the application data directory for the database and log.
// Uses os.UserConfigDir() which returns:
//   - macOS: ~/Library/Application Support
//   - Linux: $XDG_CONFIG_HOME or ~/.config
//   - Windows: %AppData% (roaming)
func AppDataDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "."
	}

	path := filepath.Join(dir, appDirName)
	_ = os.MkdirAll(path, 0700)

	return path
}

// AppLocalDataDir returns the OS-appropriate local data directory, used for
// command set manifests.
//   - macOS: ~/Library/Application Support/gshell
//   - Linux: $XDG_DATA_HOME/gshell or ~/.local/share/gshell
//   - Windows: %LOCALAPPDATA%\gshell
func AppLocalDataDir() string {
	var base string

	switch runtime.GOOS {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "."
		}
		base = filepath.Join(home, "Library", "Application Support")

	case "windows":
		base = os.Getenv("LOCALAPPDATA")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, "AppData", "Local")
		}

	default:
		base = os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "."
			}
			base = filepath.Join(home, ".local", "share")
		}
	}

	return filepath.Join(base, appDirName)
}

// ConfigFilePath returns ~/.gshrc.
func ConfigFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".gshrc"), nil
}

// ProfilePath returns the default startup script, ~/.gsh_profile.
func ProfilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(home, ".gsh_profile"), nil
}

// LogFilePath returns the path to the application log file.
func LogFilePath() string {
	return filepath.Join(AppDataDir(), "gsh.log")
}

// DBPath returns the path to the sqlite database holding aliases,
// preferences and history.
func DBPath() string {
	return filepath.Join(AppDataDir(), "gshell.db")
}

// ManifestPath returns the default command set manifest.
func ManifestPath() string {
	return filepath.Join(AppLocalDataDir(), "commands.yaml")
}

// HistoryFilePath returns the line editor's history file.
func HistoryFilePath() string {
	return filepath.Join(AppDataDir(), "history")
}
