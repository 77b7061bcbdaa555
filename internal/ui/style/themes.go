package style

import (
	"os"
	"strings"

	"github.com/muesli/termenv"
)

// ColorConfig holds all configurable colors for the UI.
// Values can be ANSI color numbers (0-255) or "bold" for bold styling.
type ColorConfig struct {
	Success string
	Warning string
	Error   string
	Info    string
	Muted   string
	Header  string
	Prompt  string
}

// BaseThemeNames lists available theme bases (auto-detects dark/light).
var BaseThemeNames = []string{"default", "mono", "contrast"}

// Themes contains the built-in color themes.
// Dark themes use bright colors, light themes use dark ones.
var Themes = map[string]ColorConfig{
	"default-dark": {
		Success: "10",
		Warning: "11",
		Error:   "9",
		Info:    "14",
		Muted:   "245",
		Header:  "bold",
		Prompt:  "12",
	},
	"default-light": {
		Success: "28",
		Warning: "130",
		Error:   "124",
		Info:    "25",
		Muted:   "243",
		Header:  "bold",
		Prompt:  "19",
	},
	"mono-dark": {
		Success: "255",
		Warning: "250",
		Error:   "bold",
		Info:    "252",
		Muted:   "242",
		Header:  "bold",
		Prompt:  "255",
	},
	"mono-light": {
		Success: "232",
		Warning: "238",
		Error:   "bold",
		Info:    "235",
		Muted:   "245",
		Header:  "bold",
		Prompt:  "232",
	},
	"contrast-dark": {
		Success: "46",
		Warning: "226",
		Error:   "196",
		Info:    "51",
		Muted:   "250",
		Header:  "bold",
		Prompt:  "231",
	},
	"contrast-light": {
		Success: "22",
		Warning: "94",
		Error:   "88",
		Info:    "18",
		Muted:   "240",
		Header:  "bold",
		Prompt:  "16",
	},
}

// colorConfigKeys maps config keys to ColorConfig fields.
var colorConfigKeys = map[string]string{
	"color_success": "Success",
	"color_warning": "Warning",
	"color_error":   "Error",
	"color_info":    "Info",
	"color_muted":   "Muted",
	"color_header":  "Header",
	"color_prompt":  "Prompt",
}

// ResolveThemeName appends -dark or -light to a base theme name based on the
// terminal background. Names that already carry a variant are returned as is.
func ResolveThemeName(name string) string {
	if strings.HasSuffix(name, "-dark") || strings.HasSuffix(name, "-light") {
		return name
	}
	if termenv.HasDarkBackground() {
		return name + "-dark"
	}
	return name + "-light"
}

// LoadColorConfig builds a ColorConfig from the given configuration map.
// Resolution priority:
// 1. Environment variable (GSH_COLOR_*)
// 2. Config file value
// 3. Theme value (from the theme key)
// 4. Default theme (auto-detected based on terminal background)
func LoadColorConfig(cfg map[string]string) ColorConfig {
	themeName := "default"
	if envTheme := os.Getenv("GSH_THEME"); envTheme != "" {
		themeName = envTheme
	} else if cfgTheme, ok := cfg["theme"]; ok && cfgTheme != "" {
		themeName = cfgTheme
	}

	theme, ok := Themes[ResolveThemeName(themeName)]
	if !ok {
		theme = Themes["default-dark"]
	}

	result := theme
	for configKey, field := range colorConfigKeys {
		if envVal := os.Getenv("GSH_" + strings.ToUpper(configKey)); envVal != "" {
			setColorField(&result, field, envVal)
			continue
		}
		if cfgVal, ok := cfg[configKey]; ok && cfgVal != "" {
			setColorField(&result, field, cfgVal)
		}
	}

	return result
}

// setColorField sets a field on ColorConfig by name.
func setColorField(c *ColorConfig, field, value string) {
	switch field {
	case "Success":
		c.Success = value
	case "Warning":
		c.Warning = value
	case "Error":
		c.Error = value
	case "Info":
		c.Info = value
	case "Muted":
		c.Muted = value
	case "Header":
		c.Header = value
	case "Prompt":
		c.Prompt = value
	}
}
