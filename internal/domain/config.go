package domain

// ConfigKey defines a configuration key with its metadata.
type ConfigKey struct {
	Name        string
	Default     string
	Description string
	Section     string // Section for grouping in config listings
	Hidden      bool   // Hidden keys are not shown in help or config list
	HideIfEmpty bool   // Only show in config list if explicitly set
}

// ConfigKeys defines all available configuration keys.
// This is the single source of truth for configuration.
var ConfigKeys = []ConfigKey{
	// Shell
	{
		Name:        "prompt",
		Default:     "${shell.program}:${shell.user.dir}> ",
		Description: "Prompt template; ${name} references are expanded before each line",
		Section:     "Shell",
	},
	{
		Name:        "console",
		Default:     "auto",
		Description: "Console front end: auto, line, tui, plain",
		Section:     "Shell",
	},
	{
		Name:        "history_size",
		Default:     "500",
		Description: "Number of history lines kept for recall",
		Section:     "Shell",
	},
	{
		Name:        "show_stacktrace",
		Default:     "false",
		Description: "Print the full cause chain of failures (true/false)",
		Section:     "Shell",
	},
	{
		Name:        "profile",
		Default:     "",
		Description: "Script sourced when a session opens",
		Section:     "Shell",
		HideIfEmpty: true,
	},
	{
		Name:        "manifest",
		Default:     "",
		Description: "Command-set manifest (YAML or TOML) loaded at startup and watched",
		Section:     "Shell",
		HideIfEmpty: true,
	},
	// Display
	{
		Name:        "pager",
		Default:     "less -FRSX",
		Description: "Pager command for long help output",
		Section:     "Display",
	},
	{
		Name:        "display_date",
		Default:     "dd/mm/yyyy",
		Description: "Date format in history listings: dd/mm/yyyy, mm/dd/yyyy, yyyy-mm-dd, or a Go layout",
		Section:     "Display",
	},
	{
		Name:        "display_time",
		Default:     "24h",
		Description: "Clock format in history listings: 24h or 12h",
		Section:     "Display",
	},
	{
		Name:        "theme",
		Default:     "default",
		Description: "Color theme: default, mono, contrast",
		Section:     "Display",
	},
	// Logging
	{
		Name:        "enable_log",
		Default:     "true",
		Description: "Enable logging to file (true/false)",
		Section:     "Logging",
	},
	{
		Name:        "log_level",
		Default:     "info",
		Description: "Minimum log level: debug, info, warn, error",
		Section:     "Logging",
	},
	// Color Overrides
	{
		Name:        "color_success",
		Description: "Override success color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_warning",
		Description: "Override warning color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_error",
		Description: "Override error color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_info",
		Description: "Override info color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_muted",
		Description: "Override muted text color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_header",
		Description: "Override header style from current theme (ANSI 0-255 or 'bold')",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
	{
		Name:        "color_prompt",
		Description: "Override prompt color from current theme (ANSI 0-255)",
		Section:     "Color Overrides",
		HideIfEmpty: true,
	},
}

// configKeyMap is a lookup map for configuration keys.
var configKeyMap map[string]ConfigKey

func init() {
	configKeyMap = make(map[string]ConfigKey, len(ConfigKeys))
	for _, key := range ConfigKeys {
		configKeyMap[key.Name] = key
	}
}

// GetConfigKey returns the ConfigKey for a given name.
func GetConfigKey(name string) (ConfigKey, bool) {
	key, ok := configKeyMap[name]
	return key, ok
}

// IsValidConfigKey checks if a key name is valid.
func IsValidConfigKey(name string) bool {
	_, ok := configKeyMap[name]
	return ok
}

// VisibleConfigKeys returns all non-hidden configuration keys.
func VisibleConfigKeys() []ConfigKey {
	var visible []ConfigKey
	for _, key := range ConfigKeys {
		if !key.Hidden {
			visible = append(visible, key)
		}
	}
	return visible
}
