package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/footprint-tools/gshell/internal/domain"
)

// EnvPrefix prefixes environment overrides, e.g. GSH_LOG_LEVEL.
const EnvPrefix = "GSH"

// Settings is the typed view of the configuration.
type Settings struct {
	Prompt         string `mapstructure:"prompt"`
	Console        string `mapstructure:"console"`
	HistorySize    int    `mapstructure:"history_size"`
	ShowStacktrace bool   `mapstructure:"show_stacktrace"`
	Profile        string `mapstructure:"profile"`
	Manifest       string `mapstructure:"manifest"`
	Pager          string `mapstructure:"pager"`
	DisplayDate    string `mapstructure:"display_date"`
	DisplayTime    string `mapstructure:"display_time"`
	Theme          string `mapstructure:"theme"`
	EnableLog      bool   `mapstructure:"enable_log"`
	LogLevel       string `mapstructure:"log_level"`
}

// Load layers the config file at path over the defaults in
// domain.ConfigKeys. Environment variables override both.
func Load(path string) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	for _, key := range domain.ConfigKeys {
		v.SetDefault(key.Name, key.Default)
	}

	lines, err := ReadLines(path)
	if err != nil {
		return v, err
	}

	cfg, err := Parse(lines)
	if err != nil {
		return v, err
	}

	values := make(map[string]any, len(cfg))
	for k, val := range cfg {
		values[k] = val
	}
	if err := v.MergeConfigMap(values); err != nil {
		return v, err
	}

	return v, nil
}

// LoadSettings decodes the layered configuration into Settings.
func LoadSettings(path string) (Settings, error) {
	var s Settings
	v, err := Load(path)
	if err != nil {
		return s, err
	}
	if err := v.Unmarshal(&s); err != nil {
		return s, err
	}
	return s, nil
}

// Get returns the value for a config key, falling back to its default.
// Returns the value and whether the key is known (in file, env or defaults).
func Get(path, key string) (string, bool) {
	v, _ := Load(path)
	if !v.IsSet(key) {
		return "", false
	}
	return v.GetString(key), true
}

// GetAll returns all config values (user overrides merged with defaults).
func GetAll(path string) (map[string]string, error) {
	v, err := Load(path)
	result := make(map[string]string)
	for _, key := range v.AllKeys() {
		result[key] = v.GetString(key)
	}
	return result, err
}
