package config

import (
	"fmt"
	"strings"

	"github.com/footprint-tools/gshell/internal/domain"
)

// Provider implements domain.ConfigProvider over one config file.
type Provider struct {
	path string
}

// NewProvider creates a provider for the config file at path.
func NewProvider(path string) *Provider {
	return &Provider{path: path}
}

// Path returns the config file location.
func (p *Provider) Path() string {
	return p.path
}

// Get returns the value for a configuration key.
func (p *Provider) Get(key string) (string, bool) {
	return Get(p.path, key)
}

// GetAll returns all configuration values.
func (p *Provider) GetAll() (map[string]string, error) {
	return GetAll(p.path)
}

// Settings returns the typed configuration.
func (p *Provider) Settings() (Settings, error) {
	return LoadSettings(p.path)
}

// Set sets a configuration value, preserving comments and layout.
func (p *Provider) Set(key, value string) error {
	if !domain.IsValidConfigKey(key) {
		return fmt.Errorf("config: unknown key %q", key)
	}
	return WithLock(p.path, func() error {
		lines, err := ReadLines(p.path)
		if err != nil {
			return err
		}
		lines, _ = Set(lines, key, quote(value))
		return WriteLines(p.path, lines)
	})
}

// Unset removes a configuration value.
func (p *Provider) Unset(key string) error {
	return WithLock(p.path, func() error {
		lines, err := ReadLines(p.path)
		if err != nil {
			return err
		}
		lines, _ = Unset(lines, key)
		return WriteLines(p.path, lines)
	})
}

// Verify Provider implements domain.ConfigProvider
var _ domain.ConfigProvider = (*Provider)(nil)

// quote wraps values whose surrounding whitespace would otherwise be trimmed.
func quote(value string) string {
	if value != strings.TrimSpace(value) || strings.Contains(value, " #") {
		return `"` + value + `"`
	}
	return value
}
