package registry

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Entry is one command in a command set.
type Entry struct {
	// Name is what the command is registered as, possibly path-qualified.
	Name string `yaml:"name" toml:"name"`

	// Action names the catalog constructor that builds the command.
	// Empty means the same as Name.
	Action string `yaml:"action" toml:"action"`

	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`
	Summary string `yaml:"summary,omitempty" toml:"summary,omitempty"`

	// Category overrides the constructor's category in help listings.
	Category string `yaml:"category,omitempty" toml:"category,omitempty"`

	// Line is the command line run by the "script" action.
	Line string `yaml:"line,omitempty" toml:"line,omitempty"`
}

// IsEnabled reports whether the entry should be registered.
func (e Entry) IsEnabled() bool {
	return e.Enabled == nil || *e.Enabled
}

// ActionName returns the catalog key for the entry.
func (e Entry) ActionName() string {
	if e.Action != "" {
		return e.Action
	}
	return e.Name
}

// CommandSet is an ordered batch of commands registered together.
type CommandSet struct {
	Name    string `yaml:"name" toml:"name"`
	Enabled *bool  `yaml:"enabled,omitempty" toml:"enabled,omitempty"`

	// Rank orders sets across every source; the highest rank wins a name.
	Rank int `yaml:"rank" toml:"rank"`

	// Requires is a semver constraint on the shell version, e.g. ">= 0.2".
	Requires string `yaml:"requires,omitempty" toml:"requires,omitempty"`

	Commands []Entry `yaml:"commands" toml:"commands"`
}

// IsEnabled reports whether the set should be registered.
func (s CommandSet) IsEnabled() bool {
	return s.Enabled == nil || *s.Enabled
}

// Manifest is the file form of a list of command sets.
type Manifest struct {
	Sets []CommandSet `yaml:"sets" toml:"sets"`
}

// LoadManifest reads a manifest. Files ending in .toml are decoded as TOML,
// anything else as YAML. A missing file yields no sets.
func LoadManifest(path string) ([]CommandSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data, filepath.Ext(path))
}

// ParseManifest decodes manifest data in the format named by ext
// (".toml", ".yaml" or ".yml").
func ParseManifest(data []byte, ext string) ([]CommandSet, error) {
	var m Manifest
	switch strings.ToLower(ext) {
	case ".toml":
		if _, err := toml.Decode(string(data), &m); err != nil {
			return nil, fmt.Errorf("parse toml manifest: %w", err)
		}
	default:
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("parse yaml manifest: %w", err)
		}
	}

	for i, set := range m.Sets {
		if set.Name == "" {
			m.Sets[i].Name = fmt.Sprintf("set-%d", i+1)
		}
		for j, e := range set.Commands {
			if e.Name == "" {
				return nil, fmt.Errorf("set %q: command %d has no name", m.Sets[i].Name, j+1)
			}
		}
	}
	return m.Sets, nil
}
