// Package config reads the prmpt TOML configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
)

const (
	AppName  = "prmpt"
	FileName = "prmpt.toml"
)

type Config struct {
	Prompt    PromptConfig            `toml:"prompt"`
	Log       LogConfig               `toml:"log"`
	Palette   map[string]PaletteGroup `toml:"palette"`
	Functions map[string]string       `toml:"functions"`
}

type PromptConfig struct {
	// File is the script to render, relative to the config directory unless
	// absolute.
	File string `toml:"file"`
	// Wrap controls the non-printing markers around escape codes.
	Wrap bool `toml:"wrap"`
	// Shell overrides $SHELL when choosing the marker family.
	Shell string `toml:"shell"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

type PaletteGroup struct {
	Foreground string `toml:"foreground"`
	Background string `toml:"background"`
	Style      string `toml:"style"`
}

// PaletteEntry is a palette group with its name, as returned by
// PaletteEntries.
type PaletteEntry struct {
	Name string
	PaletteGroup
}

func NewDefaultConfig() *Config {
	return &Config{
		Prompt: PromptConfig{
			File:  "default.prmpt",
			Wrap:  true,
			Shell: "",
		},
		Log: LogConfig{
			Level: "info",
		},
		Palette:   map[string]PaletteGroup{},
		Functions: map[string]string{},
	}
}

// Dir is the directory holding the configuration file and scripts.
func Dir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultPath is where the configuration file is looked up by default.
func DefaultPath() string {
	return filepath.Join(Dir(), FileName)
}

// LogPath is where the log file is written.
func LogPath() string {
	return filepath.Join(xdg.StateHome, AppName, AppName+".log")
}

func LoadConfigFromFile(path string) (*Config, error) {
	config := NewDefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil // no config file, return defaults
	}

	meta, err := toml.DecodeFile(path, config)
	if err != nil {
		return nil, fmt.Errorf("failed to decode TOML config: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("unknown config key %q", undecoded[0].String())
	}

	return config, nil
}

// ScriptPath resolves the prompt script against the directory of the
// configuration file at configPath.
func (c *Config) ScriptPath(configPath string) string {
	if c.Prompt.File == "" || filepath.IsAbs(c.Prompt.File) {
		return c.Prompt.File
	}
	return filepath.Join(filepath.Dir(configPath), c.Prompt.File)
}

// PaletteEntries returns the palette groups sorted by name, so that
// registration order does not depend on map iteration.
func (c *Config) PaletteEntries() []PaletteEntry {
	entries := make([]PaletteEntry, 0, len(c.Palette))
	for name, group := range c.Palette {
		entries = append(entries, PaletteEntry{Name: name, PaletteGroup: group})
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name < entries[j].Name
	})
	return entries
}
