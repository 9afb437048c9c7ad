package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func TestLoadConfigMissingFile(t *testing.T) {
	config, err := LoadConfigFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	if err != nil {
		t.Fatalf("Expected defaults, got error: %v", err)
	}
	if diff := cmp.Diff(NewDefaultConfig(), config); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
[prompt]
file = "/etc/prmpt/work.prmpt"
wrap = false
shell = "zsh"

[log]
level = "debug"

[palette.info1]
foreground = "red"

[palette.alert]
foreground = "white"
background = "red"
style = "bold"

[functions]
at = '\green{\user}@\hostname'
`)

	config, err := LoadConfigFromFile(path)
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}

	expected := &Config{
		Prompt: PromptConfig{File: "/etc/prmpt/work.prmpt", Wrap: false, Shell: "zsh"},
		Log:    LogConfig{Level: "debug"},
		Palette: map[string]PaletteGroup{
			"info1": {Foreground: "red"},
			"alert": {Foreground: "white", Background: "red", Style: "bold"},
		},
		Functions: map[string]string{
			"at": `\green{\user}@\hostname`,
		},
	}
	if diff := cmp.Diff(expected, config); diff != "" {
		t.Errorf("Config mismatch (-want +got):\n%s", diff)
	}

	names := []string{}
	for _, e := range config.PaletteEntries() {
		names = append(names, e.Name)
	}
	if diff := cmp.Diff([]string{"alert", "info1"}, names); diff != "" {
		t.Errorf("PaletteEntries order mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfigPartialKeepsDefaults(t *testing.T) {
	config, err := LoadConfigFromFile(writeConfig(t, "[log]\nlevel = \"warn\"\n"))
	if err != nil {
		t.Fatalf("LoadConfigFromFile failed: %v", err)
	}
	if !config.Prompt.Wrap || config.Prompt.File != "default.prmpt" {
		t.Errorf("Expected prompt defaults to survive, got %+v", config.Prompt)
	}
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[prompt\n"},
		{"wrong type", "[prompt]\nwrap = \"yes\"\n"},
		{"unknown key", "[prompt]\ncolour = true\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := LoadConfigFromFile(writeConfig(t, tt.content)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestScriptPath(t *testing.T) {
	config := NewDefaultConfig()
	if got := config.ScriptPath("/home/a/.config/prmpt/prmpt.toml"); got != "/home/a/.config/prmpt/default.prmpt" {
		t.Errorf("Unexpected relative script path %q", got)
	}

	config.Prompt.File = "/tmp/x.prmpt"
	if got := config.ScriptPath("/home/a/.config/prmpt/prmpt.toml"); got != "/tmp/x.prmpt" {
		t.Errorf("Unexpected absolute script path %q", got)
	}
}
