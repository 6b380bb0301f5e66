// Package settings persists app preferences under ~/.config/spiceman.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds the application preferences
type Settings struct {
	UITheme        string   `json:"ui_theme"`        // Color scheme for the TUI
	VisibleTabs    []string `json:"visible_tabs"`    // Tabs shown on the main screen
	EncryptedToken string   `json:"encrypted_token"` // GitHub token, encrypted
	FirstRun       bool     `json:"-"`               // Is this the first run?
}

// settingsFileName is the name of the settings file
const settingsFileName = "spiceman.json"

// DefaultTabs is the tab order shown until the user customizes it.
var DefaultTabs = []string{"Extensions", "Themes", "Custom Apps", "Marketplace", "Editor", "Settings"}

// Default returns the default settings
func Default() *Settings {
	return &Settings{
		UITheme:     "dark",
		VisibleTabs: append([]string(nil), DefaultTabs...),
		FirstRun:    true,
	}
}

// Dir returns the directory containing spiceman config files
func Dir() string {
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".config", "spiceman")
}

// Path returns the path to the settings file
func Path() string {
	return filepath.Join(Dir(), settingsFileName)
}

// SourcesPath returns the path to the marketplace sources file
func SourcesPath() string {
	return filepath.Join(Dir(), "sources.yaml")
}

// Load loads the settings from file
func Load() (*Settings, error) {
	return loadFrom(Path())
}

func loadFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// First run - return defaults
			return Default(), nil
		}
		return nil, err
	}

	var s Settings
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, err
	}

	if len(s.VisibleTabs) == 0 {
		s.VisibleTabs = append([]string(nil), DefaultTabs...)
	}
	s.FirstRun = false
	return &s, nil
}

// Save saves the settings to file
func (s *Settings) Save() error {
	return s.saveTo(Path())
}

func (s *Settings) saveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// TabVisible reports whether a tab is enabled.
func (s *Settings) TabVisible(name string) bool {
	for _, tab := range s.VisibleTabs {
		if tab == name {
			return true
		}
	}
	return false
}

// ToggleTab flips a tab's visibility, preserving the default order.
func (s *Settings) ToggleTab(name string) {
	if s.TabVisible(name) {
		var kept []string
		for _, tab := range s.VisibleTabs {
			if tab != name {
				kept = append(kept, tab)
			}
		}
		s.VisibleTabs = kept
		return
	}

	var out []string
	for _, tab := range DefaultTabs {
		if tab == name || s.TabVisible(tab) {
			out = append(out, tab)
		}
	}
	s.VisibleTabs = out
}

// HasToken reports whether an encrypted token is stored.
func (s *Settings) HasToken() bool {
	return s.EncryptedToken != ""
}
