// Package config reads and writes the spicetify config.ini file.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/ini.v1"
)

const (
	sectionAdditional = "AdditionalOptions"
	sectionSettings   = "Settings"

	keyExtensions       = "extensions"
	keyCustomApps       = "custom_apps"
	keyExtensionsFolder = "extensions_folder"
	keyCurrentTheme     = "current_theme"
)

// ErrNotFound is returned when no config file could be located.
var ErrNotFound = errors.New("spicetify config file not found")

// PathSource reports where the config file lives, typically the
// spicetify CLI itself.
type PathSource interface {
	ConfigPath() (string, error)
}

// Config is a loaded spicetify config file.
type Config struct {
	Path string
	file *ini.File
}

// Locate finds the config file, asking src first and falling back to
// well-known locations.
func Locate(src PathSource) (string, error) {
	if src != nil {
		if path, err := src.ConfigPath(); err == nil {
			if info, statErr := os.Stat(path); statErr == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", ErrNotFound
	}

	dirs := []string{
		filepath.Join(home, ".spicetify"),
		filepath.Join(home, ".config", "spicetify"),
		filepath.Join(home, "AppData", "Roaming", "spicetify"),
	}
	for _, dir := range dirs {
		for _, name := range []string{"config-xpui.ini", "config.ini"} {
			path := filepath.Join(dir, name)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path, nil
			}
		}
	}

	return "", ErrNotFound
}

// Load parses the config file at path. Key case is preserved and
// unrecognizable lines are tolerated, matching how spicetify itself
// writes the file.
func Load(path string) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
	}, path)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	return &Config{Path: path, file: file}, nil
}

// Save writes the config back to its file.
func (c *Config) Save() error {
	if err := c.file.SaveTo(c.Path); err != nil {
		return fmt.Errorf("save config %s: %w", c.Path, err)
	}
	return nil
}

// Extensions returns the enabled extensions from the pipe-separated
// config entry.
func (c *Config) Extensions() []string {
	return splitList(c.get(sectionAdditional, keyExtensions), "|")
}

// SetExtensions replaces the enabled extensions list.
func (c *Config) SetExtensions(names []string) {
	c.set(sectionAdditional, keyExtensions, strings.Join(names, "|"))
}

// CustomApps returns the enabled custom apps from the comma-separated
// config entry.
func (c *Config) CustomApps() []string {
	return splitList(c.get(sectionAdditional, keyCustomApps), ",")
}

// SetCustomApps replaces the enabled custom apps list.
func (c *Config) SetCustomApps(names []string) {
	c.set(sectionAdditional, keyCustomApps, strings.Join(names, ","))
}

// CurrentTheme returns the active theme name.
func (c *Config) CurrentTheme() string {
	return c.get(sectionSettings, keyCurrentTheme)
}

// SetCurrentTheme records the active theme name.
func (c *Config) SetCurrentTheme(name string) {
	c.set(sectionSettings, keyCurrentTheme, name)
}

// BaseDir returns the directory containing the config file.
func (c *Config) BaseDir() string {
	return filepath.Dir(c.Path)
}

// ExtensionsDir returns the extensions directory, honoring the
// extensions_folder override when set.
func (c *Config) ExtensionsDir() string {
	if dir := c.get(sectionAdditional, keyExtensionsFolder); dir != "" {
		return dir
	}
	return filepath.Join(c.BaseDir(), "Extensions")
}

// ThemesDir returns the themes directory next to the config file.
func (c *Config) ThemesDir() string {
	return filepath.Join(c.BaseDir(), "Themes")
}

// CustomAppsDir returns the custom apps directory next to the config file.
func (c *Config) CustomAppsDir() string {
	return filepath.Join(c.BaseDir(), "CustomApps")
}

// EnsureDirs creates the extension, theme and custom app directories.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.ExtensionsDir(), c.ThemesDir(), c.CustomAppsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

// Raw returns the config file text for the editor screen.
func (c *Config) Raw() (string, error) {
	data, err := os.ReadFile(c.Path)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// SaveRaw writes edited text verbatim and reloads the parsed view.
func (c *Config) SaveRaw(text string) error {
	if err := os.WriteFile(c.Path, []byte(text), 0644); err != nil {
		return fmt.Errorf("save config %s: %w", c.Path, err)
	}

	file, err := ini.LoadSources(ini.LoadOptions{
		SkipUnrecognizableLines: true,
	}, c.Path)
	if err != nil {
		return fmt.Errorf("reload config %s: %w", c.Path, err)
	}
	c.file = file
	return nil
}

func (c *Config) get(section, key string) string {
	return c.file.Section(section).Key(key).String()
}

func (c *Config) set(section, key, value string) {
	c.file.Section(section).Key(key).SetValue(value)
}

// splitList splits a delimited config value, dropping empty entries.
func splitList(value, sep string) []string {
	var out []string
	for _, part := range strings.Split(value, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
