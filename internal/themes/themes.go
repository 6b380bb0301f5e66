// Package themes manages spicetify themes.
package themes

import (
	"fmt"
	"os"
	"path/filepath"

	"spiceman/internal/config"
	"spiceman/internal/gitclone"
)

// Theme is one subdirectory of the Themes directory.
type Theme struct {
	Name    string
	Path    string
	Current bool
}

// Setter applies config keys and runs spicetify apply.
type Setter interface {
	Set(key, value string) (string, error)
	Apply() (string, error)
}

// List returns the installed themes, marking the one named current.
func List(dir, current string) ([]Theme, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list themes %s: %w", dir, err)
	}

	var themes []Theme
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		themes = append(themes, Theme{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Current: entry.Name() == current,
		})
	}
	return themes, nil
}

// Apply makes name the active theme: the config records it and the CLI
// switches and refreshes. CLI output is returned for the log pane.
func Apply(cfg *config.Config, setter Setter, name string) (string, error) {
	cfg.SetCurrentTheme(name)
	if err := cfg.Save(); err != nil {
		return "", err
	}

	if out, err := setter.Set("current_theme", name); err != nil {
		return out, fmt.Errorf("set theme %s: %w", name, err)
	}

	out, err := setter.Apply()
	if err != nil {
		return out, fmt.Errorf("apply theme %s: %w", name, err)
	}
	return out, nil
}

// Install clones a theme repository into the themes directory and
// returns the installed theme name.
func Install(url, themesDir string) (string, error) {
	dest, err := gitclone.Clone(url, themesDir)
	if err != nil {
		return "", fmt.Errorf("install theme: %w", err)
	}
	return filepath.Base(dest), nil
}
