// Package customapps manages spicetify custom apps.
package customapps

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"spiceman/internal/config"
	"spiceman/internal/gitclone"
)

// App is one subdirectory of the CustomApps directory.
type App struct {
	Name    string
	Path    string
	Enabled bool
}

// Setter applies config keys and runs spicetify apply.
type Setter interface {
	Set(key, value string) (string, error)
	Apply() (string, error)
}

// List returns the installed custom apps, marking those in enabled.
func List(dir string, enabled []string) ([]App, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("list custom apps %s: %w", dir, err)
	}

	enabledSet := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		enabledSet[name] = true
	}

	var apps []App
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		apps = append(apps, App{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Enabled: enabledSet[entry.Name()],
		})
	}
	return apps, nil
}

// Enabled returns the names of all enabled apps in list order.
func Enabled(apps []App) []string {
	var names []string
	for _, app := range apps {
		if app.Enabled {
			names = append(names, app.Name)
		}
	}
	return names
}

// Apply writes the enabled set into the config, mirrors it into the
// CLI's own config, and refreshes. CLI output is returned for the log
// pane.
func Apply(cfg *config.Config, setter Setter, enabled []string) (string, error) {
	cfg.SetCustomApps(enabled)
	if err := cfg.Save(); err != nil {
		return "", err
	}

	if out, err := setter.Set("custom_apps", strings.Join(enabled, ",")); err != nil {
		return out, fmt.Errorf("set custom apps: %w", err)
	}

	out, err := setter.Apply()
	if err != nil {
		return out, fmt.Errorf("apply custom apps: %w", err)
	}
	return out, nil
}

// Install clones a custom app repository into the CustomApps directory
// and returns the installed app name.
func Install(url, appsDir string) (string, error) {
	dest, err := gitclone.Clone(url, appsDir)
	if err != nil {
		return "", fmt.Errorf("install custom app: %w", err)
	}
	return filepath.Base(dest), nil
}
