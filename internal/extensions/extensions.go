// Package extensions manages the JavaScript extensions in the spicetify
// extensions directory.
package extensions

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"spiceman/internal/config"
)

// Extension is one .js file in the extensions directory.
type Extension struct {
	Name    string
	Path    string
	Size    int64
	ModTime time.Time
	Enabled bool
}

// SortMode selects the extension list ordering.
type SortMode int

const (
	SortByName SortMode = iota
	SortByModified
)

// Applier runs `spicetify apply` after a config change.
type Applier interface {
	Apply() (string, error)
}

// Scan lists the .js files in dir, marking those present in enabled.
func Scan(dir string, enabled []string) ([]Extension, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scan extensions %s: %w", dir, err)
	}

	enabledSet := make(map[string]bool, len(enabled))
	for _, name := range enabled {
		enabledSet[name] = true
	}

	var exts []Extension
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".js") {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		exts = append(exts, Extension{
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
			Size:    info.Size(),
			ModTime: info.ModTime(),
			Enabled: enabledSet[entry.Name()],
		})
	}

	Sort(exts, SortByName)
	return exts, nil
}

// Filter returns the extensions whose name contains query,
// case-insensitively. An empty query returns the input unchanged.
func Filter(exts []Extension, query string) []Extension {
	if query == "" {
		return exts
	}

	query = strings.ToLower(query)
	var out []Extension
	for _, ext := range exts {
		if strings.Contains(strings.ToLower(ext.Name), query) {
			out = append(out, ext)
		}
	}
	return out
}

// Sort orders the list in place by the given mode. Date sorting is
// newest first, matching how the list is browsed.
func Sort(exts []Extension, mode SortMode) {
	switch mode {
	case SortByModified:
		sort.Slice(exts, func(i, j int) bool {
			return exts[i].ModTime.After(exts[j].ModTime)
		})
	default:
		sort.Slice(exts, func(i, j int) bool {
			return strings.ToLower(exts[i].Name) < strings.ToLower(exts[j].Name)
		})
	}
}

// Enabled returns the names of all enabled extensions in list order.
func Enabled(exts []Extension) []string {
	var names []string
	for _, ext := range exts {
		if ext.Enabled {
			names = append(names, ext.Name)
		}
	}
	return names
}

// Apply writes the enabled set into the config and runs spicetify
// apply. The CLI output is returned for the log pane.
func Apply(cfg *config.Config, applier Applier, enabled []string) (string, error) {
	cfg.SetExtensions(enabled)
	if err := cfg.Save(); err != nil {
		return "", err
	}

	out, err := applier.Apply()
	if err != nil {
		return out, fmt.Errorf("apply extensions: %w", err)
	}
	return out, nil
}
