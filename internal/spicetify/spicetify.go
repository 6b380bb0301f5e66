// Package spicetify wraps the spicetify command line tool.
package spicetify

import (
	"errors"
	"fmt"
	"os/exec"
	"regexp"
	"strings"
)

// ErrNotInstalled is returned when the spicetify binary cannot be found
// in PATH.
var ErrNotInstalled = errors.New("spicetify command not found in PATH")

// versionRe matches a semantic version with optional v prefix.
var versionRe = regexp.MustCompile(`v?(\d+\.\d+\.\d+)`)

// Runner invokes the spicetify CLI.
type Runner struct {
	// Binary is the command name, overridable for tests.
	Binary string
}

// NewRunner creates a Runner using the default binary name.
func NewRunner() *Runner {
	return &Runner{Binary: "spicetify"}
}

// run executes spicetify with args and returns combined output.
func (r *Runner) run(args ...string) (string, error) {
	cmd := exec.Command(r.Binary, args...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) {
			return "", ErrNotInstalled
		}
		return string(out), fmt.Errorf("spicetify %s: %w: %s", strings.Join(args, " "), err, strings.TrimSpace(string(out)))
	}
	return string(out), nil
}

// ConfigPath asks spicetify where its config file lives.
func (r *Runner) ConfigPath() (string, error) {
	out, err := r.run("-c")
	if err != nil {
		return "", err
	}
	path := strings.TrimSpace(out)
	if path == "" {
		return "", errors.New("spicetify -c returned an empty path")
	}
	return path, nil
}

// Apply runs `spicetify apply` and returns its output for the log pane.
func (r *Runner) Apply() (string, error) {
	return r.run("apply")
}

// Set runs `spicetify config key value`.
func (r *Runner) Set(key, value string) (string, error) {
	return r.run("config", key, value)
}

// Version returns the installed spicetify version, parsed from the
// output of `spicetify -v`.
func (r *Runner) Version() (string, error) {
	out, err := r.run("-v")
	if err != nil {
		return "", err
	}
	return ParseVersion(out), nil
}

// ParseVersion extracts a semantic version from raw CLI output. Falls
// back to the trimmed output when no x.y.z pattern is found.
func ParseVersion(output string) string {
	if m := versionRe.FindStringSubmatch(output); m != nil {
		return m[1]
	}
	return strings.Trim(strings.TrimSpace(output), "v")
}
