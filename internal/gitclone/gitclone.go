// Package gitclone installs themes, custom apps and marketplace repos
// by cloning them from a git URL.
package gitclone

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	git "github.com/go-git/go-git/v5"
)

// Clone clones url into parentDir and returns the destination path.
// The destination directory name is derived from the URL.
func Clone(url, parentDir string) (string, error) {
	name := RepoName(url)
	if name == "" {
		return "", fmt.Errorf("cannot derive repository name from %q", url)
	}

	dest := filepath.Join(parentDir, name)
	if _, err := os.Stat(dest); err == nil {
		return "", fmt.Errorf("%s already exists", dest)
	}

	if err := os.MkdirAll(parentDir, 0755); err != nil {
		return "", fmt.Errorf("create %s: %w", parentDir, err)
	}

	_, err := git.PlainClone(dest, false, &git.CloneOptions{
		URL: url,
	})
	if err == nil {
		return dest, nil
	}

	// go-git does not cover every transport/auth setup; fall back to the
	// git binary like the CLI tool itself would.
	os.RemoveAll(dest)
	cmd := exec.Command("git", "clone", url, dest)
	if out, execErr := cmd.CombinedOutput(); execErr != nil {
		return "", fmt.Errorf("clone %s: %w: %s", url, err, strings.TrimSpace(string(out)))
	}
	return dest, nil
}

// RepoName extracts the repository name from a git URL.
func RepoName(url string) string {
	url = strings.TrimSuffix(strings.TrimRight(strings.TrimSpace(url), "/"), ".git")
	idx := strings.LastIndexAny(url, "/:")
	if idx < 0 || idx == len(url)-1 {
		return ""
	}
	return url[idx+1:]
}
