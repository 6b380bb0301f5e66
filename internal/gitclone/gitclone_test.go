package gitclone

import (
	"os"
	"path/filepath"
	"testing"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

func TestRepoName(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://github.com/spicetify/spicetify-themes", "spicetify-themes"},
		{"https://github.com/spicetify/spicetify-themes.git", "spicetify-themes"},
		{"https://github.com/spicetify/spicetify-themes/", "spicetify-themes"},
		{"git@github.com:user/my-theme.git", "my-theme"},
		{"  https://github.com/u/r \n", "r"},
		{"", ""},
		{"no-separators", ""},
	}

	for _, tt := range tests {
		if got := RepoName(tt.url); got != tt.want {
			t.Errorf("RepoName(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

// initSourceRepo creates a local git repository with one commit to
// clone from, so tests need no network.
func initSourceRepo(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "source-theme")

	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("init repo: %v", err)
	}

	if err := os.WriteFile(filepath.Join(dir, "user.css"), []byte("body {}"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if _, err := wt.Add("user.css"); err != nil {
		t.Fatalf("add: %v", err)
	}
	_, err = wt.Commit("initial", &git.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com"},
	})
	if err != nil {
		t.Fatalf("commit: %v", err)
	}

	return dir
}

func TestCloneLocalRepo(t *testing.T) {
	src := initSourceRepo(t)
	parent := t.TempDir()

	dest, err := Clone(src, parent)
	if err != nil {
		t.Fatalf("Clone failed: %v", err)
	}

	if filepath.Base(dest) != "source-theme" {
		t.Errorf("unexpected destination name: %s", dest)
	}
	if _, err := os.Stat(filepath.Join(dest, "user.css")); err != nil {
		t.Errorf("cloned file missing: %v", err)
	}
}

func TestCloneRefusesExistingDestination(t *testing.T) {
	src := initSourceRepo(t)
	parent := t.TempDir()

	if err := os.Mkdir(filepath.Join(parent, "source-theme"), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if _, err := Clone(src, parent); err == nil {
		t.Error("expected error when destination already exists")
	}
}

func TestCloneRejectsUnusableURL(t *testing.T) {
	if _, err := Clone("", t.TempDir()); err == nil {
		t.Error("expected error for empty URL")
	}
}
