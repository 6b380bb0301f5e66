package backup

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"spiceman/internal/config"
)

// newSpicetifyDir builds a spicetify layout with a config file and a
// few installed pieces.
func newSpicetifyDir(t *testing.T) *config.Config {
	t.Helper()

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config-xpui.ini")
	content := "[AdditionalOptions]\nextensions = shuffle+.js\n\n[Settings]\ncurrent_theme = Dribbblish\n"
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	files := map[string]string{
		"Extensions/shuffle+.js":          "// shuffle",
		"Themes/Dribbblish/user.css":      "body {}",
		"Themes/Dribbblish/color.ini":     "[Base]",
		"CustomApps/lyrics-plus/index.js": "// lyrics",
		"CustomApps/lyrics-plus/manifest": "{}",
	}
	for rel, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(body), 0644); err != nil {
			t.Fatal(err)
		}
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return cfg
}

func archiveNames(t *testing.T, path string) []string {
	t.Helper()

	zr, err := zip.OpenReader(path)
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
	}
	return names
}

func TestCreateBackup(t *testing.T) {
	cfg := newSpicetifyDir(t)
	zipPath := filepath.Join(t.TempDir(), "backup.zip")

	result, err := Create(zipPath, cfg)
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if result.Files != 6 {
		t.Errorf("expected 6 files archived, got %d", result.Files)
	}

	names := archiveNames(t, zipPath)
	want := []string{
		"config-xpui.ini",
		"Extensions/shuffle+.js",
		"Themes/Dribbblish/user.css",
		"CustomApps/lyrics-plus/index.js",
	}
	for _, name := range want {
		found := false
		for _, got := range names {
			if got == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("archive missing %s, has %v", name, names)
		}
	}
}

func TestCreateEntryOrderIsStable(t *testing.T) {
	cfg := newSpicetifyDir(t)

	want := []string{
		"config-xpui.ini",
		"Extensions/shuffle+.js",
		"Themes/Dribbblish/color.ini",
		"Themes/Dribbblish/user.css",
		"CustomApps/lyrics-plus/index.js",
		"CustomApps/lyrics-plus/manifest",
	}
	for run := 0; run < 3; run++ {
		zipPath := filepath.Join(t.TempDir(), "backup.zip")
		if _, err := Create(zipPath, cfg); err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		names := archiveNames(t, zipPath)
		if len(names) != len(want) {
			t.Fatalf("expected %d entries, got %v", len(want), names)
		}
		for i, name := range want {
			if names[i] != name {
				t.Errorf("entry %d = %q, want %q", i, names[i], name)
			}
		}
	}
}

func TestCreateSkipsMissingTrees(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config-xpui.ini")
	if err := os.WriteFile(configPath, []byte("[Settings]\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		t.Fatal(err)
	}

	zipPath := filepath.Join(t.TempDir(), "backup.zip")
	result, err := Create(zipPath, cfg)
	if err != nil {
		t.Fatalf("Create on fresh install failed: %v", err)
	}
	if result.Files != 1 {
		t.Errorf("expected only the config file, got %d files", result.Files)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	cfg := newSpicetifyDir(t)
	zipPath := filepath.Join(t.TempDir(), "backup.zip")
	if _, err := Create(zipPath, cfg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	destDir := t.TempDir()
	result, err := Restore(zipPath, destDir)
	if err != nil {
		t.Fatalf("Restore failed: %v", err)
	}
	if result.Files != 6 {
		t.Errorf("expected 6 files restored, got %d", result.Files)
	}

	data, err := os.ReadFile(filepath.Join(destDir, "Extensions", "shuffle+.js"))
	if err != nil {
		t.Fatalf("restored extension missing: %v", err)
	}
	if string(data) != "// shuffle" {
		t.Errorf("restored content mismatch: %q", data)
	}

	data, err = os.ReadFile(filepath.Join(destDir, "config-xpui.ini"))
	if err != nil {
		t.Fatalf("restored config missing: %v", err)
	}
	if !strings.Contains(string(data), "current_theme = Dribbblish") {
		t.Errorf("restored config lost settings: %q", data)
	}
}

func TestRestoreOverwrites(t *testing.T) {
	cfg := newSpicetifyDir(t)
	zipPath := filepath.Join(t.TempDir(), "backup.zip")
	if _, err := Create(zipPath, cfg); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	destDir := t.TempDir()
	stale := filepath.Join(destDir, "Extensions", "shuffle+.js")
	if err := os.MkdirAll(filepath.Dir(stale), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(stale, []byte("// stale"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Restore(zipPath, destDir); err != nil {
		t.Fatalf("Restore failed: %v", err)
	}

	data, err := os.ReadFile(stale)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "// shuffle" {
		t.Errorf("existing file not overwritten: %q", data)
	}
}

func TestRestoreRejectsEscapingEntries(t *testing.T) {
	zipPath := filepath.Join(t.TempDir(), "evil.zip")
	out, err := os.Create(zipPath)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(out)
	w, err := zw.Create("../escape.txt")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.Write([]byte("nope")); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	out.Close()

	destDir := filepath.Join(t.TempDir(), "restore")
	if err := os.MkdirAll(destDir, 0755); err != nil {
		t.Fatal(err)
	}

	if _, err := Restore(zipPath, destDir); err == nil {
		t.Fatal("expected error for entry escaping the target")
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(destDir), "escape.txt")); err == nil {
		t.Error("escaping entry was written outside the target")
	}
}
