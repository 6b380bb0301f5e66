// Package backup packs the spicetify configuration into a zip archive
// and restores it.
package backup

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"spiceman/internal/config"
)

// Result summarizes a backup or restore run.
type Result struct {
	Files int
	Bytes int64
}

// Create writes a zip at destPath containing the config file plus the
// Extensions, Themes and CustomApps trees. Missing directories are
// skipped, matching a fresh install.
func Create(destPath string, cfg *config.Config) (*Result, error) {
	out, err := os.Create(destPath)
	if err != nil {
		return nil, fmt.Errorf("create backup %s: %w", destPath, err)
	}
	defer out.Close()

	zw := zip.NewWriter(out)
	result := &Result{}

	if err := addFile(zw, cfg.Path, filepath.Base(cfg.Path), result); err != nil {
		return nil, err
	}

	trees := []struct {
		arcRoot string
		dir     string
	}{
		{"Extensions", cfg.ExtensionsDir()},
		{"Themes", cfg.ThemesDir()},
		{"CustomApps", cfg.CustomAppsDir()},
	}
	for _, tree := range trees {
		if err := addTree(zw, tree.dir, tree.arcRoot, result); err != nil {
			return nil, err
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize backup: %w", err)
	}
	return result, nil
}

// Restore extracts a backup zip into destDir, overwriting existing
// files. Entries that would escape destDir are rejected.
func Restore(zipPath, destDir string) (*Result, error) {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return nil, fmt.Errorf("open backup %s: %w", zipPath, err)
	}
	defer zr.Close()

	result := &Result{}
	for _, entry := range zr.File {
		if err := extractEntry(entry, destDir, result); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// addTree walks dir and adds every regular file under arcRoot.
func addTree(zw *zip.Writer, dir, arcRoot string, result *Result) error {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil
	}

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		arcName := arcRoot + "/" + filepath.ToSlash(rel)
		return addFile(zw, path, arcName, result)
	})
}

// addFile copies one file into the archive.
func addFile(zw *zip.Writer, path, arcName string, result *Result) error {
	src, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("backup %s: %w", path, err)
	}
	defer src.Close()

	header := &zip.FileHeader{Name: arcName, Method: zip.Deflate}
	if info, err := src.Stat(); err == nil {
		header.Modified = info.ModTime()
	}

	w, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("backup %s: %w", arcName, err)
	}

	n, err := io.Copy(w, src)
	if err != nil {
		return fmt.Errorf("backup %s: %w", arcName, err)
	}

	result.Files++
	result.Bytes += n
	return nil
}

// extractEntry writes one archive entry under destDir.
func extractEntry(entry *zip.File, destDir string, result *Result) error {
	dest := filepath.Join(destDir, filepath.FromSlash(entry.Name))

	// Zip-slip guard: the resolved path must stay inside destDir.
	if rel, err := filepath.Rel(destDir, dest); err != nil || strings.HasPrefix(rel, "..") {
		return fmt.Errorf("restore: entry %q escapes the target directory", entry.Name)
	}

	if entry.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0755)
	}

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return fmt.Errorf("restore %s: %w", entry.Name, err)
	}

	src, err := entry.Open()
	if err != nil {
		return fmt.Errorf("restore %s: %w", entry.Name, err)
	}
	defer src.Close()

	out, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("restore %s: %w", entry.Name, err)
	}
	defer out.Close()

	n, err := io.Copy(out, src)
	if err != nil {
		return fmt.Errorf("restore %s: %w", entry.Name, err)
	}

	result.Files++
	result.Bytes += n
	return nil
}
