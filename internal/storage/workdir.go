package storage

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
)

// Workdirs manages the per-user scratch directories that hold downloaded
// output until delivery and cleanup.
type Workdirs struct {
	BaseDir string
}

func NewWorkdirs(baseDir string) *Workdirs {
	return &Workdirs{BaseDir: baseDir}
}

// EnsureBase creates the download root.
func (w *Workdirs) EnsureBase() error {
	if err := os.MkdirAll(w.BaseDir, 0o755); err != nil {
		return fmt.Errorf("failed to create download directory %s: %w", w.BaseDir, err)
	}
	return nil
}

// UserDir returns the working directory for a user without creating it.
func (w *Workdirs) UserDir(userID int64) string {
	return filepath.Join(w.BaseDir, strconv.FormatInt(userID, 10))
}

// Ensure creates the user's working directory and returns its path.
func (w *Workdirs) Ensure(userID int64) (string, error) {
	dir := w.UserDir(userID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create working directory %s: %w", dir, err)
	}
	return dir, nil
}

// ListFiles returns every regular file under dir, recursively, in lexical
// path order. The order is deterministic so delivery is testable.
func (w *Workdirs) ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.Type().IsRegular() {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enumerate %s: %w", dir, err)
	}
	return files, nil
}

// RemoveFile deletes a single file. Absence is not an error.
func (w *Workdirs) RemoveFile(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove %s: %w", path, err)
	}
	return nil
}

// RemoveDir deletes the directory tree. Absence is not an error.
func (w *Workdirs) RemoveDir(dir string) error {
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("failed to remove %s: %w", dir, err)
	}
	return nil
}
