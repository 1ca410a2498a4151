// Package backup snapshots a directory tree before it is modified.
package backup

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// timestampLayout is filesystem-safe on every platform (no colons).
const timestampLayout = "20060102T150405.000000000Z"

// Record describes a completed snapshot.
type Record struct {
	SourcePath string    `json:"source_path"`
	BackupPath string    `json:"backup_path"`
	CreatedAt  time.Time `json:"created_at"`
	Files      int       `json:"files"`
}

// Manager writes snapshots under Root. Backups are never deleted here.
type Manager struct {
	Root string
	Now  func() time.Time // defaults to time.Now
}

// New returns a manager rooted at root.
func New(root string) *Manager {
	return &Manager{Root: root}
}

func (m *Manager) now() time.Time {
	if m.Now != nil {
		return m.Now()
	}
	return time.Now()
}

// Snapshot copies sourceDir recursively to Root/<runID>/<timestamp>.
// An empty runID is replaced with a fresh UUID. The copy is staged in a
// hidden sibling and renamed into place only once complete, so a visible
// backup directory is always whole. A missing sourceDir yields an empty backup.
func (m *Manager) Snapshot(sourceDir, runID string) (*Record, error) {
	if runID == "" {
		runID = uuid.NewString()
	}
	created := m.now().UTC()
	parent := filepath.Join(m.Root, runID)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return nil, fmt.Errorf("creating backup dir: %w", err)
	}

	dest, err := uniqueDest(parent, created.Format(timestampLayout))
	if err != nil {
		return nil, err
	}

	staging := filepath.Join(parent, ".partial-"+uuid.NewString())
	if err := os.MkdirAll(staging, 0755); err != nil {
		return nil, fmt.Errorf("creating staging dir: %w", err)
	}

	files, err := copyTree(sourceDir, staging)
	if err != nil {
		os.RemoveAll(staging)
		return nil, fmt.Errorf("copying %s: %w", sourceDir, err)
	}
	if err := os.Rename(staging, dest); err != nil {
		os.RemoveAll(staging)
		return nil, fmt.Errorf("committing backup: %w", err)
	}

	return &Record{
		SourcePath: sourceDir,
		BackupPath: dest,
		CreatedAt:  created,
		Files:      files,
	}, nil
}

// uniqueDest returns parent/name, or parent/name-N if that already exists.
func uniqueDest(parent, name string) (string, error) {
	dest := filepath.Join(parent, name)
	for i := 1; ; i++ {
		_, err := os.Lstat(dest)
		if errors.Is(err, fs.ErrNotExist) {
			return dest, nil
		}
		if err != nil {
			return "", err
		}
		dest = filepath.Join(parent, fmt.Sprintf("%s-%d", name, i))
	}
}

// copyTree copies every regular file and directory under src into dst,
// preserving relative structure and permissions. It returns the file count.
func copyTree(src, dst string) (int, error) {
	if _, err := os.Stat(src); errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	files := 0
	err := filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		info, err := d.Info()
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			return os.MkdirAll(target, info.Mode().Perm()|0700)
		case info.Mode().IsRegular():
			files++
			return copyFile(path, target, info.Mode().Perm())
		default:
			// Sockets, devices and symlinks are not part of an asset store.
			return nil
		}
	})
	return files, err
}

func copyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
