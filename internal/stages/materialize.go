package stages

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// Materialize replaces the contents of dir with files. Every path is checked
// before anything is removed, so an invalid path leaves dir untouched.
func Materialize(dir string, files map[string]string) error {
	clean := filepath.Clean(dir)
	if dir == "" || clean == "." || clean == string(filepath.Separator) {
		return fmt.Errorf("refusing to clear output directory %q", dir)
	}

	paths := make([]string, 0, len(files))
	for p := range files {
		if err := validPath(p); err != nil {
			return err
		}
		paths = append(paths, p)
	}
	sort.Strings(paths)

	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("clearing %s: %w", dir, err)
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	for _, p := range paths {
		dst := filepath.Join(dir, filepath.FromSlash(p))
		if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
			return err
		}
		if err := os.WriteFile(dst, []byte(files[p]), 0644); err != nil {
			return err
		}
	}
	return nil
}

func validPath(p string) error {
	if p == "" || path.IsAbs(p) || filepath.IsAbs(p) {
		return fmt.Errorf("%w: %q", ErrPathInvalid, p)
	}
	c := path.Clean(filepath.ToSlash(p))
	if c == "." || c == ".." || strings.HasPrefix(c, "../") {
		return fmt.Errorf("%w: %q", ErrPathInvalid, p)
	}
	return nil
}

// invalidPathStage returns the number of the first completed stage that
// emitted a path Materialize rejects, or 0 if none did.
func (g *GenerationContext) invalidPathStage() int {
	for _, r := range g.Completed {
		for p := range r.Files {
			if validPath(p) != nil {
				return r.Number
			}
		}
	}
	return 0
}
