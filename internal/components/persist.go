package components

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"

	"github.com/sergi/go-diff/diffmatchpatch"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jorge-barreto/sitegen/internal/state"
)

var kindRe = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9 _-]*$`)

var titleCaser = cases.Title(language.Und, cases.NoLower)

// FileName derives the asset file name for kind: "hero-banner" with ext
// ".tsx" becomes "HeroBanner.tsx".
func FileName(kind, ext string) (string, error) {
	if !kindRe.MatchString(kind) {
		return "", fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	parts := strings.FieldsFunc(kind, func(r rune) bool {
		return r == '-' || r == '_' || r == ' '
	})
	var b strings.Builder
	for _, p := range parts {
		b.WriteString(titleCaser.String(p))
	}
	return b.String() + ext, nil
}

// persist writes body to path and summarises the change from its previous content.
func persist(path, body string) (string, error) {
	prev, err := os.ReadFile(path)
	existed := true
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return "", err
		}
		existed = false
	}
	if err := state.WriteFileAtomic(path, []byte(body), 0644); err != nil {
		return "", err
	}
	if !existed {
		return "new file", nil
	}
	return summarizeChanges(string(prev), body), nil
}

// summarizeChanges counts added and removed lines between old and new.
func summarizeChanges(old, new string) string {
	if old == new {
		return "unchanged"
	}
	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(old, new)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	added, removed := 0, 0
	for _, d := range diffs {
		n := strings.Count(d.Text, "\n")
		if !strings.HasSuffix(d.Text, "\n") {
			n++
		}
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			added += n
		case diffmatchpatch.DiffDelete:
			removed += n
		}
	}
	return fmt.Sprintf("+%d -%d lines", added, removed)
}
