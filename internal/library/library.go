// Package library loads the component template library: a read-only mapping
// from component kind to its template candidates.
package library

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Candidate is one template a kind may be rendered from.
type Candidate struct {
	ID          string `yaml:"id"`
	Description string `yaml:"description"`
	Body        string `yaml:"body"`
}

// Library maps component kinds to their candidates in declaration order.
type Library struct {
	kinds map[string][]Candidate
}

type file struct {
	Kinds map[string][]Candidate `yaml:"kinds"`
}

// Load reads and validates a YAML template library.
func Load(path string) (*Library, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lib, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lib, nil
}

// Parse decodes and validates library YAML.
func Parse(data []byte) (*Library, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return New(f.Kinds)
}

// New validates kinds and wraps them in a Library.
func New(kinds map[string][]Candidate) (*Library, error) {
	lib := &Library{kinds: make(map[string][]Candidate, len(kinds))}
	for kind, cands := range kinds {
		if strings.TrimSpace(kind) == "" {
			return nil, fmt.Errorf("library: empty kind name")
		}
		seen := make(map[string]bool)
		for i, c := range cands {
			if c.ID == "" {
				return nil, fmt.Errorf("library: kind %q: candidate %d: 'id' is required", kind, i+1)
			}
			if seen[c.ID] {
				return nil, fmt.Errorf("library: kind %q: duplicate candidate id %q", kind, c.ID)
			}
			seen[c.ID] = true
			if strings.TrimSpace(c.Body) == "" {
				return nil, fmt.Errorf("library: kind %q: candidate %q: 'body' is required", kind, c.ID)
			}
		}
		lib.kinds[kind] = append([]Candidate(nil), cands...)
	}
	return lib, nil
}

// Candidates returns the candidates for kind, or nil if there are none.
func (l *Library) Candidates(kind string) []Candidate {
	if l == nil {
		return nil
	}
	return l.kinds[kind]
}

// Kinds returns every kind with at least one candidate, sorted.
func (l *Library) Kinds() []string {
	if l == nil {
		return nil
	}
	var out []string
	for k, c := range l.kinds {
		if len(c) > 0 {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
