package components

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/jorge-barreto/sitegen/internal/library"
)

func TestFileName(t *testing.T) {
	tests := map[string]string{
		"header":         "Header.tsx",
		"hero-banner":    "HeroBanner.tsx",
		"call_to_action": "CallToAction.tsx",
		"heroBanner":     "HeroBanner.tsx",
		"unknown-kind":   "UnknownKind.tsx",
	}
	for kind, want := range tests {
		got, err := FileName(kind, ".tsx")
		if err != nil {
			t.Fatalf("FileName(%q): %v", kind, err)
		}
		if got != want {
			t.Errorf("FileName(%q) = %q, want %q", kind, got, want)
		}
	}
}

func TestFileName_Invalid(t *testing.T) {
	for _, kind := range []string{"", "../etc", "a/b", "-x"} {
		if _, err := FileName(kind, ".tsx"); !errors.Is(err, ErrInvalidKind) {
			t.Errorf("FileName(%q) err = %v", kind, err)
		}
	}
}

func TestPersist_Changes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "Hero.tsx")

	changes, err := persist(path, "a\nb\n")
	if err != nil || changes != "new file" {
		t.Fatalf("first persist = %q, %v", changes, err)
	}
	changes, err = persist(path, "a\nb\n")
	if err != nil || changes != "unchanged" {
		t.Fatalf("same persist = %q, %v", changes, err)
	}
	changes, err = persist(path, "a\nc\nd\n")
	if err != nil || changes != "+2 -1 lines" {
		t.Fatalf("edit persist = %q, %v", changes, err)
	}
	data, _ := os.ReadFile(path)
	if string(data) != "a\nc\nd\n" {
		t.Errorf("content = %q", data)
	}
}

func TestMatchCandidate(t *testing.T) {
	cands := []library.Candidate{{ID: "one"}, {ID: "two"}}
	tests := []struct {
		answer string
		want   string
		ok     bool
	}{
		{"two", "two", true},
		{"  'two'  ", "two", true},
		{"`two`\nbecause it fits", "two", true},
		{"\"one\"", "one", true},
		{"three", "one", false},
		{"", "one", false},
	}
	for _, tt := range tests {
		got, ok := matchCandidate(tt.answer, cands)
		if got.ID != tt.want || ok != tt.ok {
			t.Errorf("matchCandidate(%q) = %q, %v", tt.answer, got.ID, ok)
		}
	}
}
