package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/jorge-barreto/sitegen/internal/config"
)

func TestRelPath(t *testing.T) {
	root := filepath.Join(string(filepath.Separator), "work", "site")
	tests := []struct {
		path, want string
	}{
		{"", ""},
		{filepath.Join(root, "components", "Hero.tsx"), filepath.Join("components", "Hero.tsx")},
		{filepath.Join(string(filepath.Separator), "elsewhere", "x.tsx"), filepath.Join(string(filepath.Separator), "elsewhere", "x.tsx")},
	}
	for _, tt := range tests {
		if got := relPath(root, tt.path); got != tt.want {
			t.Errorf("relPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestNewGateway_UnknownType(t *testing.T) {
	_, err := newGateway(context.Background(), config.Provider{Type: "openai"}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "unknown provider") {
		t.Fatalf("err = %v", err)
	}
}

func TestNewGateway_ClaudeMissingBinary(t *testing.T) {
	t.Setenv("CLAUDECODE", "")
	t.Setenv("PATH", t.TempDir())
	_, err := newGateway(context.Background(), config.Provider{Type: "claude", Model: "sonnet"}, zap.NewNop())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("err = %v", err)
	}
}

func TestFindProjectRoot(t *testing.T) {
	root := t.TempDir()
	if err := os.MkdirAll(filepath.Join(root, ".sitegen"), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(root, ".sitegen", "config.yaml"), []byte("name: x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(nested)

	got, err := findProjectRoot()
	if err != nil {
		t.Fatal(err)
	}
	want, _ := filepath.EvalSymlinks(root)
	if gotEval, _ := filepath.EvalSymlinks(got); gotEval != want {
		t.Errorf("root = %q, want %q", got, root)
	}
}
