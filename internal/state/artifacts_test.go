package state

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEnsureDir(t *testing.T) {
	artDir := filepath.Join(t.TempDir(), "artifacts")
	if err := EnsureDir(artDir); err != nil {
		t.Fatal(err)
	}
	for _, sub := range []string{"prompts", "logs", "feedback"} {
		info, err := os.Stat(filepath.Join(artDir, sub))
		if err != nil {
			t.Fatalf("%s not created: %v", sub, err)
		}
		if !info.IsDir() {
			t.Fatalf("%s is not a directory", sub)
		}
	}
}

func TestReset_ClearsPreviousRun(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	os.WriteFile(PromptPath(dir, 1), []byte("old prompt"), 0644)
	(&State{Status: StatusFailed}).Save(dir)

	if err := Reset(dir); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(PromptPath(dir, 1)); !os.IsNotExist(err) {
		t.Fatal("old prompt should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "state.json")); !os.IsNotExist(err) {
		t.Fatal("old state should be removed")
	}
	if _, err := os.Stat(filepath.Join(dir, "logs")); err != nil {
		t.Fatal("logs dir should be recreated")
	}
}

func TestWriteFeedback(t *testing.T) {
	dir := t.TempDir()
	if err := EnsureDir(dir); err != nil {
		t.Fatal(err)
	}
	if err := WriteFeedback(dir, 2, "model refused"); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "feedback", "stage-2.md"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "model refused" {
		t.Fatalf("got %q", string(data))
	}
}

func TestPaths(t *testing.T) {
	if got, want := PromptPath("/art", 1), filepath.Join("/art", "prompts", "stage-1.md"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := LogPath("/art", 3), filepath.Join("/art", "logs", "stage-3.log"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if got, want := FeedbackPath("/art", 2), filepath.Join("/art", "feedback", "stage-2.md"); got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
