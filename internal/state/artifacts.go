package state

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureDir creates the artifacts directory structure.
func EnsureDir(artifactsDir string) error {
	dirs := []string{
		artifactsDir,
		filepath.Join(artifactsDir, "prompts"),
		filepath.Join(artifactsDir, "logs"),
		filepath.Join(artifactsDir, "feedback"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0755); err != nil {
			return fmt.Errorf("creating artifacts dir %s: %w", d, err)
		}
	}
	return nil
}

// Reset removes per-stage prompts, logs and feedback from a previous run.
func Reset(artifactsDir string) error {
	for _, sub := range []string{"prompts", "logs", "feedback"} {
		if err := os.RemoveAll(filepath.Join(artifactsDir, sub)); err != nil {
			return err
		}
	}
	for _, name := range []string{"state.json", "timing.json"} {
		if err := os.Remove(filepath.Join(artifactsDir, name)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return EnsureDir(artifactsDir)
}

// WriteFeedback records why a stage failed.
func WriteFeedback(artifactsDir string, stage int, content string) error {
	return os.WriteFile(FeedbackPath(artifactsDir, stage), []byte(content), 0644)
}

// PromptPath returns the path for a rendered stage prompt. Stages are 1-based.
func PromptPath(artifactsDir string, stage int) string {
	return filepath.Join(artifactsDir, "prompts", fmt.Sprintf("stage-%d.md", stage))
}

// LogPath returns the path for a stage's raw model response.
func LogPath(artifactsDir string, stage int) string {
	return filepath.Join(artifactsDir, "logs", fmt.Sprintf("stage-%d.log", stage))
}

// FeedbackPath returns the path for a stage's failure note.
func FeedbackPath(artifactsDir string, stage int) string {
	return filepath.Join(artifactsDir, "feedback", fmt.Sprintf("stage-%d.md", stage))
}
