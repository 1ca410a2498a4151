package ux

import (
	"io"
	"os"
	"strings"
	"testing"

	"github.com/jorge-barreto/sitegen/internal/state"
)

func captureStdout(t *testing.T, fn func()) string {
	t.Helper()
	old := os.Stdout
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatal(err)
	}
	os.Stdout = w
	fn()
	w.Close()
	os.Stdout = old
	out, _ := io.ReadAll(r)
	return string(out)
}

func TestRenderStatus_NoRun(t *testing.T) {
	out := captureStdout(t, func() {
		RenderStatus([]string{"a"}, &state.State{}, t.TempDir())
	})
	if !strings.Contains(out, "No build has run yet") {
		t.Fatalf("output = %q", out)
	}
}

func TestRenderStatus_Failed(t *testing.T) {
	dir := t.TempDir()
	st := &state.State{RunID: "r1", Prompt: "a bakery site", StageIndex: 1, StageCount: 3, Status: state.StatusFailed, Error: "stage 2 (ui) failed: boom"}
	out := captureStdout(t, func() {
		RenderStatus([]string{"foundation", "ui", "pages"}, st, dir)
	})
	for _, want := range []string{"r1", "2/3 (ui)", "boom", "foundation", "pages"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderStatus_OutputFailure(t *testing.T) {
	st := &state.State{RunID: "r2", Prompt: "p", StageIndex: 2, StageCount: 2, Status: state.StatusFailed, Phase: state.PhaseOutput, Error: "writing output: bad path"}
	out := captureStdout(t, func() {
		RenderStatus([]string{"foundation", "pages"}, st, t.TempDir())
	})
	for _, want := range []string{"all 2 stages done, failed writing output", "bad path"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Remaining:") {
		t.Errorf("no stages should remain:\n%s", out)
	}
}

func TestComponentReport_Tally(t *testing.T) {
	out := captureStdout(t, func() {
		ComponentReport([]KindLine{
			{Kind: "hero", TemplateID: "h1", Source: "model", Path: "components/Hero.tsx", Succeeded: true},
			{Kind: "footer", Error: "write failed"},
		})
	})
	if !strings.Contains(out, "1/2 components generated, 1 failed") {
		t.Fatalf("output = %q", out)
	}
	if !strings.Contains(out, "write failed") {
		t.Fatalf("missing error line: %q", out)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate = %q", got)
	}
	if got := truncate("abcdefghijkl", 8); got != "abcde..." {
		t.Errorf("truncate = %q", got)
	}
}
