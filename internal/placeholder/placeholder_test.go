package placeholder

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract_NoMarkers(t *testing.T) {
	if got := Extract("<header>plain</header>"); len(got) != 0 {
		t.Fatalf("expected no placeholders, got %v", got)
	}
}

func TestExtract_Dedup(t *testing.T) {
	got := Extract("{{A}} and {{B}} then {{A}} again")
	if diff := cmp.Diff([]string{"A", "B"}, got); diff != "" {
		t.Fatalf("placeholders mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_LenientScan(t *testing.T) {
	got := Extract("{{OPEN and {{CLOSED}} and }}STRAY{{")
	if diff := cmp.Diff([]string{"OPEN and {{CLOSED"}, got); diff != "" {
		t.Fatalf("placeholders mismatch (-want +got):\n%s", diff)
	}
}

func TestExtract_EmptyBraces(t *testing.T) {
	if got := Extract("{{}}"); len(got) != 0 {
		t.Fatalf("expected empty braces to be ignored, got %v", got)
	}
}

func TestFill_Complete(t *testing.T) {
	tmpl := "<h1>{{HEADLINE}}</h1><p>{{HEADLINE}} - {{CTA_TEXT}}</p>"
	got := Fill(tmpl, map[string]string{
		"HEADLINE": "Fresh bread",
		"CTA_TEXT": "Order now",
		"UNUSED":   "x",
	})
	want := "<h1>Fresh bread</h1><p>Fresh bread - Order now</p>"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
	if strings.Contains(got, "{{") {
		t.Fatalf("unresolved marker in %q", got)
	}
}

func TestFill_MissingLeftVerbatim(t *testing.T) {
	got := Fill("{{A}} {{B}}", map[string]string{"A": "1"})
	if got != "1 {{B}}" {
		t.Fatalf("got %q", got)
	}
}

func TestFill_ValueContainingMarkerNotReexpanded(t *testing.T) {
	got := Fill("{{A}}", map[string]string{"A": "{{B}}", "B": "no"})
	if got != "{{B}}" {
		t.Fatalf("got %q", got)
	}
}

func TestMissing(t *testing.T) {
	got := Missing([]string{"A", "B", "C"}, map[string]string{"B": ""})
	if diff := cmp.Diff([]string{"A", "C"}, got); diff != "" {
		t.Fatalf("missing mismatch (-want +got):\n%s", diff)
	}
}
