package components

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/goleak"

	"github.com/jorge-barreto/sitegen/internal/backup"
	"github.com/jorge-barreto/sitegen/internal/gateway"
	"github.com/jorge-barreto/sitegen/internal/gateway/gatewaytest"
	"github.com/jorge-barreto/sitegen/internal/library"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

var bakery = WebsiteContext{
	Name:             "Crumb & Co",
	Industry:         "bakery",
	Description:      "Sourdough and pastries baked at dawn.",
	StylePreference:  "rustic",
	BrandPersonality: "warm",
}

func testLibrary(t *testing.T) *library.Library {
	t.Helper()
	lib, err := library.New(map[string][]library.Candidate{
		"header": {
			{ID: "header-minimal", Description: "Logo and links", Body: "<header>{{BRAND_NAME}}</header>"},
			{ID: "header-centered", Description: "Centered logo", Body: "<header class=\"c\">{{BRAND_NAME}}</header>"},
		},
		"hero": {
			{ID: "hero-split", Description: "Split layout", Body: "<h1>{{HEADLINE}}</h1><p>{{SUBHEADLINE}}</p><a>{{CTA_TEXT}}</a>"},
			{ID: "hero-full", Description: "Full bleed", Body: "<h1>{{HEADLINE}}</h1>"},
		},
		"footer": {
			{ID: "footer-simple", Description: "One line", Body: "<footer>{{COPYRIGHT}}</footer>"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	return lib
}

// scripted answers selection calls with selectID and generation calls with genText.
func scripted(selectID, genText string) *gatewaytest.Fake {
	return &gatewaytest.Fake{Handler: func(req gateway.Request) gatewaytest.Reply {
		if req.Mode == gateway.ModeSelector {
			return gatewaytest.Reply{Text: selectID}
		}
		return gatewaytest.Reply{Text: genText}
	}}
}

func newOrchestrator(t *testing.T, gw gateway.Gateway) *Orchestrator {
	t.Helper()
	return &Orchestrator{
		Gateway:   gw,
		Templates: testLibrary(t),
		Selector:  gateway.DefaultProfile(gateway.ModeSelector),
		Generator: gateway.DefaultProfile(gateway.ModeGenerator),
		AssetDir:  filepath.Join(t.TempDir(), "components"),
	}
}

func resultFor(t *testing.T, r *Report, kind string) Result {
	t.Helper()
	for _, res := range r.Results {
		if res.Kind == kind {
			return res
		}
	}
	t.Fatalf("no result for %q", kind)
	return Result{}
}

func TestRun_PartialFailure(t *testing.T) {
	gen := `{"BRAND_NAME": "Crumb & Co", "HEADLINE": "Bread worth waking for", "SUBHEADLINE": "Baked at dawn", "CTA_TEXT": "Order now"}`
	o := newOrchestrator(t, scripted("header-minimal", gen))

	report := o.Run(context.Background(), Request{
		Website: bakery,
		Kinds:   []string{"header", "hero", "unknown-kind"},
	}, false)

	if len(report.Results) != 3 {
		t.Fatalf("results = %d, want 3", len(report.Results))
	}
	if got := []string{report.Results[0].Kind, report.Results[1].Kind, report.Results[2].Kind}; !cmp.Equal(got, []string{"header", "hero", "unknown-kind"}) {
		t.Errorf("result order = %v", got)
	}

	unknown := resultFor(t, report, "unknown-kind")
	if unknown.Succeeded || !errors.Is(unknown.Err, ErrNoTemplates) {
		t.Errorf("unknown-kind = %+v", unknown)
	}
	if unknown.ErrorMessage() != "no templates available" {
		t.Errorf("message = %q", unknown.ErrorMessage())
	}

	header := resultFor(t, report, "header")
	if !header.Succeeded || header.TemplateID != "header-minimal" || header.Source != SourceModel {
		t.Errorf("header = %+v", header)
	}
	hero := resultFor(t, report, "hero")
	if !hero.Succeeded {
		t.Fatalf("hero failed: %v", hero.Err)
	}
	// "header-minimal" is not a hero id, so selection falls back to the first hero.
	if hero.TemplateID != "hero-split" {
		t.Errorf("hero template = %q, want hero-split", hero.TemplateID)
	}

	data, err := os.ReadFile(filepath.Join(o.AssetDir, "Hero.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	want := "<h1>Bread worth waking for</h1><p>Baked at dawn</p><a>Order now</a>"
	if string(data) != want {
		t.Errorf("Hero.tsx = %q, want %q", data, want)
	}
	if len(report.Failed()) != 1 {
		t.Errorf("Failed() = %d, want 1", len(report.Failed()))
	}
}

func TestRun_MalformedGenerationUsesFallback(t *testing.T) {
	o := newOrchestrator(t, scripted("\"hero-split\"\n", "Sure! Here's some copy: HEADLINE = yum"))

	report := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"hero"}}, false)
	res := report.Results[0]
	if !res.Succeeded {
		t.Fatalf("hero failed: %v", res.Err)
	}
	if res.Source != SourceFallback || res.TemplateID != "hero-split" {
		t.Errorf("result = %+v", res)
	}
	if strings.Contains(res.Body, "{{") {
		t.Errorf("unresolved markers in %q", res.Body)
	}
	if !strings.Contains(res.Body, "Crumb & Co") {
		t.Errorf("fallback body lacks site name: %q", res.Body)
	}
}

func TestRun_RefusedGenerationUsesFallback(t *testing.T) {
	fake := &gatewaytest.Fake{Handler: func(req gateway.Request) gatewaytest.Reply {
		if req.Mode == gateway.ModeSelector {
			return gatewaytest.Reply{Text: "header-centered"}
		}
		return gatewaytest.Reply{Text: "no", Stop: gateway.StopRefusal}
	}}
	o := newOrchestrator(t, fake)
	res := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"header"}}, false).Results[0]
	if !res.Succeeded || res.Source != SourceFallback {
		t.Fatalf("result = %+v", res)
	}
	if res.Body != `<header class="c">Crumb & Co</header>` {
		t.Errorf("body = %q", res.Body)
	}
}

func TestRun_SelectionRefusalFailsKind(t *testing.T) {
	fake := &gatewaytest.Fake{Handler: func(req gateway.Request) gatewaytest.Reply {
		return gatewaytest.Reply{Stop: gateway.StopRefusal}
	}}
	o := newOrchestrator(t, fake)
	res := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"hero"}}, false).Results[0]
	if res.Succeeded {
		t.Fatal("expected failure")
	}
	if !strings.Contains(res.ErrorMessage(), "selecting template") {
		t.Errorf("err = %v", res.Err)
	}
}

func TestRun_PartialModelValuesCompletedByFallback(t *testing.T) {
	o := newOrchestrator(t, scripted("hero-split", `{"HEADLINE": "Hot bread", "CTA_TEXT": null}`))
	res := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"hero"}}, false).Results[0]
	if !res.Succeeded || res.Source != SourceModel {
		t.Fatalf("result = %+v", res)
	}
	want := "<h1>Hot bread</h1><p>Trusted bakery for people who care about quality</p><a>Get Started</a>"
	if res.Body != want {
		t.Errorf("body = %q, want %q", res.Body, want)
	}
}

func TestRun_SingleCandidateSkipsSelection(t *testing.T) {
	fake := scripted("ignored", `{"COPYRIGHT": "(c) Crumb"}`)
	o := newOrchestrator(t, fake)
	res := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"footer"}}, false).Results[0]
	if !res.Succeeded || res.TemplateID != "footer-simple" {
		t.Fatalf("result = %+v", res)
	}
	for _, c := range fake.Calls() {
		if c.Mode == gateway.ModeSelector {
			t.Error("selector called for a single candidate")
		}
	}
}

func TestRun_CreativityTemperature(t *testing.T) {
	fake := scripted("hero-full", `{"HEADLINE": "x"}`)
	o := newOrchestrator(t, fake)
	o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"hero"}, Creativity: Experimental}, false)

	for _, c := range fake.Calls() {
		switch c.Mode {
		case gateway.ModeSelector:
			if c.Temperature != 0.1 || c.MaxTokens != 50 {
				t.Errorf("selector request = %+v", c)
			}
		case gateway.ModeGenerator:
			if c.Temperature != 1.0 || c.MaxTokens != 4096 {
				t.Errorf("generator request = %+v", c)
			}
		}
	}
}

func TestRun_FanOutCompleteness(t *testing.T) {
	kinds := []string{"header", "hero", "footer", "nav", "pricing", "faq", "gallery"}
	for n := 0; n <= len(kinds); n++ {
		t.Run(fmt.Sprintf("N=%d", n), func(t *testing.T) {
			fake := &gatewaytest.Fake{Handler: func(req gateway.Request) gatewaytest.Reply {
				switch {
				case strings.Contains(req.Prompt, "Kind: hero"):
					return gatewaytest.Reply{Err: errors.New("timeout")}
				case req.Mode == gateway.ModeSelector:
					return gatewaytest.Reply{Text: "nope"}
				}
				return gatewaytest.Reply{Text: `{}`}
			}}
			o := newOrchestrator(t, fake)
			o.Concurrency = 2
			report := o.Run(context.Background(), Request{Website: bakery, Kinds: kinds[:n]}, false)
			if len(report.Results) != n {
				t.Fatalf("results = %d, want %d", len(report.Results), n)
			}
			for i, res := range report.Results {
				if res.Kind != kinds[i] {
					t.Errorf("Results[%d].Kind = %q, want %q", i, res.Kind, kinds[i])
				}
				if res.Succeeded == (res.Err != nil) {
					t.Errorf("%s: Succeeded=%v Err=%v", res.Kind, res.Succeeded, res.Err)
				}
			}
		})
	}
}

func TestRun_DuplicateKindsCollapse(t *testing.T) {
	o := newOrchestrator(t, scripted("header-minimal", `{"BRAND_NAME": "x"}`))
	report := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"header", "header", " header "}}, false)
	if len(report.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(report.Results))
	}
}

func TestRun_KindsSharingFileNameFailLaterOnes(t *testing.T) {
	lib, err := library.New(map[string][]library.Candidate{
		"hero":        {{ID: "h1", Body: "LOWER"}},
		"Hero":        {{ID: "h2", Body: "UPPER"}},
		"hero-banner": {{ID: "b1", Body: "DASH"}},
		"hero_banner": {{ID: "b2", Body: "UNDERSCORE"}},
		"HERO":        {{ID: "h3", Body: "SHOUT"}},
	})
	if err != nil {
		t.Fatal(err)
	}
	fake := gatewaytest.Queue()
	o := newOrchestrator(t, fake)
	o.Templates = lib
	o.Concurrency = 4

	report := o.Run(context.Background(), Request{
		Website: bakery,
		Kinds:   []string{"hero", "Hero", "hero-banner", "hero_banner", "HERO"},
	}, false)

	for _, kind := range []string{"hero", "hero-banner"} {
		if res := resultFor(t, report, kind); !res.Succeeded {
			t.Errorf("%s failed: %v", kind, res.Err)
		}
	}
	for _, kind := range []string{"Hero", "hero_banner", "HERO"} {
		res := resultFor(t, report, kind)
		if res.Succeeded || !errors.Is(res.Err, ErrFileConflict) {
			t.Errorf("%s = %+v, want file conflict", kind, res)
		}
	}

	files := map[string]string{}
	entries, err := os.ReadDir(o.AssetDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		data, err := os.ReadFile(filepath.Join(o.AssetDir, e.Name()))
		if err != nil {
			t.Fatal(err)
		}
		files[e.Name()] = string(data)
	}
	want := map[string]string{"Hero.tsx": "LOWER", "HeroBanner.tsx": "DASH"}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("asset dir (-want +got):\n%s", diff)
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("calls = %d, want 0", len(fake.Calls()))
	}
}

func TestRun_WriteFailureIsPerKind(t *testing.T) {
	o := newOrchestrator(t, scripted("header-minimal", `{"BRAND_NAME": "x", "COPYRIGHT": "y"}`))
	if err := os.MkdirAll(o.AssetDir, 0755); err != nil {
		t.Fatal(err)
	}
	// A non-empty directory where the header file should go makes its write fail.
	if err := os.MkdirAll(filepath.Join(o.AssetDir, "Header.tsx", "keep"), 0755); err != nil {
		t.Fatal(err)
	}

	report := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"header", "footer"}}, false)
	header := resultFor(t, report, "header")
	footer := resultFor(t, report, "footer")
	if header.Succeeded {
		t.Error("header should fail to write")
	}
	if !footer.Succeeded {
		t.Errorf("footer failed: %v", footer.Err)
	}
}

func TestRun_BackupBeforeGeneration(t *testing.T) {
	o := newOrchestrator(t, scripted("header-minimal", `{"BRAND_NAME": "New"}`))
	if err := os.MkdirAll(o.AssetDir, 0755); err != nil {
		t.Fatal(err)
	}
	old := filepath.Join(o.AssetDir, "Header.tsx")
	if err := os.WriteFile(old, []byte("<header>Old</header>"), 0644); err != nil {
		t.Fatal(err)
	}
	o.Backups = backup.New(filepath.Join(t.TempDir(), "backups"))

	report := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"header"}}, true)
	if report.Backup == nil {
		t.Fatal("no backup record")
	}
	saved, err := os.ReadFile(filepath.Join(report.Backup.BackupPath, "Header.tsx"))
	if err != nil {
		t.Fatal(err)
	}
	if string(saved) != "<header>Old</header>" {
		t.Errorf("backup holds %q, want pre-generation content", saved)
	}
	res := report.Results[0]
	if !res.Succeeded || res.Changes != "+1 -1 lines" {
		t.Errorf("result = %+v", res)
	}
}

type failingSnapshot struct{}

func (failingSnapshot) Snapshot(string, string) (*backup.Record, error) {
	return nil, errors.New("disk full")
}

func TestRun_BackupFailureFailsEveryKind(t *testing.T) {
	fake := scripted("header-minimal", `{}`)
	o := newOrchestrator(t, fake)
	o.Backups = failingSnapshot{}

	report := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"header", "hero"}}, true)
	if len(report.Results) != 2 {
		t.Fatalf("results = %d", len(report.Results))
	}
	for _, res := range report.Results {
		if res.Succeeded || !strings.Contains(res.ErrorMessage(), "disk full") {
			t.Errorf("%s = %+v", res.Kind, res)
		}
	}
	if len(fake.Calls()) != 0 {
		t.Errorf("gateway called %d times after backup failure", len(fake.Calls()))
	}
}

func TestRun_BackupWithoutManager(t *testing.T) {
	o := newOrchestrator(t, scripted("x", "{}"))
	report := o.Run(context.Background(), Request{Website: bakery, Kinds: []string{"header"}}, true)
	if report.Results[0].Succeeded {
		t.Error("expected failure without a backup manager")
	}
}
