package components

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jorge-barreto/sitegen/internal/backup"
	"github.com/jorge-barreto/sitegen/internal/extract"
	"github.com/jorge-barreto/sitegen/internal/gateway"
	"github.com/jorge-barreto/sitegen/internal/library"
	"github.com/jorge-barreto/sitegen/internal/placeholder"
)

// DefaultConcurrency bounds the fan-out when Orchestrator.Concurrency is unset.
const DefaultConcurrency = 4

// Templates looks up the candidates for a component kind.
type Templates interface {
	Candidates(kind string) []library.Candidate
}

// Snapshotter copies the asset store before it is written to.
type Snapshotter interface {
	Snapshot(sourceDir, runID string) (*backup.Record, error)
}

// Orchestrator generates component kinds concurrently into AssetDir.
type Orchestrator struct {
	Gateway   gateway.Gateway
	Templates Templates
	Backups   Snapshotter

	Selector  gateway.Profile
	Generator gateway.Profile // Temperature is replaced by the request's creativity

	AssetDir    string
	Ext         string // defaults to ".tsx"
	Concurrency int

	Logger *zap.Logger
}

// Run produces exactly one Result per distinct requested kind. It never
// fails as a whole: every problem is reported on the kind it affected.
func (o *Orchestrator) Run(ctx context.Context, req Request, backupRequested bool) *Report {
	log := o.Logger
	if log == nil {
		log = zap.NewNop()
	}
	report := &Report{RunID: uuid.New().String()}
	log = log.With(zap.String("run_id", report.RunID))
	kinds := dedupe(req.Kinds)
	report.Results = make([]Result, len(kinds))

	if backupRequested {
		rec, err := o.snapshot(report.RunID)
		if err != nil {
			log.Error("backup failed", zap.Error(err))
			for i, kind := range kinds {
				report.Results[i] = Result{Kind: kind, Err: fmt.Errorf("backup failed: %w", err)}
			}
			return report
		}
		report.Backup = rec
		log.Info("backup created", zap.String("path", rec.BackupPath), zap.Int("files", rec.Files))
	}

	limit := o.Concurrency
	if limit < 1 {
		limit = DefaultConcurrency
	}
	conflicts := o.conflicts(kinds)
	var g errgroup.Group
	g.SetLimit(limit)
	for i, kind := range kinds {
		if err := conflicts[i]; err != nil {
			log.Warn("kind failed", zap.String("kind", kind), zap.Error(err))
			report.Results[i] = Result{Kind: kind, Err: err}
			continue
		}
		g.Go(func() error {
			report.Results[i] = o.runKind(ctx, kind, req, log.With(zap.String("kind", kind)))
			return nil
		})
	}
	g.Wait()
	return report
}

func (o *Orchestrator) ext() string {
	if o.Ext == "" {
		return ".tsx"
	}
	return o.Ext
}

// conflicts returns, per kind, an error when its file name was already
// claimed by an earlier kind. Names are compared case-insensitively.
func (o *Orchestrator) conflicts(kinds []string) []error {
	errs := make([]error, len(kinds))
	owner := make(map[string]string, len(kinds))
	for i, kind := range kinds {
		name, err := FileName(kind, o.ext())
		if err != nil {
			continue
		}
		key := strings.ToLower(name)
		if first, ok := owner[key]; ok {
			errs[i] = fmt.Errorf("%w: %q and %q both map to %s", ErrFileConflict, first, kind, name)
			continue
		}
		owner[key] = kind
	}
	return errs
}

func (o *Orchestrator) snapshot(runID string) (*backup.Record, error) {
	if o.Backups == nil {
		return nil, errors.New("no backup manager configured")
	}
	return o.Backups.Snapshot(o.AssetDir, runID)
}

func (o *Orchestrator) runKind(ctx context.Context, kind string, req Request, log *zap.Logger) Result {
	res := Result{Kind: kind}
	fail := func(err error) Result {
		res.Err = err
		log.Warn("kind failed", zap.Error(err))
		return res
	}

	name, err := FileName(kind, o.ext())
	if err != nil {
		return fail(err)
	}
	var cands []library.Candidate
	if o.Templates != nil {
		cands = o.Templates.Candidates(kind)
	}
	if len(cands) == 0 {
		return fail(ErrNoTemplates)
	}

	cand, err := o.selectCandidate(ctx, kind, req.Website, cands, log)
	if err != nil {
		return fail(err)
	}
	res.TemplateID = cand.ID

	values, source, err := o.generateValues(ctx, kind, req, cand, log)
	if err != nil {
		return fail(err)
	}
	res.Source = source
	res.Body = placeholder.Fill(cand.Body, values)

	res.Path = filepath.Join(o.AssetDir, name)
	changes, err := persist(res.Path, res.Body)
	if err != nil {
		return fail(fmt.Errorf("writing %s: %w", res.Path, err))
	}
	res.Changes = changes
	res.Succeeded = true
	log.Info("kind generated",
		zap.String("template", cand.ID),
		zap.String("source", string(source)),
		zap.String("path", res.Path))
	return res
}

// selectCandidate asks the model to pick a template. An answer naming no
// known candidate falls back to the first one.
func (o *Orchestrator) selectCandidate(ctx context.Context, kind string, w WebsiteContext, cands []library.Candidate, log *zap.Logger) (library.Candidate, error) {
	if len(cands) == 1 {
		return cands[0], nil
	}
	req := o.Selector.Request(gateway.ModeSelector, selectorSystem, buildSelectionPrompt(kind, w, cands))
	text, stop, err := extract.Collect(ctx, o.Gateway, req)
	if err != nil {
		return library.Candidate{}, fmt.Errorf("selecting template: %w", err)
	}
	if stop == gateway.StopRefusal {
		return library.Candidate{}, fmt.Errorf("selecting template: %w", extract.ErrRefused)
	}
	cand, ok := matchCandidate(text, cands)
	if !ok {
		log.Warn("selector answer names no candidate, using first", zap.String("answer", text))
	}
	return cand, nil
}

func matchCandidate(answer string, cands []library.Candidate) (library.Candidate, bool) {
	line := strings.TrimSpace(answer)
	if i := strings.IndexByte(line, '\n'); i >= 0 {
		line = line[:i]
	}
	line = strings.Trim(strings.TrimSpace(line), "\"'`")
	line = strings.TrimSpace(line)
	for _, c := range cands {
		if c.ID == line {
			return c, true
		}
	}
	return cands[0], false
}

// generateValues produces a value for every placeholder in cand. A refused
// or unparseable response is replaced by Fallback; transport errors fail.
func (o *Orchestrator) generateValues(ctx context.Context, kind string, req Request, cand library.Candidate, log *zap.Logger) (map[string]string, Source, error) {
	names := placeholder.Extract(cand.Body)
	if len(names) == 0 {
		return nil, SourceTemplate, nil
	}

	profile := o.Generator
	profile.Temperature = req.Creativity.Temperature()
	gr := profile.Request(gateway.ModeGenerator, generatorSystem,
		buildGenerationPrompt(kind, req.Website, req.Creativity, cand, names))

	obj, _, err := extract.Complete(ctx, o.Gateway, gr)
	var pe *extract.ParseError
	switch {
	case errors.Is(err, extract.ErrRefused), errors.As(err, &pe):
		log.Warn("generation unusable, using fallback copy", zap.Error(err))
		return Fallback(names, req.Website), SourceFallback, nil
	case err != nil:
		return nil, "", fmt.Errorf("generating copy: %w", err)
	}

	values, err := stringValues(obj)
	if err != nil {
		log.Warn("generation unusable, using fallback copy", zap.Error(err))
		return Fallback(names, req.Website), SourceFallback, nil
	}
	if missing := placeholder.Missing(names, values); len(missing) > 0 {
		log.Debug("filling missing placeholders", zap.Strings("names", missing))
		for k, v := range Fallback(missing, req.Website) {
			values[k] = v
		}
	}
	return values, SourceModel, nil
}

// stringValues flattens a JSON object to strings. Non-string scalars keep
// their JSON text; nulls are dropped.
func stringValues(obj json.RawMessage) (map[string]string, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(obj, &raw); err != nil {
		return nil, err
	}
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		if string(v) == "null" {
			continue
		}
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			out[k] = s
			continue
		}
		out[k] = string(v)
	}
	return out, nil
}

func dedupe(kinds []string) []string {
	seen := make(map[string]bool, len(kinds))
	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		k = strings.TrimSpace(k)
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, k)
	}
	return out
}
