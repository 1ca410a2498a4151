package stages

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jorge-barreto/sitegen/internal/extract"
	"github.com/jorge-barreto/sitegen/internal/gateway"
	"github.com/jorge-barreto/sitegen/internal/state"
	"github.com/jorge-barreto/sitegen/internal/ux"
)

// Controller drives the stage pipeline.
type Controller struct {
	Gateway gateway.Gateway
	Profile gateway.Profile

	// OutputDir is cleared and rewritten once every stage has succeeded.
	OutputDir string
	// ArtifactsDir receives prompts, raw responses, state and timing.
	// Empty disables artifact recording.
	ArtifactsDir string

	Logger *zap.Logger
	Quiet  bool
}

// stageResponse is the JSON object a stage must answer with.
type stageResponse struct {
	Stage       int               `json:"stage"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	TechStack   []string          `json:"techStack"`
	Files       map[string]string `json:"files"`
}

type run struct {
	c      *Controller
	log    *zap.Logger
	state  *state.State
	timing *state.Timing
}

// Run executes specs in order against prompt. Any stage failure aborts the
// run with a *Failure and leaves OutputDir untouched. On success the merged
// files replace the contents of OutputDir.
func (c *Controller) Run(ctx context.Context, prompt string, specs []Spec) (*GenerationContext, error) {
	if len(specs) == 0 {
		return nil, errors.New("no stages configured")
	}
	log := c.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := &run{
		c:      c,
		log:    log,
		timing: &state.Timing{},
		state: &state.State{
			RunID:      uuid.New().String(),
			Prompt:     prompt,
			StageCount: len(specs),
			Status:     state.StatusRunning,
		},
	}
	r.log = r.log.With(zap.String("run_id", r.state.RunID))
	if c.ArtifactsDir != "" {
		if err := state.Reset(c.ArtifactsDir); err != nil {
			return nil, fmt.Errorf("preparing artifacts: %w", err)
		}
		r.save()
	}

	gc := NewGenerationContext(prompt)
	total := len(specs)
	for i, spec := range specs {
		n := i + 1
		if err := ctx.Err(); err != nil {
			f := &Failure{Stage: n, Name: spec.Name, Err: err}
			r.log.Warn("run interrupted", zap.Int("stage", n), zap.String("name", spec.Name))
			r.feedback(n, f)
			return gc, r.fail(state.StatusInterrupted, f)
		}
		if !c.Quiet {
			ux.StageHeader(i, total, spec.Name, spec.Description)
		}
		r.timing.AddStart(spec.Name)
		start := time.Now()

		res, stack, err := r.runStage(ctx, gc, n, total, spec)
		r.timing.AddEnd(spec.Name)
		if err != nil {
			f := &Failure{Stage: n, Name: spec.Name, Err: err}
			if !c.Quiet {
				ux.StageFail(i, spec.Name, err.Error())
			}
			r.log.Error("stage failed", zap.Int("stage", n), zap.String("name", spec.Name), zap.Error(err))
			r.feedback(n, f)
			status := state.StatusFailed
			if ctx.Err() != nil {
				status = state.StatusInterrupted
			}
			return gc, r.fail(status, f)
		}

		gc.add(res, stack)
		r.state.Advance()
		r.save()
		if !c.Quiet {
			ux.StageComplete(i, len(res.Files), time.Since(start))
		}
		r.log.Info("stage complete",
			zap.Int("stage", n),
			zap.String("name", res.Name),
			zap.Int("files", len(res.Files)),
			zap.Duration("elapsed", time.Since(start)))
	}

	files := gc.Merge()
	if err := Materialize(c.OutputDir, files); err != nil {
		err = fmt.Errorf("writing output: %w", err)
		r.state.Phase = state.PhaseOutput
		if errors.Is(err, ErrPathInvalid) {
			r.state.PathStage = gc.invalidPathStage()
		}
		r.log.Error("writing output failed", zap.String("output", c.OutputDir), zap.Int("path_stage", r.state.PathStage), zap.Error(err))
		if !c.Quiet {
			ux.Warn(err.Error())
		}
		return gc, r.fail(state.StatusFailed, err)
	}
	r.state.Status = state.StatusCompleted
	r.state.Files = len(files)
	r.save()
	r.flush()
	if !c.Quiet {
		ux.Success(total, len(files), c.OutputDir)
	}
	r.log.Info("build complete", zap.Int("files", len(files)), zap.String("output", c.OutputDir))
	return gc, nil
}

func (r *run) runStage(ctx context.Context, gc *GenerationContext, n, total int, spec Spec) (Result, []string, error) {
	prompt := buildStagePrompt(gc, n, total, spec)
	if r.c.ArtifactsDir != "" {
		if err := os.WriteFile(state.PromptPath(r.c.ArtifactsDir, n), []byte(prompt), 0644); err != nil {
			r.log.Warn("saving prompt", zap.Error(err))
		}
	}

	req := r.c.Profile.Request(gateway.ModeGenerator, systemPrompt, prompt)
	gw := r.c.Gateway
	if !r.c.Quiet {
		gw = progressGateway{Gateway: gw}
	}
	obj, raw, err := extract.Complete(ctx, gw, req)
	if r.c.ArtifactsDir != "" {
		if werr := os.WriteFile(state.LogPath(r.c.ArtifactsDir, n), []byte(raw), 0644); werr != nil {
			r.log.Warn("saving response", zap.Error(werr))
		}
	}
	if err != nil {
		return Result{}, nil, err
	}

	var resp stageResponse
	if err := json.Unmarshal(obj, &resp); err != nil {
		return Result{}, nil, &extract.ParseError{Reason: err.Error()}
	}
	if resp.Stage != 0 && resp.Stage != n {
		msg := fmt.Sprintf("stage %d answered as stage %d", n, resp.Stage)
		r.log.Warn(msg)
		if !r.c.Quiet {
			ux.Warn(msg)
		}
	}

	res := Result{
		Number:      n,
		Name:        spec.Name,
		Description: resp.Description,
		Files:       make(map[string]string, len(resp.Files)),
	}
	if res.Description == "" {
		res.Description = spec.Description
	}
	for p, content := range resp.Files {
		key := path.Clean(p)
		if _, dup := res.Files[key]; dup {
			return Result{}, nil, &extract.ParseError{Reason: fmt.Sprintf("file %q is listed more than once", key)}
		}
		res.Files[key] = content
	}
	if len(res.Files) == 0 {
		r.log.Warn("stage produced no files", zap.Int("stage", n))
	}
	return res, resp.TechStack, nil
}

func (r *run) save() {
	if r.c.ArtifactsDir == "" {
		return
	}
	if err := r.state.Save(r.c.ArtifactsDir); err != nil {
		r.log.Warn("saving state", zap.Error(err))
	}
}

func (r *run) flush() {
	if r.c.ArtifactsDir == "" {
		return
	}
	if err := r.timing.Flush(r.c.ArtifactsDir); err != nil {
		r.log.Warn("flushing timing", zap.Error(err))
	}
}

func (r *run) feedback(n int, f *Failure) {
	if r.c.ArtifactsDir == "" {
		return
	}
	if err := state.WriteFeedback(r.c.ArtifactsDir, n, f.Error()+"\n"); err != nil {
		r.log.Warn("saving feedback", zap.Error(err))
	}
}

// fail records the terminal status and returns err.
func (r *run) fail(status string, err error) error {
	r.state.Fail(status, err)
	r.save()
	r.flush()
	if !r.c.Quiet {
		ux.RetryHint()
	}
	return err
}

// progressGateway reports streamed characters to the terminal.
type progressGateway struct {
	gateway.Gateway
}

func (p progressGateway) Complete(ctx context.Context, req gateway.Request, fn gateway.DeltaFunc) (gateway.StopReason, error) {
	chars := 0
	stop, err := p.Gateway.Complete(ctx, req, func(text string) {
		chars += len(text)
		ux.Progress(chars)
		fn(text)
	})
	if chars > 0 {
		ux.ProgressDone()
	}
	return stop, err
}
