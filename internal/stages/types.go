// Package stages runs the sequential, context-accumulating project build:
// each stage sees everything the earlier stages produced.
package stages

import (
	"errors"
	"fmt"
	"sort"
)

// ErrPathInvalid reports a generated file path that is absolute or escapes
// the output directory.
var ErrPathInvalid = errors.New("path invalid")

// Spec describes one stage of the pipeline.
type Spec struct {
	Name         string `yaml:"name"`
	Description  string `yaml:"description"`
	Instructions string `yaml:"instructions"`
}

// Result is the immutable output of one stage.
type Result struct {
	Number      int
	Name        string
	Description string
	Files       map[string]string // relative path -> content
}

// GenerationContext accumulates state across stages. It is only appended to.
type GenerationContext struct {
	OriginalPrompt string
	RunningSummary string
	TechStack      []string
	FileStructure  map[string]struct{}
	Completed      []Result
}

// NewGenerationContext returns an empty context for prompt.
func NewGenerationContext(prompt string) *GenerationContext {
	return &GenerationContext{
		OriginalPrompt: prompt,
		FileStructure:  make(map[string]struct{}),
	}
}

// add appends a completed stage and folds its paths and stack into the context.
func (g *GenerationContext) add(res Result, stack []string) {
	g.Completed = append(g.Completed, res)
	for p := range res.Files {
		g.FileStructure[p] = struct{}{}
	}
	g.RunningSummary = res.Description
	for _, s := range stack {
		if !contains(g.TechStack, s) {
			g.TechStack = append(g.TechStack, s)
		}
	}
}

// Paths returns every file path seen so far, sorted.
func (g *GenerationContext) Paths() []string {
	paths := make([]string, 0, len(g.FileStructure))
	for p := range g.FileStructure {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// StageNames returns the names of completed stages in order.
func (g *GenerationContext) StageNames() []string {
	names := make([]string, len(g.Completed))
	for i, r := range g.Completed {
		names[i] = r.Name
	}
	return names
}

// Merge combines every stage's files; later stages win on collision.
func (g *GenerationContext) Merge() map[string]string {
	merged := make(map[string]string)
	for _, r := range g.Completed {
		for p, content := range r.Files {
			merged[p] = content
		}
	}
	return merged
}

// StageSummary is the per-stage line of a build report.
type StageSummary struct {
	Number int
	Name   string
	Files  int
}

// Summary reports each completed stage with its file count.
func (g *GenerationContext) Summary() []StageSummary {
	out := make([]StageSummary, len(g.Completed))
	for i, r := range g.Completed {
		out[i] = StageSummary{Number: r.Number, Name: r.Name, Files: len(r.Files)}
	}
	return out
}

// Failure aborts a run at a specific stage.
type Failure struct {
	Stage int
	Name  string
	Err   error
}

func (f *Failure) Error() string {
	return fmt.Sprintf("stage %d (%s) failed: %v", f.Stage, f.Name, f.Err)
}

func (f *Failure) Unwrap() error {
	return f.Err
}

func contains(ss []string, s string) bool {
	for _, v := range ss {
		if v == s {
			return true
		}
	}
	return false
}
