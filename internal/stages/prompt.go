package stages

import (
	"fmt"
	"strings"
)

const systemPrompt = `You are a senior web developer generating a complete project one stage at a time.
Respond with a single JSON object and nothing else.`

const stagePromptTemplate = `## Product Request

%s

## Progress So Far

Completed stages: %s
Latest summary: %s
Tech stack: %s

## Existing Files

%s

## Stage %d of %d: %s

%s

%s

## Output Format

Respond with ONLY a JSON object of this shape:

{
  "stage": %d,
  "name": "%s",
  "description": "<one paragraph summarising what this stage produced>",
  "techStack": ["<technology>", "..."],
  "files": {
    "<relative/path>": "<complete file content>"
  }
}

File paths are relative to the project root. Include complete file contents,
never diffs. Re-emit an existing path only to replace it.`

// buildStagePrompt renders the prompt for stage number n of total.
func buildStagePrompt(g *GenerationContext, n, total int, spec Spec) string {
	completed := "none"
	if names := g.StageNames(); len(names) > 0 {
		completed = strings.Join(names, ", ")
	}
	summary := g.RunningSummary
	if summary == "" {
		summary = "(first stage)"
	}
	stack := "(not chosen yet)"
	if len(g.TechStack) > 0 {
		stack = strings.Join(g.TechStack, ", ")
	}
	files := "(none yet)"
	if paths := g.Paths(); len(paths) > 0 {
		files = "- " + strings.Join(paths, "\n- ")
	}

	return fmt.Sprintf(stagePromptTemplate,
		g.OriginalPrompt,
		completed, summary, stack,
		files,
		n, total, spec.Name,
		spec.Description,
		strings.TrimSpace(spec.Instructions),
		n, spec.Name,
	)
}
