package doctor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jorge-barreto/sitegen/internal/gateway"
	"github.com/jorge-barreto/sitegen/internal/stages"
	"github.com/jorge-barreto/sitegen/internal/state"
	"github.com/jorge-barreto/sitegen/internal/ux"
)

const maxLogLines = 200

const diagSystem = `You diagnose failed multi-stage website generation runs. Be direct and concise.`

const diagPrompt = `A sitegen build failed. Analyze the context below and provide a concise diagnosis.

## Original Request
%s

## Failed Stage
%s

## Error
%s

## Raw Model Response (last %d lines)
%s
%s%s
Instructions:
1. Identify what went wrong: a refusal, a response that is not a JSON object, a transport problem, or an output path problem.
2. Classify this as a CONFIG problem (stage instructions, provider, token budget) or a REQUEST problem (the product description itself).
3. Suggest specific fixes, such as raising generator max-tokens or rewording stage instructions.
4. Recommend the next command to run.

Focus on actionable advice.`

// Run gathers failure context from artifacts and streams a diagnosis from gw to out.
func Run(ctx context.Context, gw gateway.Gateway, profile gateway.Profile, artifactsDir string, specs []stages.Spec, st *state.State, out io.Writer) error {
	if st.Status != state.StatusFailed && st.Status != state.StatusInterrupted {
		fmt.Fprintln(out, "No failed run to diagnose.")
		return nil
	}

	var (
		stage   int
		heading string
		section string
	)
	switch {
	case st.Phase == state.PhaseOutput:
		if len(specs) == 0 {
			return fmt.Errorf("config has no stages")
		}
		// Blame the stage that emitted the bad path, else the last one.
		stage = len(specs)
		if st.PathStage >= 1 && st.PathStage <= len(specs) {
			stage = st.PathStage
		}
		spec := specs[stage-1]
		heading = fmt.Sprintf("writing output (path from stage %d, %s)", stage, spec.Name)
		section = fmt.Sprintf("All %d stages completed; writing the output directory failed.\nResponse shown is from this stage:\n%s",
			len(specs), gatherStageSpec(stage, spec))
	case st.StageIndex < len(specs):
		stage = st.StageIndex + 1
		spec := specs[st.StageIndex]
		heading = fmt.Sprintf("stage %d/%d (%s)", stage, len(specs), spec.Name)
		section = gatherStageSpec(stage, spec)
	default:
		return fmt.Errorf("stage index %d out of range (config has %d stages)", st.StageIndex, len(specs))
	}

	diagText := buildPrompt(
		st.Prompt,
		section,
		st.Error,
		gatherLog(artifactsDir, stage),
		gatherPrompt(artifactsDir, stage),
		gatherTiming(artifactsDir, specs[stage-1].Name),
	)

	fmt.Fprintf(out, "\n%s%s══ Doctor: diagnosing %s ══%s\n\n", ux.Bold, ux.Cyan, heading, ux.Reset)

	req := profile.Request(gateway.ModeGenerator, diagSystem, diagText)
	if _, err := gw.Complete(ctx, req, func(text string) {
		io.WriteString(out, text)
	}); err != nil {
		return fmt.Errorf("diagnosis call: %w", err)
	}
	fmt.Fprintln(out)
	return nil
}

func buildPrompt(request, stageSpec, errMsg, log, prompt, timing string) string {
	var promptSection, timingSection string
	if prompt != "" {
		promptSection = fmt.Sprintf("\n## Stage Prompt\n%s\n", prompt)
	}
	if timing != "" {
		timingSection = fmt.Sprintf("\n## Execution Context\nTiming: %s\n", timing)
	}
	if errMsg == "" {
		errMsg = "(not recorded)"
	}
	return fmt.Sprintf(diagPrompt, request, stageSpec, errMsg, maxLogLines, log, promptSection, timingSection)
}

func gatherStageSpec(stage int, spec stages.Spec) string {
	parts := []string{
		fmt.Sprintf("Number: %d", stage),
		fmt.Sprintf("Name: %s", spec.Name),
	}
	if spec.Description != "" {
		parts = append(parts, fmt.Sprintf("Description: %s", spec.Description))
	}
	if spec.Instructions != "" {
		parts = append(parts, fmt.Sprintf("Instructions:\n%s", strings.TrimSpace(spec.Instructions)))
	}
	return strings.Join(parts, "\n")
}

func gatherLog(artifactsDir string, stage int) string {
	data, err := os.ReadFile(state.LogPath(artifactsDir, stage))
	if err != nil {
		return "(no response log found)"
	}
	if len(data) == 0 {
		return "(empty response)"
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > maxLogLines {
		lines = lines[len(lines)-maxLogLines:]
		return fmt.Sprintf("... (truncated to last %d lines)\n%s", maxLogLines, strings.Join(lines, "\n"))
	}
	return string(data)
}

func gatherPrompt(artifactsDir string, stage int) string {
	data, err := os.ReadFile(state.PromptPath(artifactsDir, stage))
	if err != nil {
		return ""
	}
	return string(data)
}

func gatherTiming(artifactsDir, stageName string) string {
	timing, err := state.LoadTiming(artifactsDir)
	if err != nil {
		return ""
	}
	var parts []string
	for _, e := range timing.Entries {
		if e.Stage != stageName {
			continue
		}
		if e.Duration != "" {
			parts = append(parts, fmt.Sprintf("%s started %s, duration %s",
				e.Stage, e.Start.Format("15:04:05"), e.Duration))
		} else {
			parts = append(parts, fmt.Sprintf("%s started %s (did not complete)",
				e.Stage, e.Start.Format("15:04:05")))
		}
	}
	return strings.Join(parts, "; ")
}
