package ux

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jorge-barreto/sitegen/internal/state"
)

// RenderStatus prints the last build's progress against the configured stage names.
func RenderStatus(stageNames []string, st *state.State, artifactsDir string) {
	if st.RunID == "" {
		fmt.Printf("%sNo build has run yet.%s Start one with: sitegen build \"<prompt>\"\n", Dim, Reset)
		return
	}
	timing, _ := state.LoadTiming(artifactsDir)

	fmt.Printf("%sRun:%s     %s\n", Bold, Reset, st.RunID)
	fmt.Printf("%sPrompt:%s  %s\n", Bold, Reset, truncate(st.Prompt, 70))
	switch {
	case st.Status == state.StatusCompleted:
		fmt.Printf("%sState:%s   %s%scompleted%s, %d files\n", Bold, Reset, Green, Bold, Reset, st.Files)
	case st.Phase == state.PhaseOutput:
		fmt.Printf("%sState:%s   all %d stages done, %s writing output\n", Bold, Reset, len(stageNames), st.Status)
	case st.StageIndex < len(stageNames):
		fmt.Printf("%sState:%s   %d/%d (%s), %s\n",
			Bold, Reset, st.StageIndex+1, len(stageNames), stageNames[st.StageIndex], st.Status)
	default:
		fmt.Printf("%sState:%s   %s\n", Bold, Reset, st.Status)
	}
	if st.Error != "" {
		fmt.Printf("%sError:%s   %s%s%s\n", Bold, Reset, Red, st.Error, Reset)
	}

	if st.StageIndex > 0 {
		fmt.Printf("\n%sCompleted:%s\n", Bold, Reset)
		for i := 0; i < st.StageIndex && i < len(stageNames); i++ {
			dur := ""
			if timing != nil {
				if d := timing.Duration(stageNames[i]); d != "" {
					dur = "(" + d + ")"
				}
			}
			fmt.Printf("  %s%d%s  %-20s %sdone%s  %s\n",
				Dim, i+1, Reset, stageNames[i], Green, Reset, dur)
		}
	}

	if st.Status != state.StatusCompleted && st.StageIndex < len(stageNames) {
		fmt.Printf("\n%sRemaining:%s\n", Bold, Reset)
		for i := st.StageIndex; i < len(stageNames); i++ {
			marker := "  "
			if i == st.StageIndex {
				marker = fmt.Sprintf("%s→%s ", Yellow, Reset)
			}
			fmt.Printf("  %s%s%d%s  %s\n", marker, Dim, i+1, Reset, stageNames[i])
		}
	}

	fmt.Printf("\n%sArtifacts:%s\n", Bold, Reset)
	entries, err := os.ReadDir(artifactsDir)
	if err != nil {
		fmt.Printf("  %s(none)%s\n", Dim, Reset)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			subEntries, _ := os.ReadDir(filepath.Join(artifactsDir, e.Name()))
			if len(subEntries) > 0 {
				first := subEntries[0].Name()
				last := subEntries[len(subEntries)-1].Name()
				if first == last {
					fmt.Printf("  %s/%s/%s\n", artifactsDir, e.Name(), first)
				} else {
					fmt.Printf("  %s/%s/%s .. %s\n", artifactsDir, e.Name(), first, last)
				}
			}
		} else {
			fmt.Printf("  %s/%s\n", artifactsDir, e.Name())
		}
	}
	fmt.Println()
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
