package stages

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/sitegen/internal/ux"
)

// DryRunPrint prints the stage plan and the first stage's prompt without
// calling a model.
func DryRunPrint(prompt string, specs []Spec, outputDir string) {
	total := len(specs)
	fmt.Printf("\n%sDry run, %d stages into %s:%s\n\n", ux.Bold, total, outputDir, ux.Reset)
	for i, s := range specs {
		fmt.Printf("  %s%d.%s %s%s%s", ux.Cyan, i+1, ux.Reset, ux.Bold, s.Name, ux.Reset)
		if s.Description != "" {
			fmt.Printf(": %s", s.Description)
		}
		fmt.Println()
		for _, line := range strings.Split(strings.TrimSpace(s.Instructions), "\n") {
			fmt.Printf("     %s%s%s\n", ux.Dim, line, ux.Reset)
		}
	}
	if total == 0 {
		fmt.Println()
		return
	}
	fmt.Printf("\n%sStage 1 prompt:%s\n\n%s\n\n", ux.Bold, ux.Reset,
		buildStagePrompt(NewGenerationContext(prompt), 1, total, specs[0]))
}
