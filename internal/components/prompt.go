package components

import (
	"fmt"
	"strings"

	"github.com/jorge-barreto/sitegen/internal/library"
)

const selectorSystem = `You choose the best template for a website component. Answer with the template id only.`

const generatorSystem = `You write website copy. Respond with a single JSON object and nothing else.`

func websiteBlock(w WebsiteContext) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Name: %s\n", w.Name)
	fmt.Fprintf(&b, "Industry: %s\n", w.Industry)
	if w.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", w.Description)
	}
	fmt.Fprintf(&b, "Style: %s\n", orNone(w.StylePreference))
	fmt.Fprintf(&b, "Personality: %s\n", orNone(w.BrandPersonality))
	return b.String()
}

func buildSelectionPrompt(kind string, w WebsiteContext, cands []library.Candidate) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Website\n\n%s\n", websiteBlock(w))
	fmt.Fprintf(&b, "## %s templates\n\n", kind)
	for _, c := range cands {
		fmt.Fprintf(&b, "- %s: %s\n", c.ID, c.Description)
	}
	b.WriteString("\nReply with exactly one template id from the list, on a single line.")
	return b.String()
}

func buildGenerationPrompt(kind string, w WebsiteContext, c Creativity, cand library.Candidate, names []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "## Website\n\n%s\n", websiteBlock(w))
	fmt.Fprintf(&b, "## Component\n\nKind: %s\nTemplate: %s (%s)\n\n```\n%s\n```\n\n", kind, cand.ID, cand.Description, cand.Body)
	fmt.Fprintf(&b, "## Tone\n\n%s\n\n", c.Instruction())
	b.WriteString("## Output Format\n\nRespond with ONLY a JSON object mapping each placeholder name to its text:\n\n{\n")
	for i, n := range names {
		sep := ","
		if i == len(names)-1 {
			sep = ""
		}
		fmt.Fprintf(&b, "  %q: \"...\"%s\n", n, sep)
	}
	b.WriteString("}\n\nValues are plain text. Do not include the braces of the placeholder.")
	return b.String()
}

func orNone(s string) string {
	if s == "" {
		return "(none given)"
	}
	return s
}
