package ux

import (
	"fmt"
)

// KindLine is one row of a component report.
type KindLine struct {
	Kind       string
	TemplateID string
	Source     string
	Path       string
	Changes    string
	Succeeded  bool
	Error      string
}

// BackupCreated prints the location of a pre-generation snapshot.
func BackupCreated(path string, files int) {
	fmt.Printf("%s[%s]%s  %s⛁ Backup of %d files at %s%s\n",
		Dim, timestamp(), Reset, Cyan, files, path, Reset)
}

// ComponentReport prints one line per kind and a closing tally.
func ComponentReport(lines []KindLine) {
	failed := 0
	fmt.Printf("\n%sComponents:%s\n", Bold, Reset)
	for _, l := range lines {
		if !l.Succeeded {
			failed++
			fmt.Printf("  %s✗%s %-14s %s%s%s\n", Red, Reset, l.Kind, Red, l.Error, Reset)
			continue
		}
		tpl := l.TemplateID
		if tpl == "" {
			tpl = "-"
		}
		fmt.Printf("  %s✓%s %-14s %-20s %s%-9s%s %s", Green, Reset, l.Kind, tpl, Dim, l.Source, Reset, l.Path)
		if l.Changes != "" {
			fmt.Printf(" %s(%s)%s", Dim, l.Changes, Reset)
		}
		fmt.Println()
	}
	if failed == 0 {
		fmt.Printf("\n%s%d/%d components generated%s\n\n", Green, len(lines), len(lines), Reset)
		return
	}
	fmt.Printf("\n%s%d/%d components generated, %d failed%s\n\n",
		Yellow, len(lines)-failed, len(lines), failed, Reset)
}
