package ux

import (
	"fmt"
	"time"

	"github.com/jorge-barreto/sitegen/internal/state"
)

// ANSI color helpers
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Red    = "\033[31m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Cyan   = "\033[36m"
)

func timestamp() string {
	return time.Now().Format("15:04:05")
}

// StageHeader prints a timestamped stage header. index is 0-based.
func StageHeader(index, total int, name, description string) {
	fmt.Printf("\n%s[%s]%s %s══════════════════════════════════════%s\n",
		Dim, timestamp(), Reset, Cyan, Reset)
	desc := ""
	if description != "" {
		desc = ": " + description
	}
	fmt.Printf("%s[%s]%s  %sStage %d/%d %s%s%s\n",
		Dim, timestamp(), Reset, Bold, index+1, total, name, desc, Reset)
	fmt.Printf("%s[%s]%s %s══════════════════════════════════════%s\n",
		Dim, timestamp(), Reset, Cyan, Reset)
}

// StageComplete prints a stage completion message.
func StageComplete(index, files int, duration time.Duration) {
	fmt.Printf("%s[%s]%s  %s✓ Stage %d complete, %d files (%s)%s\n",
		Dim, timestamp(), Reset, Green, index+1, files, state.FormatDuration(duration), Reset)
}

// StageFail prints a stage failure message.
func StageFail(index int, name, errMsg string) {
	fmt.Printf("%s[%s]%s  %s✗ Stage %d (%s) failed: %s%s\n",
		Dim, timestamp(), Reset, Red, index+1, name, errMsg, Reset)
}

// RetryHint prints the command that restarts a failed build.
func RetryHint() {
	fmt.Printf("\n%sRetry:%s sitegen build (artifacts kept in .sitegen/artifacts)\n", Yellow, Reset)
}

// Warn prints a non-fatal warning.
func Warn(msg string) {
	fmt.Printf("%s[%s]%s  %s⚠ %s%s\n", Dim, timestamp(), Reset, Yellow, msg, Reset)
}

// Progress prints streamed model output length while a stage runs.
func Progress(chars int) {
	fmt.Printf("\r  %s… %d chars received%s", Dim, chars, Reset)
}

// ProgressDone terminates a Progress line.
func ProgressDone() {
	fmt.Println()
}

// Success prints a final success message.
func Success(total, files int, outputDir string) {
	fmt.Printf("\n%s[%s]%s  %s%s══ All %d stages complete: %d files in %s ══%s\n\n",
		Dim, timestamp(), Reset, Bold, Green, total, files, outputDir, Reset)
}
