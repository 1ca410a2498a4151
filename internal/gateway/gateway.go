// Package gateway defines the contract between the generation engines and a
// model service: send a prompt, receive streamed text, learn why it stopped.
package gateway

import "context"

// Mode selects the sampling profile for a call.
type Mode string

const (
	// ModeSelector is a fast, low-temperature call with a tiny output budget.
	ModeSelector Mode = "selector"
	// ModeGenerator is a creative call with a large output budget.
	ModeGenerator Mode = "generator"
)

// StopReason is the terminal signal reported by the model service.
type StopReason string

const (
	StopEndTurn   StopReason = "end_turn"
	StopMaxTokens StopReason = "max_tokens"
	StopRefusal   StopReason = "refusal"
	StopUnknown   StopReason = "unknown"
)

// Request is a single completion call.
type Request struct {
	Prompt      string
	System      string
	Temperature float64
	MaxTokens   int
	Mode        Mode
}

// DeltaFunc receives text deltas in arrival order.
type DeltaFunc func(text string)

// Gateway is implemented by every model backend. Complete blocks until the
// stream ends, calling fn for each text delta. Tests substitute a fake.
type Gateway interface {
	Complete(ctx context.Context, req Request, fn DeltaFunc) (StopReason, error)
}

// Profile holds the sampling parameters used for a mode.
type Profile struct {
	Temperature float64 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max-tokens"`
}

// DefaultProfile returns the built-in profile for mode.
func DefaultProfile(mode Mode) Profile {
	if mode == ModeSelector {
		return Profile{Temperature: 0.1, MaxTokens: 50}
	}
	return Profile{Temperature: 0.8, MaxTokens: 4096}
}

// Request builds a request for prompt using the profile's parameters.
func (p Profile) Request(mode Mode, system, prompt string) Request {
	return Request{
		Prompt:      prompt,
		System:      system,
		Temperature: p.Temperature,
		MaxTokens:   p.MaxTokens,
		Mode:        mode,
	}
}
