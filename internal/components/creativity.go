package components

import "fmt"

// Creativity controls how adventurous generated copy is.
type Creativity string

const (
	Conservative Creativity = "conservative"
	Balanced     Creativity = "balanced"
	Experimental Creativity = "experimental"
)

// ParseCreativity maps a flag value to a Creativity. Empty means Balanced.
func ParseCreativity(s string) (Creativity, error) {
	switch Creativity(s) {
	case "":
		return Balanced, nil
	case Conservative, Balanced, Experimental:
		return Creativity(s), nil
	}
	return "", fmt.Errorf("unknown creativity %q (want conservative, balanced or experimental)", s)
}

// Instruction is the tone guidance embedded in the generation prompt.
func (c Creativity) Instruction() string {
	switch c {
	case Conservative:
		return "Write clear, professional copy. Prefer familiar phrasing over clever wordplay."
	case Experimental:
		return "Be bold and surprising. Unusual angles, vivid language and playful wording are welcome."
	default:
		return "Balance clarity with personality. Be engaging without being gimmicky."
	}
}

// Temperature is the sampling temperature for generation calls.
func (c Creativity) Temperature() float64 {
	switch c {
	case Conservative:
		return 0.5
	case Experimental:
		return 1.0
	default:
		return 0.8
	}
}
