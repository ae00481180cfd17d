package advisor

import (
	"strings"
	"unicode/utf8"
)

// Tone is the overall register of a negotiation message.
type Tone int

const (
	Professional Tone = iota
	Polite
	Urgent
	Informed
)

func (t Tone) String() string {
	switch t {
	case Polite:
		return "Polite"
	case Urgent:
		return "Urgent"
	case Informed:
		return "Informed"
	default:
		return "Professional"
	}
}

// Effectiveness is a rough score of how likely a message is to land.
type Effectiveness int

const (
	EffectivenessLow Effectiveness = iota
	EffectivenessMedium
	EffectivenessHigh
)

func (e Effectiveness) String() string {
	switch e {
	case EffectivenessHigh:
		return "High"
	case EffectivenessMedium:
		return "Medium"
	default:
		return "Low"
	}
}

const currencySymbols = "£$€¥"

// AnalyzeTone classifies message. The first matching rule wins.
func AnalyzeTone(message string) Tone {
	lower := strings.ToLower(message)
	switch {
	case containsAny(lower, "would you accept", "would you consider"):
		return Polite
	case containsAny(lower, "immediately", "right now"):
		return Urgent
	case containsAny(lower, "research", "market"):
		return Informed
	default:
		return Professional
	}
}

// AnalyzeEffectiveness scores message one point each for length over 50
// characters, a currency symbol, a conditional ("would"/"could") and a
// time cue ("quickly"/"today").
func AnalyzeEffectiveness(message string) Effectiveness {
	lower := strings.ToLower(message)
	score := 0
	if utf8.RuneCountInString(message) > 50 {
		score++
	}
	if strings.ContainsAny(message, currencySymbols) {
		score++
	}
	if containsAny(lower, "would", "could") {
		score++
	}
	if containsAny(lower, "quickly", "today") {
		score++
	}

	switch {
	case score >= 3:
		return EffectivenessHigh
	case score >= 2:
		return EffectivenessMedium
	default:
		return EffectivenessLow
	}
}

func containsAny(s string, substrs ...string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
