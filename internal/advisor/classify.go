// Package advisor turns analysis results into labels and advice. Every
// function here is pure: the same input always gives the same output.
package advisor

import (
	"math"
	"strings"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
)

// Level is a three-way high/medium/low banding.
type Level int

const (
	Low Level = iota
	Medium
	High
)

func (l Level) String() string {
	switch l {
	case High:
		return "high"
	case Medium:
		return "medium"
	default:
		return "low"
	}
}

func band(v int) Level {
	if v >= 70 {
		return High
	}
	if v >= 40 {
		return Medium
	}
	return Low
}

// StrengthClass bands a 0..100 negotiation strength.
func StrengthClass(strength int) Level {
	return band(strength)
}

// ProbabilityClass bands a 0..100 success probability.
func ProbabilityClass(probability int) Level {
	return band(probability)
}

// ProbabilityFromConfidence converts a 1..5 confidence into a percentage.
func ProbabilityFromConfidence(confidence int) int {
	return int(math.Round(float64(confidence) / 5 * 100))
}

// FormatSellerType returns the display label for a seller motivation.
func FormatSellerType(m backend.SellerMotivation) string {
	switch m {
	case backend.MotivatedSeller:
		return "Motivated Seller"
	case backend.TestingMarket:
		return "Testing Market"
	case backend.FirmOnPrice:
		return "Firm on Price"
	case backend.TypicalSeller:
		return "Typical Seller"
	default:
		return "Unknown"
	}
}

// SellerBadge returns the badge name for a seller motivation,
// e.g. "motivated-seller".
func SellerBadge(m backend.SellerMotivation) string {
	return strings.Replace(m.String(), "_", "-", 1)
}

// FormatBrandTier returns the display label for a brand demand level.
func FormatBrandTier(d backend.DemandLevel) string {
	switch d {
	case backend.DemandLuxury:
		return "Luxury Brand"
	case backend.DemandHigh:
		return "Premium Brand"
	case backend.DemandMedium:
		return "Mid-Range Brand"
	case backend.DemandLow:
		return "Budget Brand"
	case backend.DemandTrend:
		return "Streetwear/Trend"
	default:
		return "Standard Brand"
	}
}

// MethodIcon returns the icon shown next to a strategy method.
func MethodIcon(m backend.Method) string {
	switch m {
	case backend.MethodQuickOffer:
		return "⚡"
	case backend.MethodDirectMessage:
		return "📝"
	case backend.MethodConfidentOffer:
		return "🎯"
	case backend.MethodPatientApproach:
		return "🕐"
	case backend.MethodWatchAndWait:
		return "👀"
	default:
		return "💬"
	}
}

// ConfidenceStars renders a 1..5 confidence as filled and empty stars.
// Out-of-range values are clamped.
func ConfidenceStars(confidence int) string {
	n := max(1, min(5, confidence))
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}
