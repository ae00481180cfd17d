package session

import (
	"strings"
	"unicode/utf8"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
)

const (
	MinItemNameLength  = 3
	MaxPrice           = 10000
	MaxDaysListed      = 365
	MaxInterestedCount = 1000
)

// Validate checks raw against the listing bounds and returns the normalised
// input (item name trimmed). Nothing that fails here may reach the backend.
func Validate(raw backend.ListingInput) (backend.ListingInput, error) {
	input := raw.Clone()
	input.ItemName = strings.TrimSpace(input.ItemName)

	switch {
	case utf8.RuneCountInString(input.ItemName) < MinItemNameLength:
		return input, &ValidationError{Field: "item name", Reason: "must be at least 3 characters"}
	case !(input.Price > 0) || input.Price > MaxPrice:
		return input, &ValidationError{Field: "price", Reason: "must be greater than 0 and at most 10000"}
	case input.DaysListed < 0 || input.DaysListed > MaxDaysListed:
		return input, &ValidationError{Field: "days listed", Reason: "must be between 0 and 365"}
	case input.InterestedCount < 0 || input.InterestedCount > MaxInterestedCount:
		return input, &ValidationError{Field: "interested count", Reason: "must be between 0 and 1000"}
	case input.ViewCount != nil && *input.ViewCount < 0:
		return input, &ValidationError{Field: "view count", Reason: "must not be negative"}
	}

	return input, nil
}
