package main

import (
	"errors"
	"strconv"
	"strings"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/render"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/session"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/charmbracelet/huh"
)

// Choices offered after an analysis besides the outcomes themselves.
const (
	choiceSkip  = "skip"
	choiceRetry = "retry"
)

// parseDraft turns raw form fields into a listing input. Fields that are not
// numbers fail the same way as out-of-range ones.
func parseDraft(d storage.FormDraft) (backend.ListingInput, error) {
	input := backend.ListingInput{ItemName: strings.TrimSpace(d.ItemName)}

	price, err := strconv.ParseFloat(strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(d.Price), "£")), 64)
	if err != nil {
		return input, &session.ValidationError{Field: "price", Reason: "must be a number"}
	}
	input.Price = price

	if input.DaysListed, err = strconv.Atoi(strings.TrimSpace(d.Days)); err != nil {
		return input, &session.ValidationError{Field: "days listed", Reason: "must be a whole number"}
	}
	if input.InterestedCount, err = strconv.Atoi(strings.TrimSpace(d.Interested)); err != nil {
		return input, &session.ValidationError{Field: "interested count", Reason: "must be a whole number"}
	}

	if views := strings.TrimSpace(d.Views); views != "" {
		n, err := strconv.Atoi(views)
		if err != nil {
			return input, &session.ValidationError{Field: "view count", Reason: "must be a whole number"}
		}
		input.ViewCount = &n
	}

	return input, nil
}

func draftFromInput(in backend.ListingInput) storage.FormDraft {
	d := storage.FormDraft{
		ItemName:   in.ItemName,
		Price:      strconv.FormatFloat(in.Price, 'f', -1, 64),
		Days:       strconv.Itoa(in.DaysListed),
		Interested: strconv.Itoa(in.InterestedCount),
	}
	if in.ViewCount != nil {
		d.Views = strconv.Itoa(*in.ViewCount)
	}
	return d
}

func formTheme(theme storage.Theme) *huh.Theme {
	if theme == storage.ThemeDark {
		return huh.ThemeCharm()
	}
	return huh.ThemeBase16()
}

func requireNumber(bitSize int, float bool) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(s), "£"))
		if s == "" {
			return errors.New("required")
		}
		var err error
		if float {
			_, err = strconv.ParseFloat(s, bitSize)
		} else {
			_, err = strconv.ParseInt(s, 10, bitSize)
		}
		if err != nil {
			return errors.New("must be a number")
		}
		return nil
	}
}

// runListingForm edits draft in place. suggestions prefill the item name
// field's autocomplete.
func runListingForm(draft *storage.FormDraft, theme storage.Theme, suggestions []string) error {
	if draft.Days == "" {
		draft.Days = "0"
	}
	if draft.Interested == "" {
		draft.Interested = "0"
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Item name").
				Description("Brand and model, e.g. Nike Air Max 90").
				Suggestions(suggestions).
				Value(&draft.ItemName).
				Validate(func(s string) error {
					if len([]rune(strings.TrimSpace(s))) < session.MinItemNameLength {
						return errors.New("at least 3 characters")
					}
					return nil
				}),
			huh.NewInput().
				Title("Asking price (£)").
				Value(&draft.Price).
				Validate(requireNumber(64, true)),
			huh.NewInput().
				Title("Days listed").
				Value(&draft.Days).
				Validate(requireNumber(32, false)),
			huh.NewInput().
				Title("Interested buyers").
				Description("Favourites or messages so far").
				Value(&draft.Interested).
				Validate(requireNumber(32, false)),
			huh.NewInput().
				Title("Views").
				Description("Optional").
				Value(&draft.Views).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					return requireNumber(32, false)(s)
				}),
		),
	).WithTheme(formTheme(theme)).Run()
}

// promptOutcome asks how the negotiation went. Returns an outcome, choiceRetry
// or choiceSkip.
func promptOutcome(theme storage.Theme) (string, error) {
	options := make([]huh.Option[string], 0, len(backend.Outcomes)+2)
	for _, o := range backend.Outcomes {
		options = append(options, huh.NewOption(render.OutcomeLabel(o), string(o)))
	}
	options = append(options,
		huh.NewOption("Try again with changes", choiceRetry),
		huh.NewOption("Skip", choiceSkip),
	)

	choice := choiceSkip
	err := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("How did the negotiation go?").
				Options(options...).
				Value(&choice),
		),
	).WithTheme(formTheme(theme)).Run()
	return choice, err
}
