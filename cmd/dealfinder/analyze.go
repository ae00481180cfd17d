package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/session"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/suggest"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog/log"
)

// suggestWait bounds how long the form waits for brand suggestions.
const suggestWait = 2 * time.Second

func (a *app) analyze(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	var draft storage.FormDraft
	fs.StringVar(&draft.ItemName, "name", "", "item name, brand first (e.g. \"Nike Air Max 90\")")
	fs.StringVar(&draft.Price, "price", "", "asking price")
	fs.StringVar(&draft.Days, "days", "0", "days the item has been listed")
	fs.StringVar(&draft.Interested, "interested", "0", "number of interested buyers")
	fs.StringVar(&draft.Views, "views", "", "number of views (optional)")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	interactive := a.interactive && draft.ItemName == ""
	if interactive {
		if saved, ok := a.state.FormDraft(); ok {
			draft = saved
		}
		if !a.editDraft(ctx, &draft) {
			return 1
		}
	} else {
		a.state.SaveFormDraft(draft)
	}

	return a.submitLoop(ctx, draft, interactive)
}

// submitLoop submits draft and, when interactive, lets the user fix invalid
// input, retry with changes or report the outcome.
func (a *app) submitLoop(ctx context.Context, draft storage.FormDraft, interactive bool) int {
	theme := a.state.Theme()

	for {
		input, err := parseDraft(draft)
		if err == nil {
			_, err = a.ctrl.Submit(ctx, input)
		}
		if err != nil {
			a.out.Error(err)
			var valErr *session.ValidationError
			if interactive && errors.As(err, &valErr) {
				a.ctrl.Reset()
				if !a.editDraft(ctx, &draft) {
					return 1
				}
				continue
			}
			return 1
		}

		view, err := a.ctrl.View()
		if err != nil {
			a.out.Error(err)
			return 1
		}
		a.out.Analysis(view)
		a.ctrl.Reset()

		if !interactive {
			return 0
		}

		choice, err := promptOutcome(theme)
		if err != nil {
			if !errors.Is(err, huh.ErrUserAborted) {
				log.Error().Err(err).Msg("outcome prompt failed")
			}
			return 0
		}

		switch choice {
		case choiceSkip:
			return 0
		case choiceRetry:
			input, err := a.ctrl.Retry()
			if err != nil {
				a.out.Error(err)
				return 1
			}
			draft = draftFromInput(input)
			if !a.editDraft(ctx, &draft) {
				return 1
			}
		default:
			if err := a.ctrl.ReportOutcome(ctx, backend.Outcome(choice)); err != nil {
				fmt.Fprintln(os.Stderr, "Failed to record outcome: "+err.Error())
				return 1
			}
			a.out.OutcomeRecorded(backend.Outcome(choice))
			return 0
		}
	}
}

// editDraft runs the listing form and saves the result. Returns false if the
// user aborted.
func (a *app) editDraft(ctx context.Context, draft *storage.FormDraft) bool {
	err := runListingForm(draft, a.state.Theme(), a.brandSuggestions(ctx, draft.ItemName))
	a.state.SaveFormDraft(*draft)
	if err != nil {
		if !errors.Is(err, huh.ErrUserAborted) {
			log.Error().Err(err).Msg("listing form failed")
		}
		return false
	}
	return true
}

// brandSuggestions fetches suggestions for the draft's current name so the
// form can autocomplete it. Returns nil if nothing arrives in time.
func (a *app) brandSuggestions(ctx context.Context, name string) []string {
	if utf8.RuneCountInString(strings.TrimSpace(name)) < suggest.MinQueryLength {
		return nil
	}

	done := make(chan suggest.Suggestions, 1)
	p := suggest.NewPipeline(a.client, a.cfg.SuggestDelay, func(s suggest.Suggestions) {
		select {
		case done <- s:
		default:
		}
	})
	defer p.Close()

	p.OnQueryChange(name)

	select {
	case s := <-done:
		return s.Items
	case <-time.After(suggestWait):
		return nil
	case <-ctx.Done():
		return nil
	}
}
