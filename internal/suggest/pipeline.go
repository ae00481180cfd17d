// Package suggest provides brand autocomplete for the item name field.
package suggest

import (
	"context"
	"strings"
	"sync"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/rs/zerolog/log"
)

const (
	// DefaultDelay is how long typing must pause before suggestions are fetched.
	DefaultDelay = 300 * time.Millisecond

	// MinQueryLength is the shortest trimmed query that is looked up.
	MinQueryLength = 2
)

// Fetcher looks up brand suggestions.
type Fetcher interface {
	Brands(ctx context.Context, query string) ([]string, error)
}

// Suggestions is the state of the suggestion list.
type Suggestions struct {
	Visible bool
	Query   string
	Items   []string
}

// Pipeline debounces query changes into suggestion lookups. Only the latest
// query's results are ever surfaced.
type Pipeline struct {
	fetcher   Fetcher
	debouncer *Debouncer
	onChange  func(Suggestions)

	ctx    context.Context
	cancel context.CancelFunc

	// notifyMu orders commits with their notifications, so onChange always
	// sees the lists in the order they became current.
	notifyMu sync.Mutex

	mu             sync.Mutex
	current        Suggestions
	seq            uint64
	cancelInflight context.CancelFunc
}

// NewPipeline creates a pipeline. onChange, if set, is called whenever the
// suggestion list changes; it runs on the fetching goroutine and must not
// call OnQueryChange or Select.
func NewPipeline(fetcher Fetcher, delay time.Duration, onChange func(Suggestions)) *Pipeline {
	if delay <= 0 {
		delay = DefaultDelay
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pipeline{
		fetcher:   fetcher,
		debouncer: NewDebouncer(delay),
		onChange:  onChange,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// OnQueryChange is called on every edit of the item name.
func (p *Pipeline) OnQueryChange(text string) {
	query := strings.TrimSpace(text)
	seq := p.supersede()

	if utf8.RuneCountInString(query) < MinQueryLength {
		p.debouncer.Cancel()
		p.hide()
		return
	}

	p.debouncer.Schedule(func() {
		p.fetch(query, seq)
	})
}

// Select replaces the first word of text with suggestion and hides the list.
func (p *Pipeline) Select(text, suggestion string) string {
	p.supersede()
	p.debouncer.Cancel()
	p.hide()
	return ReplaceFirstWord(text, suggestion)
}

// Current returns the current suggestion list.
func (p *Pipeline) Current() Suggestions {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}

// Close cancels pending and in-flight lookups.
func (p *Pipeline) Close() {
	p.debouncer.Cancel()
	p.cancel()
}

// supersede invalidates any in-flight lookup so its result is discarded, and
// returns the sequence number of the new query.
func (p *Pipeline) supersede() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.seq++
	if p.cancelInflight != nil {
		p.cancelInflight()
		p.cancelInflight = nil
	}
	return p.seq
}

func (p *Pipeline) fetch(query string, seq uint64) {
	p.mu.Lock()
	if p.seq != seq {
		p.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(p.ctx)
	p.cancelInflight = cancel
	p.mu.Unlock()
	defer cancel()

	items, err := p.fetcher.Brands(ctx, query)

	var next Suggestions
	if err != nil {
		if ctx.Err() == nil {
			log.Warn().Err(err).Str("query", query).Msg("brand suggestions failed")
		}
	} else if len(items) > 0 {
		next = Suggestions{Visible: true, Query: query, Items: items}
	}

	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	// Commit only if no newer query arrived while the request was in flight
	p.mu.Lock()
	if p.seq != seq {
		p.mu.Unlock()
		log.Debug().Str("query", query).Msg("discarding stale suggestions")
		return
	}
	p.cancelInflight = nil
	p.current = next
	p.mu.Unlock()

	p.notify(next)
}

func (p *Pipeline) hide() {
	p.set(Suggestions{})
}

func (p *Pipeline) set(s Suggestions) {
	p.notifyMu.Lock()
	defer p.notifyMu.Unlock()

	p.mu.Lock()
	p.current = s
	p.mu.Unlock()
	p.notify(s)
}

func (p *Pipeline) notify(s Suggestions) {
	if p.onChange != nil {
		p.onChange(s)
	}
}

// ReplaceFirstWord swaps the first whitespace-delimited word of text for
// replacement, keeping the rest of the text as typed.
func ReplaceFirstWord(text, replacement string) string {
	trimmed := strings.TrimLeftFunc(text, unicode.IsSpace)
	end := strings.IndexFunc(trimmed, unicode.IsSpace)
	if end < 0 {
		return replacement
	}
	return replacement + trimmed[end:]
}
