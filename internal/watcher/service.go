// Package watcher polls market trends for the user's watched items.
package watcher

import (
	"context"
	"fmt"
	"sync"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/advisor"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const (
	// DefaultSchedule is used when no schedule is configured.
	DefaultSchedule = "@every 30m"

	// MaxConcurrentFetches bounds parallel trend requests in one poll.
	MaxConcurrentFetches = 4
)

// TrendsFetcher is the part of the backend the watcher needs.
type TrendsFetcher interface {
	MarketTrends(ctx context.Context, itemName string) (*backend.TrendInfo, error)
}

// Report is the outcome of polling one watched item.
type Report struct {
	ItemName string
	Trends   *backend.TrendInfo
	Advice   []string

	// Changed is true when the price trend differs from the previous
	// successful poll in this process.
	Changed  bool
	Previous backend.PriceTrend

	Err error
}

// Notifier receives the reports of each poll cycle.
type Notifier interface {
	Notify(reports []Report)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(reports []Report)

func (f NotifierFunc) Notify(reports []Report) { f(reports) }

// Service is the background watcher service.
type Service struct {
	state    *storage.State
	fetcher  TrendsFetcher
	notifier Notifier

	mu        sync.Mutex
	lastTrend map[string]backend.PriceTrend
}

// NewService creates a watcher. notifier may be nil.
func NewService(state *storage.State, fetcher TrendsFetcher, notifier Notifier) *Service {
	return &Service{
		state:     state,
		fetcher:   fetcher,
		notifier:  notifier,
		lastTrend: make(map[string]backend.PriceTrend),
	}
}

// PollOnce fetches trends for every watched item. Reports are in the same
// order as the watched list. A failure for one item does not stop the others.
func (s *Service) PollOnce(ctx context.Context) []Report {
	names := s.state.WatchedMarkets()
	if len(names) == 0 {
		log.Debug().Msg("no watched markets to poll")
		return nil
	}

	log.Debug().Int("items", len(names)).Msg("starting poll cycle")

	reports := make([]Report, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(MaxConcurrentFetches)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			reports[i] = s.poll(gctx, name)
			// Per-item failures live in the report; never cancel siblings
			return nil
		})
	}
	_ = g.Wait()

	if s.notifier != nil {
		s.notifier.Notify(reports)
	}

	log.Debug().Msg("poll cycle complete")
	return reports
}

func (s *Service) poll(ctx context.Context, name string) Report {
	report := Report{ItemName: name}

	trends, err := s.fetcher.MarketTrends(ctx, name)
	if err != nil {
		log.Warn().Err(err).Str("item", name).Msg("failed to fetch market trends")
		report.Err = fmt.Errorf("failed to fetch trends for %q: %w", name, err)
		return report
	}

	report.Trends = trends
	report.Advice = advisor.GenerateMarketAdvice(*trends)

	s.mu.Lock()
	prev, seen := s.lastTrend[name]
	s.lastTrend[name] = trends.PriceTrend
	s.mu.Unlock()

	if seen && prev != trends.PriceTrend {
		report.Changed = true
		report.Previous = prev
		log.Info().
			Str("item", name).
			Stringer("from", prev).
			Stringer("to", trends.PriceTrend).
			Msg("price trend changed")
	}

	return report
}

// Run polls once immediately and then on schedule until ctx is cancelled.
// An empty schedule uses DefaultSchedule.
func (s *Service) Run(ctx context.Context, schedule string) error {
	if schedule == "" {
		schedule = DefaultSchedule
	}

	c := cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)))
	if _, err := c.AddFunc(schedule, func() { s.PollOnce(ctx) }); err != nil {
		return fmt.Errorf("invalid watch schedule %q: %w", schedule, err)
	}

	log.Info().Str("schedule", schedule).Msg("starting watcher service")

	s.PollOnce(ctx)
	c.Start()

	<-ctx.Done()
	<-c.Stop().Done()
	log.Info().Msg("watcher service stopped")
	return nil
}
