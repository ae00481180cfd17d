package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/render"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/suggest"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/watcher"
	"github.com/rs/zerolog/log"
)

// recentCmd handles `recent [list]`, `recent delete <n>` and
// `recent analyze <n>`.
func (a *app) recentCmd(ctx context.Context, args []string) int {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		a.out.RecentItems(a.recent.List(), time.Now())
		return 0
	case "delete", "analyze", "analyse":
		if len(args) != 1 {
			fmt.Fprintf(os.Stderr, "usage: dealfinder recent %s <index>\n", sub)
			return 2
		}
		index, err := strconv.Atoi(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid index %q\n", args[0])
			return 2
		}
		if sub == "delete" {
			a.recent.Delete(index)
			a.out.RecentItems(a.recent.List(), time.Now())
			return 0
		}

		items := a.recent.List()
		if index < 0 || index >= len(items) {
			fmt.Fprintf(os.Stderr, "no recent item at index %d\n", index)
			return 1
		}
		draft := draftFromInput(items[index].Input())
		a.state.SaveFormDraft(draft)
		return a.submitLoop(ctx, draft, a.interactive)
	default:
		fmt.Fprintf(os.Stderr, "unknown recent command %q\n", sub)
		return 2
	}
}

// suggest looks up brand suggestions. With -stdin every input line is treated
// as an edit of the query, so quickly typed lines collapse into one lookup.
func (a *app) suggest(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("suggest", flag.ContinueOnError)
	fromStdin := fs.Bool("stdin", false, "read successive query edits from stdin")
	pick := fs.Int("pick", -1, "replace the query's first word with suggestion n")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var mu sync.Mutex
	changed := make(chan struct{}, 1)
	p := suggest.NewPipeline(a.client, a.cfg.SuggestDelay, func(s suggest.Suggestions) {
		mu.Lock()
		a.out.Suggestions(s)
		mu.Unlock()
		select {
		case changed <- struct{}{}:
		default:
		}
	})
	defer p.Close()

	wait := func() {
		select {
		case <-changed:
		case <-time.After(a.cfg.SuggestDelay + suggestWait):
		case <-ctx.Done():
		}
	}

	if *fromStdin {
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			p.OnQueryChange(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			log.Error().Err(err).Msg("failed to read queries")
			return 1
		}
		wait()
		return 0
	}

	text := strings.Join(fs.Args(), " ")
	if len([]rune(strings.TrimSpace(text))) < suggest.MinQueryLength {
		fmt.Fprintf(os.Stderr, "query must be at least %d characters\n", suggest.MinQueryLength)
		return 2
	}

	p.OnQueryChange(text)
	wait()

	current := p.Current()
	if !current.Visible {
		fmt.Fprintln(os.Stderr, "No suggestions.")
		return 1
	}
	if *pick >= 0 {
		if *pick >= len(current.Items) {
			fmt.Fprintf(os.Stderr, "no suggestion %d\n", *pick)
			return 1
		}
		fmt.Println(p.Select(text, current.Items[*pick]))
	}
	return 0
}

// watch handles `watch list|add|remove|run`.
func (a *app) watch(ctx context.Context, args []string) int {
	sub := "list"
	if len(args) > 0 {
		sub, args = args[0], args[1:]
	}

	switch sub {
	case "list":
		a.out.WatchedMarkets(a.state.WatchedMarkets())
		return 0
	case "add", "remove":
		name := strings.TrimSpace(strings.Join(args, " "))
		if name == "" {
			fmt.Fprintf(os.Stderr, "usage: dealfinder watch %s <item name>\n", sub)
			return 2
		}
		var ok bool
		if sub == "add" {
			ok = a.state.AddWatchedMarket(name)
		} else {
			ok = a.state.RemoveWatchedMarket(name)
		}
		if !ok {
			fmt.Fprintf(os.Stderr, "Nothing to %s for %q.\n", sub, name)
		}
		a.out.WatchedMarkets(a.state.WatchedMarkets())
		return 0
	case "run":
		return a.watchRun(ctx, args)
	default:
		fmt.Fprintf(os.Stderr, "unknown watch command %q\n", sub)
		return 2
	}
}

func (a *app) watchRun(ctx context.Context, args []string) int {
	fs := flag.NewFlagSet("watch run", flag.ContinueOnError)
	once := fs.Bool("once", false, "poll once and exit")
	schedule := fs.String("schedule", a.cfg.WatchSchedule, "cron schedule for polling")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	var mu sync.Mutex
	svc := watcher.NewService(a.state, a.client, watcher.NotifierFunc(func(reports []watcher.Report) {
		mu.Lock()
		defer mu.Unlock()
		a.out.MarketReports(reports)
	}))

	if *once {
		reports := svc.PollOnce(ctx)
		if len(reports) == 0 {
			a.out.WatchedMarkets(nil)
		}
		return 0
	}

	if err := svc.Run(ctx, *schedule); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// theme handles `theme [light|dark|toggle]`.
func (a *app) theme(args []string) int {
	current := a.state.Theme()
	if len(args) == 0 {
		a.out.Theme(current)
		return 0
	}

	next := current
	if args[0] == "toggle" {
		next = current.Toggle()
	} else {
		t, ok := storage.ParseTheme(args[0])
		if !ok {
			fmt.Fprintf(os.Stderr, "unknown theme %q, use light, dark or toggle\n", args[0])
			return 2
		}
		next = t
	}

	if !a.state.SetTheme(next) {
		fmt.Fprintln(os.Stderr, "Theme could not be saved; local storage is unavailable.")
	}
	render.New(os.Stdout, next).Theme(next)
	return 0
}
