package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Spoonthedogl/vinted-deal-finger/internal/backend"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/config"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/recent"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/render"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/session"
	"github.com/Spoonthedogl/vinted-deal-finger/internal/storage"
	"github.com/rs/zerolog/log"
	"golang.org/x/term"
)

const usage = `usage: dealfinder <command> [arguments]

commands:
  analyze   analyse a listing and get an offer strategy
  recent    list, re-analyse or delete recently analysed items
  suggest   suggest brand names for a query
  watch     manage and poll watched markets
  theme     show or change the display theme
`

// app wires the client's components together for one command invocation.
type app struct {
	cfg         *config.Config
	state       *storage.State
	client      *backend.Client
	recent      *recent.Cache
	ctrl        *session.Controller
	out         *render.Renderer
	interactive bool
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 || args[0] == "-h" || args[0] == "--help" || args[0] == "help" {
		fmt.Fprint(os.Stderr, usage)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		return 1
	}
	if err := config.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating config directory: %v\n", err)
		return 1
	}

	logCloser := setupLogging(cfg)
	defer logCloser.Close()

	state, closeStore := openState(cfg)
	defer closeStore()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	client := backend.NewClient(backend.ClientOpts{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.RequestTimeout,
	})
	cache := recent.New(state)

	a := &app{
		cfg:         cfg,
		state:       state,
		client:      client,
		recent:      cache,
		ctrl:        session.NewController(client, cache),
		out:         render.New(os.Stdout, state.Theme()),
		interactive: isInteractiveTerminal(),
	}

	if !state.InstallPromptDismissed() {
		a.out.InstallHint(config.Dir())
		state.DismissInstallPrompt()
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "analyze", "analyse":
		return a.analyze(ctx, rest)
	case "recent":
		return a.recentCmd(ctx, rest)
	case "suggest":
		return a.suggest(ctx, rest)
	case "watch":
		return a.watch(ctx, rest)
	case "theme":
		return a.theme(rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", cmd, usage)
		return 2
	}
}

// openState opens the local state database. When it can't be opened the
// client still runs, just without persisted data.
func openState(cfg *config.Config) (*storage.State, func()) {
	var key []byte
	if cfg.StateKey != "" {
		derived, err := storage.DeriveKey(cfg.StateKey)
		if err != nil {
			log.Warn().Err(err).Msg("failed to derive state key, running without local state")
			return storage.NewState(nil), func() {}
		}
		key = derived
	}

	store, err := storage.NewSQLiteStore(cfg.DBPath, key)
	if err != nil {
		log.Warn().Err(err).Str("dbPath", cfg.DBPath).Msg("failed to open local state, running without it")
		return storage.NewState(nil), func() {}
	}
	log.Debug().Str("dbPath", cfg.DBPath).Bool("sealed", key != nil).Msg("local state opened")

	return storage.NewState(store), func() { store.Close() }
}

// isInteractiveTerminal returns true if both stdin and stdout are TTYs.
func isInteractiveTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
