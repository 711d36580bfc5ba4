package main

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/streamlist/internal/config"
	"github.com/mmcdole/streamlist/internal/launcher"
	"github.com/mmcdole/streamlist/internal/log"
	"github.com/mmcdole/streamlist/internal/service"
	"github.com/mmcdole/streamlist/internal/store"
	"github.com/mmcdole/streamlist/internal/tmdb"
	"github.com/mmcdole/streamlist/internal/tui"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags
var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

// app holds what every command needs after startup
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	logCloser io.Closer
	ephemeral bool
}

// load reads the config and sets up logging
func (a *app) load() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.cfg = cfg

	logger, closer, err := log.SetupLogger(&cfg.Logging)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.NullLogger()
	}
	a.logger = logger
	a.logCloser = closer
	slog.SetDefault(logger)
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		a.logCloser.Close()
	}
}

// openStore opens the watchlist store, memory-only when ephemeral
func (a *app) openStore() (*store.WatchlistStore, error) {
	dir := a.cfg.Storage.Dir
	if a.ephemeral {
		dir = ""
	}
	st, err := store.NewWatchlistStore(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open watchlist store: %w", err)
	}
	return st, nil
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:          "streamlist",
		Short:        "Watchlist and movie catalog for the terminal",
		Long:         `StreamList keeps a personal watchlist of movies and shows and browses TMDB's popular, now playing, upcoming and top rated movies.`,
		Version:      Version,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runTUI()
		},
	}
	rootCmd.PersistentFlags().BoolVar(&a.ephemeral, "ephemeral", false, "keep the watchlist in memory only")

	rootCmd.AddCommand(
		NewSetupCmd(func() *config.Config { return a.cfg }),
		NewAddCmd(a.openStore),
		NewListCmd(a.openStore),
		NewResetCmd(a.openStore),
		NewVersionCmd(Version),
	)
	return rootCmd
}

// runTUI wires the services and runs the Bubble Tea program
func (a *app) runTUI() error {
	cfg, logger := a.cfg, a.logger
	logger.Info("starting streamlist", "version", Version)

	st, err := a.openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	client := tmdb.NewClient(tmdb.ClientConfig{
		BaseURL:    cfg.TMDB.BaseURL,
		APIKey:     cfg.TMDB.APIKey,
		Language:   cfg.TMDB.Language,
		RateLimit:  cfg.TMDB.RateLimit,
		HTTPClient: newHTTPClient(cfg.TMDB.Timeout),
	}, logger)

	// Create services
	watchlistSvc := service.NewWatchlistService(st, logger)
	catalogSvc := service.NewCatalogService(client, client.HasAPIKey(), logger)

	startTab := tui.TabWatchlist
	if cfg.UI.DefaultView == config.ViewMovies {
		startTab = tui.TabMovies
	}

	model := tui.NewModel(watchlistSvc, catalogSvc, tui.Options{
		StartTab:     startTab,
		ImageBaseURL: cfg.TMDB.ImageBaseURL,
		Info: tui.AppInfo{
			Version:    Version,
			DataPath:   st.Path(),
			ConfigPath: config.ConfigFile(),
		},
		Opener: launcher.New(cfg.Browser.Command, cfg.Browser.Args, logger),
	})

	p := tea.NewProgram(model, tea.WithAltScreen())

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	catalogSvc.Cancel()
	logger.Info("shutting down")
	return nil
}

// newHTTPClient returns nil for a non-positive timeout so the client default applies
func newHTTPClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		return nil
	}
	return &http.Client{Timeout: timeout}
}
