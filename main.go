package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"pricetracker/internal/app"
	"pricetracker/internal/config"
	"pricetracker/internal/store"
	"pricetracker/internal/ticker"
	"pricetracker/internal/tracker"
	"pricetracker/internal/ui"
)

const windowTitle = "Crypto Price Tracker"

var errStorageInit = errors.New("storage initialization failed")

var (
	configPath string
	logLevel   string
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		if !errors.Is(err, errStorageInit) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pricetracker",
		Short:         "Track BTC and ETH prices in a desktop window",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runWindow,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "YAML config file (default: ./"+config.DefaultFile+" if present)")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "override log level (debug|info|warn|error)")

	root.AddCommand(&cobra.Command{
		Use:   "history",
		Short: "Print saved price snapshots, newest first",
		Args:  cobra.NoArgs,
		RunE:  runHistory,
	})
	return root
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	return cfg, nil
}

func runWindow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	uiOpts := ui.Options{Title: windowTitle, Width: cfg.Window.Width, Height: cfg.Window.Height}

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		log.Error().Err(err).Str("database", cfg.Database).Msg("could not initialize database")
		game, gameErr := ui.NewGame(ctx, app.NewFatal(err), nil, log.Logger)
		if gameErr != nil {
			return fmt.Errorf("%w: %v", errStorageInit, err)
		}
		if runErr := ui.Run(game, uiOpts); runErr != nil {
			log.Error().Err(runErr).Msg("window failed")
		}
		return fmt.Errorf("%w: %v", errStorageInit, err)
	}
	defer st.Close()

	client := ticker.NewClient(cfg.APIURL, ticker.WithTimeout(cfg.RequestTimeout))
	queue := tracker.NewQueue(nil)
	tr := tracker.New(tracker.Config{
		Interval: cfg.Interval,
		Timeout:  time.Duration(len(ticker.TrackedPairs)) * cfg.RequestTimeout,
	}, client, queue, log.Logger)

	surface := app.NewSurface(tr, st, store.NewJournal(cfg.Journal), app.WithLogger(log.Logger))

	game, err := ui.NewGame(ctx, surface, queue, log.Logger)
	if err != nil {
		return err
	}

	log.Info().
		Str("api_url", cfg.APIURL).
		Str("database", cfg.Database).
		Str("journal", cfg.Journal).
		Msg("window opening")

	if err := ui.Run(game, uiOpts); err != nil {
		return fmt.Errorf("window: %w", err)
	}
	surface.Stop()
	return nil
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("could not initialize database: %w", err)
	}
	defer st.Close()

	snaps, err := st.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("could not fetch data: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(snaps) == 0 {
		fmt.Fprintln(out, app.MsgNoHistory)
		return nil
	}
	for _, snap := range snaps {
		fmt.Fprintln(out, snap.HistoryLine())
	}
	return nil
}
