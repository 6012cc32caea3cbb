package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/config"
	"github.com/ajitpratap0/middagsvalet/internal/ingredient"
	"github.com/ajitpratap0/middagsvalet/internal/menu"
	"github.com/ajitpratap0/middagsvalet/internal/metrics"
	"github.com/ajitpratap0/middagsvalet/internal/scoring"
	"github.com/ajitpratap0/middagsvalet/internal/shopping"
)

var cfg *config.Config

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	var showStats bool

	rootCmd := &cobra.Command{
		Use:   "middagsvalet",
		Short: "Middagsvalet: dinner recommendations and ingredient normalization",
		Long: "Middagsvalet scores dishes for a household, plans a week of dinners, swaps single days " +
			"and builds shopping lists from normalized ingredient lines.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if !showStats {
				return nil
			}
			for _, c := range metrics.Snapshot() {
				fmt.Fprintf(cmd.ErrOrStderr(), "%-45s %d\n", c.Name, c.Value)
			}
			return nil
		},
	}
	rootCmd.PersistentFlags().BoolVar(&showStats, "stats", false, "print operation counters to stderr when done")

	rootCmd.AddCommand(
		normalizeCmd(),
		catalogCmd(),
		scoreCmd(),
		menuCmd(),
		shoppingCmd(),
	)

	rootCmd.SetContext(ctx)

	err := rootCmd.Execute()
	stop()
	if err != nil {
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelInfo
	if cfg != nil {
		switch cfg.Logging.Level {
		case "debug":
			level = slog.LevelDebug
		case "warn":
			level = slog.LevelWarn
		case "error":
			level = slog.LevelError
		}
	}
	opts := &slog.HandlerOptions{Level: level}
	if cfg != nil && cfg.Logging.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func newCatalog() (*catalog.Catalog, error) {
	if cfg.Catalog.Path != "" {
		return catalog.LoadFile(cfg.Catalog.Path)
	}
	return catalog.Builtin()
}

func newService(logger *slog.Logger) (*ingredient.Service, *catalog.Catalog, error) {
	cat, err := newCatalog()
	if err != nil {
		return nil, nil, fmt.Errorf("loading catalog: %w", err)
	}
	m := catalog.NewMatcher(cat, cfg.MatcherOptions(), logger)
	return ingredient.NewService(m, cfg.ServiceOptions(), logger), cat, nil
}

func newScorer(logger *slog.Logger) *scoring.Scorer {
	return scoring.NewScorer(cfg.Scoring, logger)
}

func newGenerator(logger *slog.Logger) *menu.Generator {
	return menu.NewGenerator(newScorer(logger), cfg.GeneratorOptions(), logger)
}

func newAggregator(svc *ingredient.Service, logger *slog.Logger) *shopping.Aggregator {
	return shopping.NewAggregator(svc, cfg.Shopping, logger)
}
