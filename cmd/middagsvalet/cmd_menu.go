package main

import (
	"fmt"
	"io"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/middagsvalet/internal/menu"
	"github.com/ajitpratap0/middagsvalet/internal/metrics"
	"github.com/ajitpratap0/middagsvalet/internal/models"
)

// menuInputs are the files shared by the menu subcommands.
type menuInputs struct {
	householdPath string
	dishesPath    string
	contextPath   string
	seed          uint64
	asJSON        bool
}

func (in *menuInputs) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&in.householdPath, "household", "", "household JSON file")
	cmd.Flags().StringVar(&in.dishesPath, "dishes", "", "dishes JSON file")
	cmd.Flags().StringVar(&in.contextPath, "context", "", "history JSON file with recent dishes and ratings")
	cmd.Flags().BoolVar(&in.asJSON, "json", false, "output as JSON")
}

func (in *menuInputs) registerSeed(cmd *cobra.Command) {
	cmd.Flags().Uint64Var(&in.seed, "seed", 0, "seed for reproducible picks")
}

// random returns a seeded source when --seed was given and a fresh one
// otherwise.
func (in *menuInputs) random(cmd *cobra.Command) menu.RandomSource {
	if cmd.Flags().Changed("seed") {
		return rand.New(rand.NewPCG(in.seed, in.seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

type loadedInputs struct {
	household *models.Household
	dishes    []models.Dish
	ctx       *models.ScoreContext
}

func (in *menuInputs) load() (*loadedInputs, error) {
	household, err := loadHousehold(in.householdPath)
	if err != nil {
		return nil, err
	}
	svc, cat, err := newService(newLogger())
	if err != nil {
		return nil, err
	}
	dishes, err := loadDishes(in.dishesPath, svc, cat)
	if err != nil {
		return nil, err
	}
	sctx, err := loadContext(in.contextPath)
	if err != nil {
		return nil, err
	}
	return &loadedInputs{household: household, dishes: dishes, ctx: sctx}, nil
}

func menuCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "menu",
		Short: "Plan a week of dinners and swap single days",
	}
	cmd.AddCommand(menuGenerateCmd(), menuSwapCmd(), menuOptionsCmd())
	return cmd
}

func menuGenerateCmd() *cobra.Command {
	var (
		in    menuInputs
		topK  int
		locks []string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a weekly menu",
		Example: `  middagsvalet menu generate --household family.json --dishes dishes.json --seed 7 --json > menu.json
  middagsvalet menu generate --household family.json --dishes dishes.json --lock 0=tacos`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			loaded, err := in.load()
			if err != nil {
				return fmt.Errorf("menu generate: %w", err)
			}
			lockedDays, err := parseLocks(locks, loaded.dishes, loaded.household, loaded.ctx, newScorer(logger))
			if err != nil {
				return fmt.Errorf("menu generate: %w", err)
			}

			m := newGenerator(logger).Generate(loaded.dishes, loaded.household, loaded.ctx, menu.Options{
				LockedDays: lockedDays,
				TopK:       topK,
				Random:     in.random(cmd),
			})
			metrics.Inc(metrics.MenusGenerated)
			metrics.Add(metrics.UnfilledDays, len(m.Unfilled))
			if !m.Complete() {
				logger.Warn("menu is missing days", "household", m.HouseholdID, "unfilled", m.Unfilled)
			}

			if in.asJSON {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			printMenu(cmd.OutOrStdout(), &m)
			return nil
		},
	}

	in.register(cmd)
	in.registerSeed(cmd)
	cmd.Flags().IntVar(&topK, "top-k", 0, "pick each day among the best K dishes (default from config)")
	cmd.Flags().StringArrayVar(&locks, "lock", nil, "lock a dish to a day as day=dish-id (repeatable)")
	return cmd
}

func menuSwapCmd() *cobra.Command {
	var (
		in       menuInputs
		menuPath string
		day      int
	)

	cmd := &cobra.Command{
		Use:   "swap",
		Short: "Replace the dinner on one day of a menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()

			loaded, err := in.load()
			if err != nil {
				return fmt.Errorf("menu swap: %w", err)
			}
			current, err := loadMenu(menuPath)
			if err != nil {
				return fmt.Errorf("menu swap: %w", err)
			}

			m, ok := newGenerator(logger).Swap(current, day, loaded.dishes, loaded.household, loaded.ctx, in.random(cmd))
			metrics.Inc(metrics.Swaps)
			if !ok {
				metrics.Inc(metrics.SwapNoops)
				logger.Warn("no replacement found, menu unchanged", "day", day)
			}

			if in.asJSON {
				return writeJSON(cmd.OutOrStdout(), m)
			}
			printMenu(cmd.OutOrStdout(), &m)
			return nil
		},
	}

	in.register(cmd)
	in.registerSeed(cmd)
	cmd.Flags().StringVar(&menuPath, "menu", "", "menu JSON file from menu generate --json")
	cmd.Flags().IntVar(&day, "day", 0, "day index to swap")
	return cmd
}

func menuOptionsCmd() *cobra.Command {
	var (
		in       menuInputs
		menuPath string
		day      int
		limit    int
	)

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List swap candidates for one day of a menu",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			out := cmd.OutOrStdout()

			loaded, err := in.load()
			if err != nil {
				return fmt.Errorf("menu options: %w", err)
			}
			current, err := loadMenu(menuPath)
			if err != nil {
				return fmt.Errorf("menu options: %w", err)
			}

			candidates := newGenerator(logger).SwapCandidates(current, day, loaded.dishes, loaded.household, loaded.ctx, limit)
			if in.asJSON {
				return writeJSON(out, candidates)
			}
			if len(candidates) == 0 {
				fmt.Fprintln(out, "No alternatives found.")
				return nil
			}
			for i := range candidates {
				c := &candidates[i]
				fmt.Fprintf(out, "%2d. %6.2f  %-32s %-12s %d min\n", i+1, c.Score, c.Dish.Title, c.Dish.ProteinTag, c.Dish.PrepMinutes)
			}
			return nil
		},
	}

	in.register(cmd)
	cmd.Flags().StringVar(&menuPath, "menu", "", "menu JSON file from menu generate --json")
	cmd.Flags().IntVar(&day, "day", 0, "day index to find alternatives for")
	cmd.Flags().IntVar(&limit, "limit", 0, "number of alternatives, 1-10 (default from config)")
	return cmd
}

var weekdays = []string{"Måndag", "Tisdag", "Onsdag", "Torsdag", "Fredag", "Lördag", "Söndag"}

func printMenu(w io.Writer, m *models.WeeklyMenu) {
	fmt.Fprintf(w, "Menu %s (%s)\n\n", m.ID, m.CreatedAt.Format("2006-01-02"))
	for i := range m.Dinners {
		d := &m.Dinners[i]
		name := fmt.Sprintf("Dag %d", d.DayIndex+1)
		if d.DayIndex < len(weekdays) {
			name = weekdays[d.DayIndex]
		}
		lock := ""
		if d.Locked {
			lock = "  [låst]"
		}
		fmt.Fprintf(w, "  %-8s %-32s %-12s %6.2f%s\n", name, d.Dish.Title, d.Dish.ProteinTag, d.Score, lock)
	}
	if len(m.Unfilled) > 0 {
		fmt.Fprintf(w, "\nUnfilled days: %v\n", m.Unfilled)
	}
}
