package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/middagsvalet/internal/metrics"
)

func scoreCmd() *cobra.Command {
	var (
		householdPath string
		dishesPath    string
		contextPath   string
		limit         int
		asJSON        bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Rank dishes for a household",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			out := cmd.OutOrStdout()

			household, err := loadHousehold(householdPath)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}
			svc, cat, err := newService(logger)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}
			dishes, err := loadDishes(dishesPath, svc, cat)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}
			sctx, err := loadContext(contextPath)
			if err != nil {
				return fmt.Errorf("score: %w", err)
			}

			ranked := newScorer(logger).Rank(dishes, household, sctx)
			metrics.Add(metrics.DishesScored, len(ranked))
			if limit > 0 && len(ranked) > limit {
				ranked = ranked[:limit]
			}

			if asJSON {
				return writeJSON(out, ranked)
			}
			for i := range ranked {
				r := &ranked[i]
				fmt.Fprintf(out, "%2d. %6.2f  %-32s %s\n", i+1, r.Score, r.Dish.Title, r.Dish.ProteinTag)
				for _, ps := range r.ProfileScores {
					fmt.Fprintf(out, "      %-10s %6.2f  %s\n", ps.ProfileID, ps.Score, strings.Join(ps.Reasons, ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&householdPath, "household", "", "household JSON file (- for stdin)")
	cmd.Flags().StringVar(&dishesPath, "dishes", "", "dishes JSON file")
	cmd.Flags().StringVar(&contextPath, "context", "", "history JSON file with recent dishes and ratings")
	cmd.Flags().IntVar(&limit, "limit", 0, "only show the best N dishes")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
