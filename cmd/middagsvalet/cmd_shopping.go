package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/middagsvalet/internal/metrics"
	"github.com/ajitpratap0/middagsvalet/internal/models"
)

func shoppingCmd() *cobra.Command {
	var (
		dishesPath  string
		menuPath    string
		householdID string
		pantry      []string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "shopping",
		Short: "Build a shopping list for a menu or a set of dishes",
		Example: `  middagsvalet shopping --menu menu.json --pantry salt,olivolja
  middagsvalet shopping --dishes dishes.json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			out := cmd.OutOrStdout()

			svc, cat, err := newService(logger)
			if err != nil {
				return fmt.Errorf("shopping: %w", err)
			}

			var dishes []models.Dish
			switch {
			case menuPath != "":
				m, err := loadMenu(menuPath)
				if err != nil {
					return fmt.Errorf("shopping: %w", err)
				}
				dishes = m.Dishes()
				if householdID == "" {
					householdID = m.HouseholdID
				}
			case dishesPath != "":
				dishes, err = loadDishes(dishesPath, svc, cat)
				if err != nil {
					return fmt.Errorf("shopping: %w", err)
				}
			default:
				return fmt.Errorf("shopping: --menu or --dishes is required")
			}

			have := make(map[string]bool, len(pantry))
			for _, p := range pantry {
				if p = strings.ToLower(strings.TrimSpace(p)); p != "" {
					have[p] = true
				}
			}

			list := newAggregator(svc, logger).Build(householdID, dishes, have)
			metrics.Inc(metrics.ShoppingLists)

			if asJSON {
				return writeJSON(out, list)
			}
			for _, section := range list.Sections() {
				if len(section.Items) == 0 {
					continue
				}
				fmt.Fprintf(out, "%s:\n", section.Category.Label())
				for _, it := range section.Items {
					mark := ""
					if it.InPantry {
						mark = "  (finns hemma)"
					}
					fmt.Fprintf(out, "  %-24s %8s %s%s\n", it.DisplayName, formatAmount(it.Amount), it.Unit, mark)
				}
				fmt.Fprintln(out)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dishesPath, "dishes", "", "dishes JSON file")
	cmd.Flags().StringVar(&menuPath, "menu", "", "menu JSON file from menu generate --json")
	cmd.Flags().StringVar(&householdID, "household-id", "", "household id to stamp on the list")
	cmd.Flags().StringSliceVar(&pantry, "pantry", nil, "ingredients already at home (canonical or display names)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
