package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/models"
)

func catalogCmd() *cobra.Command {
	var (
		category string
		asJSON   bool
	)

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "List canonical ingredients in the catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cat, err := newCatalog()
			if err != nil {
				return fmt.Errorf("catalog: loading catalog: %w", err)
			}

			filter := models.Category(category)
			if category != "" && !filter.IsValid() {
				return fmt.Errorf("catalog: unknown category %q", category)
			}

			var entries []catalog.Entry
			for _, e := range cat.Entries() {
				if category == "" || e.Category == filter {
					entries = append(entries, e)
				}
			}

			if asJSON {
				return writeJSON(out, entries)
			}

			fmt.Fprintf(out, "%d ingredients\n", len(entries))
			for _, c := range models.ValidCategories {
				first := true
				for _, e := range entries {
					if e.Category != c {
						continue
					}
					if first {
						fmt.Fprintf(out, "\n%s:\n", c.Label())
						first = false
					}
					fmt.Fprintf(out, "  %-20s %s\n", e.DisplayName, strings.Join(e.Aliases[1:], ", "))
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "only list one category (produce, dairy, pantry, meat_fish, spices)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	return cmd
}
