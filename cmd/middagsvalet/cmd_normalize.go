package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ajitpratap0/middagsvalet/internal/ingredient"
	"github.com/ajitpratap0/middagsvalet/internal/metrics"
	"github.com/ajitpratap0/middagsvalet/internal/models"
)

func normalizeCmd() *cobra.Command {
	var (
		file   string
		asJSON bool
		report bool
	)

	cmd := &cobra.Command{
		Use:   "normalize [ingredient line...]",
		Short: "Normalize raw ingredient lines against the catalog",
		Example: `  middagsvalet normalize "2 klyftor vitlök, finhackad" "ca 3 dl grädde"
  middagsvalet normalize --file lines.txt --report`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger()
			out := cmd.OutOrStdout()

			svc, _, err := newService(logger)
			if err != nil {
				return fmt.Errorf("normalize: %w", err)
			}

			lines := args
			if file != "" {
				more, err := readLines(file)
				if err != nil {
					return fmt.Errorf("normalize: %w", err)
				}
				lines = append(lines, more...)
			}
			if len(lines) == 0 {
				return fmt.Errorf("normalize: no ingredient lines given")
			}

			records := svc.NormalizeAll(lines)
			metrics.Add(metrics.IngredientsNormalized, len(records))
			for i := range records {
				if svc.NeedsReview(records[i]) {
					metrics.Inc(metrics.IngredientsReview)
				}
			}

			if report {
				r := ingredient.BuildAliasReport(records, cfg.Catalog.ReviewThreshold)
				if asJSON {
					return writeJSON(out, r)
				}
				printAliasReport(out, &r)
				return nil
			}

			if asJSON {
				return writeJSON(out, records)
			}
			for i := range records {
				printIngredient(out, &records[i], svc.NeedsReview(records[i]))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "read ingredient lines from a file, one per line (- for stdin)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output as JSON")
	cmd.Flags().BoolVar(&report, "report", false, "print an alias report instead of the records")
	return cmd
}

func readLines(path string) ([]string, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", path, err)
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return lines, nil
}

func formatAmount(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func printIngredient(w io.Writer, ing *models.NormalizedIngredient, review bool) {
	mark := ""
	if review {
		mark = "  [granska]"
	}
	fmt.Fprintf(w, "%-24s %8s %-3s  %-10s %-8s %.2f%s\n",
		ing.DisplayName, formatAmount(ing.Amount), ing.Unit, ing.Category, ing.MatchMode, ing.Confidence, mark)
}

func printAliasReport(w io.Writer, r *ingredient.AliasReport) {
	fmt.Fprintf(w, "Aliases (%d):\n", len(r.Aliases))
	for _, a := range r.Aliases {
		example := ""
		if len(a.Examples) > 0 {
			example = fmt.Sprintf("  e.g. %q", a.Examples[0])
		}
		fmt.Fprintf(w, "  %-24s %4d  %v%s\n", a.CanonicalName, a.Count, a.Units, example)
	}

	if len(r.Merged) > 0 {
		fmt.Fprintf(w, "\nMerged from several spellings (%d):\n", len(r.Merged))
		for _, a := range r.Merged {
			fmt.Fprintf(w, "  %-24s %d variants\n", a.CanonicalName, a.Variants)
		}
	}

	if len(r.Unresolved) > 0 {
		fmt.Fprintf(w, "\nUnresolved (%d):\n", len(r.Unresolved))
		for _, line := range r.Unresolved {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}

	fmt.Fprintf(w, "\nNeeds review: %d\n", r.Review)
}
