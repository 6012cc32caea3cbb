package ingredient

import (
	"slices"
	"sort"

	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/units"
)

const maxReportExamples = 25

// AliasStat summarizes the raw lines that resolved to one canonical name.
type AliasStat struct {
	CanonicalName string       `json:"canonical_name"`
	DisplayName   string       `json:"display_name"`
	Count         int          `json:"count"`
	Units         []units.Unit `json:"units"`
	Examples      []string     `json:"examples"`
	Variants      int          `json:"variants"`
}

// AliasReport is a diagnostics summary over a batch of normalized records.
type AliasReport struct {
	Aliases    []AliasStat `json:"aliases"`
	Merged     []AliasStat `json:"merged"`
	Unresolved []string    `json:"unresolved"`
	Review     int         `json:"review"`
}

// BuildAliasReport summarizes records without touching any shared state, so
// callers can rebuild it as often as they like. Aliases are ordered by count,
// then canonical name. Merged lists canonicals reached from more than one
// distinct raw name.
func BuildAliasReport(records []models.NormalizedIngredient, reviewThreshold float64) AliasReport {
	type acc struct {
		stat     AliasStat
		units    map[units.Unit]bool
		variants map[string]bool
	}
	byName := map[string]*acc{}
	unresolved := map[string]bool{}
	var report AliasReport

	for i := range records {
		r := &records[i]
		if r.NeedsReview(reviewThreshold) {
			report.Review++
		}
		if r.MatchMode == models.MatchFallback {
			line := r.CleanedLine
			if line == "" {
				line = r.RawName
			}
			if line != "" {
				unresolved[line] = true
			}
		}

		a, ok := byName[r.CanonicalName]
		if !ok {
			a = &acc{
				stat:     AliasStat{CanonicalName: r.CanonicalName, DisplayName: r.DisplayName},
				units:    map[units.Unit]bool{},
				variants: map[string]bool{},
			}
			byName[r.CanonicalName] = a
		}
		a.stat.Count++
		a.units[r.Unit] = true
		a.variants[r.RawName] = true
		if r.CleanedLine != "" && len(a.stat.Examples) < maxReportExamples && !slices.Contains(a.stat.Examples, r.CleanedLine) {
			a.stat.Examples = append(a.stat.Examples, r.CleanedLine)
		}
	}

	for _, a := range byName {
		for u := range a.units {
			a.stat.Units = append(a.stat.Units, u)
		}
		slices.Sort(a.stat.Units)
		a.stat.Variants = len(a.variants)
		report.Aliases = append(report.Aliases, a.stat)
	}
	sort.Slice(report.Aliases, func(i, j int) bool {
		if report.Aliases[i].Count != report.Aliases[j].Count {
			return report.Aliases[i].Count > report.Aliases[j].Count
		}
		return report.Aliases[i].CanonicalName < report.Aliases[j].CanonicalName
	})
	for _, s := range report.Aliases {
		if s.Variants > 1 {
			report.Merged = append(report.Merged, s)
		}
	}

	for line := range unresolved {
		report.Unresolved = append(report.Unresolved, line)
	}
	slices.Sort(report.Unresolved)
	return report
}
