package menu

import (
	"math"
	"slices"
	"sort"

	"github.com/ajitpratap0/middagsvalet/internal/models"
)

// Swap replaces the dinner on dayIndex. The other locked days are kept as
// locks and every dish already on another day is blocked, then the week is
// regenerated with the swap pick width and the new dish for dayIndex is
// taken. Dishes that would make three same-protein days in a row next to
// the kept days are left out. A day listed as unfilled can be swapped in
// the same way.
//
// When no dish can be placed on the day, the menu is returned unchanged
// together with false.
func (g *Generator) Swap(menu models.WeeklyMenu, dayIndex int, dishes []models.Dish, household *models.Household, ctx *models.ScoreContext, random RandomSource) (models.WeeklyMenu, bool) {
	_, present := menu.Day(dayIndex)
	unfilled := slices.Contains(menu.Unfilled, dayIndex)
	if !present && !unfilled {
		return menu, false
	}

	var locks []models.MenuDay
	for i := range menu.Dinners {
		if menu.Dinners[i].DayIndex != dayIndex && menu.Dinners[i].Locked {
			locks = append(locks, menu.Dinners[i])
		}
	}

	// The regenerated neighbours are thrown away, so the protein rule is
	// checked against the days actually on the menu.
	blocked := menu.DishIDs(dayIndex)
	pool := make([]models.Dish, 0, len(dishes))
	for i := range dishes {
		if !blocked[dishes[i].ID] && !breaksProteinWindow(&menu, dayIndex, &dishes[i]) {
			pool = append(pool, dishes[i])
		}
	}

	regenerated := g.Generate(pool, household, ctx, Options{
		LockedDays: locks,
		TopK:       g.opts.SwapTopK,
		Random:     random,
	})
	replacement, ok := regenerated.Day(dayIndex)
	if !ok {
		g.logger.Debug("swap found no replacement", "household", household.ID, "day", dayIndex)
		return menu, false
	}

	out := menu
	out.CreatedAt = g.now()
	out.Dinners = make([]models.MenuDay, 0, len(menu.Dinners)+1)
	for i := range menu.Dinners {
		if menu.Dinners[i].DayIndex == dayIndex {
			out.Dinners = append(out.Dinners, replacement)
			continue
		}
		out.Dinners = append(out.Dinners, menu.Dinners[i])
	}
	if unfilled && !present {
		out.Dinners = append(out.Dinners, replacement)
		sort.SliceStable(out.Dinners, func(i, j int) bool {
			return out.Dinners[i].DayIndex < out.Dinners[j].DayIndex
		})
		out.Unfilled = nil
		for _, d := range menu.Unfilled {
			if d != dayIndex {
				out.Unfilled = append(out.Unfilled, d)
			}
		}
	}
	return out, true
}

// SwapCandidates lists ready-to-apply replacements for dayIndex, best first.
// It leaves out the dish currently on the day, dishes on other days, dishes
// with avoided allergens, and dishes that would make a same-protein run of
// three around the day. Candidates are ranked by household score plus a
// bonus for keeping the protein, a bonus for sharing a cuisine, and a
// penalty per minute of prep time difference from the current dish.
//
// A limit below 1 means the default; limits above MaxSwapLimit are capped.
func (g *Generator) SwapCandidates(menu models.WeeklyMenu, dayIndex int, dishes []models.Dish, household *models.Household, ctx *models.ScoreContext, limit int) []models.MenuDay {
	if limit < 1 {
		limit = g.opts.DefaultSwapLimit
	}
	limit = min(limit, MaxSwapLimit)

	current, hasCurrent := menu.Day(dayIndex)
	blocked := menu.DishIDs(dayIndex)
	w := g.opts.SwapWeights

	type candidate struct {
		scored    models.ScoredDish
		swapScore float64
	}
	var candidates []candidate

	for _, sd := range g.scorer.Rank(dishes, household, ctx) {
		d := &sd.Dish
		if blocked[d.ID] || (hasCurrent && d.ID == current.Dish.ID) {
			continue
		}
		if d.HasAllergen(household.Preferences.AvoidAllergens) || breaksProteinWindow(&menu, dayIndex, d) {
			continue
		}

		score := sd.Score
		if hasCurrent {
			if d.ProteinTag == current.Dish.ProteinTag {
				score += w.SameProtein
			}
			if d.SharesCuisine(&current.Dish) {
				score += w.CuisineOverlap
			}
			score -= w.PrepTimePerMinute * math.Abs(float64(d.PrepMinutes-current.Dish.PrepMinutes))
		}
		candidates = append(candidates, candidate{scored: sd, swapScore: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].swapScore > candidates[j].swapScore
	})
	if len(candidates) > limit {
		candidates = candidates[:limit]
	}

	out := make([]models.MenuDay, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, models.MenuDay{
			DayIndex:      dayIndex,
			Dish:          c.scored.Dish,
			Score:         c.scored.Score,
			ProfileScores: c.scored.ProfileScores,
		})
	}
	return out
}
