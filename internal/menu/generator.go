// Package menu builds weekly dinner menus and swaps single days.
package menu

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/scoring"
)

const (
	// DefaultTopK is how many of the best eligible dishes a day is picked from.
	DefaultTopK = 8
	// DefaultSwapTopK is the pick width used when regenerating a swapped day.
	DefaultSwapTopK = 10
	// DefaultSwapLimit is the number of swap candidates returned when the
	// caller does not ask for a specific count.
	DefaultSwapLimit = 5
	// MaxSwapLimit caps the number of swap candidates.
	MaxSwapLimit = 10
)

// RandomSource yields floats in [0,1). *rand.Rand from math/rand/v2
// satisfies it.
type RandomSource interface {
	Float64() float64
}

// SwapWeights tunes the swap candidate score.
type SwapWeights struct {
	SameProtein       float64 `json:"same_protein" mapstructure:"same_protein"`
	CuisineOverlap    float64 `json:"cuisine_overlap" mapstructure:"cuisine_overlap"`
	PrepTimePerMinute float64 `json:"prep_time_per_minute" mapstructure:"prep_time_per_minute"`
}

// DefaultSwapWeights returns the standard swap weights.
func DefaultSwapWeights() SwapWeights {
	return SwapWeights{
		SameProtein:       8,
		CuisineOverlap:    5,
		PrepTimePerMinute: 0.2,
	}
}

// GeneratorOptions configures a Generator.
type GeneratorOptions struct {
	TopK             int
	SwapTopK         int
	SwapWeights      SwapWeights
	DefaultSwapLimit int
}

// DefaultGeneratorOptions returns the standard generator configuration.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{
		TopK:             DefaultTopK,
		SwapTopK:         DefaultSwapTopK,
		SwapWeights:      DefaultSwapWeights(),
		DefaultSwapLimit: DefaultSwapLimit,
	}
}

// Validate checks the generator configuration.
func (o GeneratorOptions) Validate() error {
	if o.TopK < 1 {
		return fmt.Errorf("menu.top_k must be >= 1, got %d", o.TopK)
	}
	if o.SwapTopK < 1 {
		return fmt.Errorf("menu.swap_top_k must be >= 1, got %d", o.SwapTopK)
	}
	if o.DefaultSwapLimit < 1 || o.DefaultSwapLimit > MaxSwapLimit {
		return fmt.Errorf("swap.default_limit must be between 1 and %d, got %d", MaxSwapLimit, o.DefaultSwapLimit)
	}
	w := o.SwapWeights
	if w.SameProtein < 0 || w.CuisineOverlap < 0 || w.PrepTimePerMinute < 0 {
		return fmt.Errorf("swap weights must be >= 0")
	}
	return nil
}

// Options are per-call generation settings.
type Options struct {
	// LockedDays are placed as given on their day index.
	LockedDays []models.MenuDay
	// TopK overrides the generator's pick width when > 0.
	TopK int
	// Random picks among the top-K candidates. When nil the best candidate
	// is always taken.
	Random RandomSource
}

// Generator builds weekly menus from a ranked dish list.
type Generator struct {
	scorer *scoring.Scorer
	opts   GeneratorOptions
	logger *slog.Logger

	newID func() string
	now   func() time.Time
}

// NewGenerator creates a menu generator.
func NewGenerator(scorer *scoring.Scorer, opts GeneratorOptions, logger *slog.Logger) *Generator {
	if opts.TopK < 1 {
		opts.TopK = DefaultTopK
	}
	if opts.SwapTopK < 1 {
		opts.SwapTopK = DefaultSwapTopK
	}
	if opts.DefaultSwapLimit < 1 {
		opts.DefaultSwapLimit = DefaultSwapLimit
	}
	return &Generator{
		scorer: scorer,
		opts:   opts,
		logger: logger,
		newID:  uuid.NewString,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Generate fills the household's dinner days one at a time. Locked days are
// placed directly. Every other day takes a random dish among the top-K
// eligible ones: not used yet, free of avoided allergens, and not making a
// third same-protein day in a row. A day with no eligible dish is listed in
// Unfilled and left out; earlier days are never revisited.
func (g *Generator) Generate(dishes []models.Dish, household *models.Household, ctx *models.ScoreContext, opts Options) models.WeeklyMenu {
	topK := opts.TopK
	if topK < 1 {
		topK = g.opts.TopK
	}

	ranked := g.scorer.Rank(dishes, household, ctx)

	// Locked dishes are reserved up front so an earlier day cannot take them.
	used := make(map[string]bool)
	locked := make(map[int]models.MenuDay, len(opts.LockedDays))
	for _, d := range opts.LockedDays {
		if d.DayIndex >= 0 && d.DayIndex < household.Preferences.DinnersPerWeek {
			locked[d.DayIndex] = d
			used[d.Dish.ID] = true
		}
	}

	menu := models.WeeklyMenu{
		ID:          g.newID(),
		HouseholdID: household.ID,
		CreatedAt:   g.now(),
	}
	placed := make([]models.Dish, 0, household.Preferences.DinnersPerWeek)
	eligible := make([]*models.ScoredDish, 0, len(ranked))

	for day := 0; day < household.Preferences.DinnersPerWeek; day++ {
		if l, ok := locked[day]; ok {
			l.Locked = true
			menu.Dinners = append(menu.Dinners, l)
			placed = append(placed, l.Dish)
			continue
		}

		eligible = eligible[:0]
		for i := range ranked {
			d := &ranked[i].Dish
			if used[d.ID] || d.HasAllergen(household.Preferences.AvoidAllergens) || violatesProteinRule(placed, d) {
				continue
			}
			eligible = append(eligible, &ranked[i])
		}

		if len(eligible) == 0 {
			g.logger.Debug("no eligible dish for day", "household", household.ID, "day", day)
			menu.Unfilled = append(menu.Unfilled, day)
			continue
		}

		pick := eligible[pickIndex(len(eligible), topK, opts.Random)]
		menu.Dinners = append(menu.Dinners, models.MenuDay{
			DayIndex:      day,
			Dish:          pick.Dish,
			Score:         pick.Score,
			ProfileScores: pick.ProfileScores,
		})
		used[pick.Dish.ID] = true
		placed = append(placed, pick.Dish)
	}

	g.logger.Debug("menu generated", "household", household.ID, "dinners", len(menu.Dinners), "unfilled", len(menu.Unfilled))
	return menu
}

// pickIndex chooses uniformly among the first min(topK, n) items.
func pickIndex(n, topK int, r RandomSource) int {
	limit := max(1, min(topK, n))
	if r == nil {
		return 0
	}
	i := int(math.Floor(r.Float64() * float64(limit)))
	return max(0, min(i, limit-1))
}
