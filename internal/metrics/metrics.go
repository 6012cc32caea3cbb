// Package metrics provides application-level counters using stdlib expvar.
// The engine packages never touch these; the command layer counts what it
// runs so the core stays free of side effects.
package metrics

import (
	"expvar"
	"sort"
)

// Operation counters.
var (
	IngredientsNormalized = expvar.NewInt("middagsvalet_ingredients_normalized_total")
	IngredientsReview     = expvar.NewInt("middagsvalet_ingredients_review_total")
	DishesScored          = expvar.NewInt("middagsvalet_dishes_scored_total")
	MenusGenerated        = expvar.NewInt("middagsvalet_menus_generated_total")
	UnfilledDays          = expvar.NewInt("middagsvalet_unfilled_days_total")
	Swaps                 = expvar.NewInt("middagsvalet_swaps_total")
	SwapNoops             = expvar.NewInt("middagsvalet_swap_noops_total")
	ShoppingLists         = expvar.NewInt("middagsvalet_shopping_lists_total")
)

// Inc increments the given counter by 1.
func Inc(counter *expvar.Int) { counter.Add(1) }

// Add increments the given counter by n.
func Add(counter *expvar.Int, n int) { counter.Add(int64(n)) }

// Counter is a named counter value.
type Counter struct {
	Name  string `json:"name"`
	Value int64  `json:"value"`
}

// Snapshot returns the current value of every middagsvalet counter, sorted
// by name.
func Snapshot() []Counter {
	all := map[string]*expvar.Int{
		"middagsvalet_ingredients_normalized_total": IngredientsNormalized,
		"middagsvalet_ingredients_review_total":     IngredientsReview,
		"middagsvalet_dishes_scored_total":          DishesScored,
		"middagsvalet_menus_generated_total":        MenusGenerated,
		"middagsvalet_unfilled_days_total":          UnfilledDays,
		"middagsvalet_swaps_total":                  Swaps,
		"middagsvalet_swap_noops_total":             SwapNoops,
		"middagsvalet_shopping_lists_total":         ShoppingLists,
	}
	out := make([]Counter, 0, len(all))
	for name, v := range all {
		out = append(out, Counter{Name: name, Value: v.Value()})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
