// Package shopping aggregates the ingredients of a set of dishes into a
// shopping list.
package shopping

import (
	"log/slog"
	"math/big"
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/ajitpratap0/middagsvalet/internal/ingredient"
	"github.com/ajitpratap0/middagsvalet/internal/models"
	"github.com/ajitpratap0/middagsvalet/internal/textnorm"
	"github.com/ajitpratap0/middagsvalet/internal/units"
)

// Options configures the aggregator.
type Options struct {
	// Exclude lists canonical names that never appear on a list.
	Exclude []string `json:"exclude" mapstructure:"exclude"`
}

// DefaultOptions leaves water off every list.
func DefaultOptions() Options {
	return Options{Exclude: []string{"vatten"}}
}

// Aggregator builds shopping lists.
type Aggregator struct {
	service *ingredient.Service
	exclude map[string]bool
	logger  *slog.Logger
}

// NewAggregator creates an aggregator that re-normalizes ingredients with
// service before summing them.
func NewAggregator(service *ingredient.Service, opts Options, logger *slog.Logger) *Aggregator {
	exclude := make(map[string]bool, len(opts.Exclude))
	for _, name := range opts.Exclude {
		if n := textnorm.Fold(strings.TrimSpace(name)); n != "" {
			exclude[n] = true
		}
	}
	return &Aggregator{
		service: service,
		exclude: exclude,
		logger:  logger,
	}
}

type rowKey struct {
	canonical string
	unit      units.Unit
}

type row struct {
	display  string
	category models.Category
	amount   *big.Rat
}

// Build sums the ingredients of dishes per canonical name and base unit.
// Excluded and unknown ingredients are dropped. A piece row is left out when
// the same ingredient also has a row in grams or milliliters. Amounts are
// shown in display units and each category is sorted by name in Swedish
// order. pantry holds canonical names or lowercase display names the
// household already has at home.
func (a *Aggregator) Build(householdID string, dishes []models.Dish, pantry map[string]bool) models.ShoppingList {
	rows := make(map[rowKey]*row)
	var order []rowKey
	concrete := make(map[string]bool)

	for i := range dishes {
		for _, raw := range dishes[i].Ingredients {
			ing := a.service.Renormalize(raw)
			if ingredient.IsUnknown(ing) || a.exclude[ing.CanonicalName] {
				continue
			}

			amount := new(big.Rat)
			if amount.SetFloat64(ing.Amount) == nil {
				a.logger.Debug("skipping ingredient with bad amount", "dish", dishes[i].ID, "ingredient", ing.CanonicalName)
				continue
			}

			k := rowKey{canonical: ing.CanonicalName, unit: ing.Unit}
			r, ok := rows[k]
			if !ok {
				r = &row{display: ing.DisplayName, category: ing.Category, amount: new(big.Rat)}
				rows[k] = r
				order = append(order, k)
			}
			r.amount.Add(r.amount, amount)
			if ing.Unit != units.Piece {
				concrete[ing.CanonicalName] = true
			}
		}
	}

	list := models.ShoppingList{
		HouseholdID: householdID,
		Items:       make(map[models.Category][]models.ShoppingItem, len(models.ValidCategories)),
	}
	for _, c := range models.ValidCategories {
		list.Items[c] = []models.ShoppingItem{}
	}

	for _, k := range order {
		if k.unit == units.Piece && concrete[k.canonical] {
			continue
		}
		r := rows[k]
		q := units.PrettifyRat(r.amount, k.unit)
		list.Items[r.category] = append(list.Items[r.category], models.ShoppingItem{
			CanonicalName: k.canonical,
			DisplayName:   r.display,
			Amount:        q.Amount,
			Unit:          q.Unit,
			Category:      r.category,
			InPantry:      pantry[k.canonical] || pantry[strings.ToLower(r.display)],
		})
	}

	// A Collator is not safe for concurrent use.
	col := collate.New(language.Swedish)
	for c := range list.Items {
		sortItems(col, list.Items[c])
	}

	a.logger.Debug("shopping list built", "household", householdID, "dishes", len(dishes), "rows", list.Len())
	return list
}

func sortItems(col *collate.Collator, items []models.ShoppingItem) {
	sort.SliceStable(items, func(i, j int) bool {
		if c := col.CompareString(items[i].DisplayName, items[j].DisplayName); c != 0 {
			return c < 0
		}
		return items[i].Unit < items[j].Unit
	})
}
