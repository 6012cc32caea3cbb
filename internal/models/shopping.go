package models

import "github.com/ajitpratap0/middagsvalet/internal/units"

// ShoppingItem is one row of a shopping list. Amount and Unit are in display
// form (for example 1.5 dl rather than 150 ml).
type ShoppingItem struct {
	CanonicalName string     `json:"canonical_name"`
	DisplayName   string     `json:"display_name"`
	Amount        float64    `json:"amount"`
	Unit          units.Unit `json:"unit"`
	Category      Category   `json:"category"`
	InPantry      bool       `json:"in_pantry"`
}

// ShoppingList is a household's aggregated shopping list. Items has an entry
// for every category, possibly empty.
type ShoppingList struct {
	HouseholdID string                      `json:"household_id"`
	Items       map[Category][]ShoppingItem `json:"items"`
}

// CategoryItems is a section of a shopping list.
type CategoryItems struct {
	Category Category
	Items    []ShoppingItem
}

// Sections returns the list's categories in store order.
func (l *ShoppingList) Sections() []CategoryItems {
	out := make([]CategoryItems, 0, len(ValidCategories))
	for _, c := range ValidCategories {
		out = append(out, CategoryItems{Category: c, Items: l.Items[c]})
	}
	return out
}

// Len returns the number of rows across all categories.
func (l *ShoppingList) Len() int {
	n := 0
	for _, items := range l.Items {
		n += len(items)
	}
	return n
}
