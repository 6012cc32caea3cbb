package models

import "github.com/ajitpratap0/middagsvalet/internal/units"

// Category is the shopping-list section an ingredient belongs to.
type Category string

const (
	CategoryProduce  Category = "produce"
	CategoryDairy    Category = "dairy"
	CategoryPantry   Category = "pantry"
	CategoryMeatFish Category = "meat_fish"
	CategorySpices   Category = "spices"
)

// ValidCategories is the set of all categories, in shopping-list order.
var ValidCategories = []Category{
	CategoryProduce,
	CategoryDairy,
	CategoryPantry,
	CategoryMeatFish,
	CategorySpices,
}

var categoryLabels = map[Category]string{
	CategoryProduce:  "Frukt & grönt",
	CategoryDairy:    "Mejeri",
	CategoryPantry:   "Skafferi",
	CategoryMeatFish: "Kött & fisk",
	CategorySpices:   "Kryddor",
}

// IsValid returns true if the category is recognized.
func (c Category) IsValid() bool {
	for i := range ValidCategories {
		if c == ValidCategories[i] {
			return true
		}
	}
	return false
}

// Label returns the Swedish section heading for c.
func (c Category) Label() string {
	if l, ok := categoryLabels[c]; ok {
		return l
	}
	return string(c)
}

// MatchMode records how an ingredient name was resolved against the catalog.
type MatchMode string

const (
	MatchExact    MatchMode = "exact"
	MatchFuzzy    MatchMode = "fuzzy"
	MatchFallback MatchMode = "fallback"
)

// NormalizedIngredient is one recipe ingredient line after normalization.
// Amount is always expressed in the base unit of its dimension.
type NormalizedIngredient struct {
	CanonicalName string     `json:"canonical_name"`
	DisplayName   string     `json:"display_name"`
	Category      Category   `json:"category"`
	Amount        float64    `json:"amount"`
	Unit          units.Unit `json:"unit"`
	Confidence    float64    `json:"confidence"`
	MatchMode     MatchMode  `json:"match_mode"`
	CleanedLine   string     `json:"cleaned_line,omitempty"`
	RawName       string     `json:"raw_name,omitempty"`
}

// NeedsReview reports whether the match is too uncertain to trust without a
// human look.
func (n NormalizedIngredient) NeedsReview(threshold float64) bool {
	return n.Confidence < threshold
}
