package ingredient

import (
	"slices"
	"strings"

	"github.com/ajitpratap0/middagsvalet/internal/catalog"
	"github.com/ajitpratap0/middagsvalet/internal/models"
)

// Allergen names used across the catalog and dish records.
const (
	AllergenGluten    = "gluten"
	AllergenLactose   = "laktos"
	AllergenEgg       = "ägg"
	AllergenNuts      = "nötter"
	AllergenSoy       = "soja"
	AllergenFish      = "fisk"
	AllergenShellfish = "skaldjur"
)

type allergenRule struct {
	allergen string
	contains []string
	exact    []string
	suffixes []string
}

// Used only for names the catalog does not know.
var allergenRules = []allergenRule{
	{allergen: AllergenGluten, contains: []string{"pasta", "brod", "nudlar", "bulgur", "couscous", "spaghetti", "vete"}, suffixes: []string{"mjol"}},
	{allergen: AllergenLactose, contains: []string{"mjolk", "gradde", "smor", "yoghurt", "fraiche", "kvarg", "keso"}, suffixes: []string{"ost"}},
	{allergen: AllergenEgg, exact: []string{"agg", "aggula", "aggvita"}},
	{allergen: AllergenNuts, contains: []string{"notter", "mandel", "cashew", "jordnot", "hasselnot", "valnot", "pistage"}},
	{allergen: AllergenSoy, contains: []string{"soja", "tofu", "edamame"}},
	{allergen: AllergenFish, contains: []string{"lax", "torsk", "fisk", "sej", "tonfisk"}},
	{allergen: AllergenShellfish, contains: []string{"rakor", "scampi", "musslor", "krabba", "hummer"}},
}

// InferAllergens returns the sorted allergen set of a dish's ingredients.
// Catalog entries carry their own allergens; unknown names are checked
// against keyword rules.
func InferAllergens(cat *catalog.Catalog, ings []models.NormalizedIngredient) []string {
	found := map[string]bool{}
	for i := range ings {
		ing := &ings[i]
		if e, ok := cat.Get(ing.CanonicalName); ok {
			for _, a := range e.Allergens {
				found[a] = true
			}
			continue
		}
		for j := range allergenRules {
			if allergenRules[j].matches(ing.CanonicalName) {
				found[allergenRules[j].allergen] = true
			}
		}
	}

	out := make([]string, 0, len(found))
	for a := range found {
		out = append(out, a)
	}
	slices.Sort(out)
	return out
}

func (r *allergenRule) matches(name string) bool {
	for _, c := range r.contains {
		if strings.Contains(name, c) {
			return true
		}
	}
	for _, tok := range strings.Fields(name) {
		if slices.Contains(r.exact, tok) {
			return true
		}
		for _, s := range r.suffixes {
			if strings.HasSuffix(tok, s) {
				return true
			}
		}
	}
	return false
}
