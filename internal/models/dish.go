package models

// Difficulty is a rough effort rating for a dish.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// Protein tags used by the import job. The vocabulary is closed but dishes
// are compared by plain string equality.
const (
	ProteinChicken    = "kyckling"
	ProteinFish       = "fisk"
	ProteinBeef       = "nötkött"
	ProteinPork       = "fläsk"
	ProteinVegetarian = "vegetariskt"
)

// Mood tags.
const (
	MoodComfort = "comfort"
	MoodFresh   = "fresh"
	MoodSpicy   = "spicy"
	MoodBudget  = "budget"
)

// Dish is a catalog dinner. Dishes arrive fully prepared from the import
// pipeline and are never modified by the engine.
type Dish struct {
	ID          string                 `json:"id"`
	Title       string                 `json:"title"`
	CuisineTags []string               `json:"cuisine_tags"`
	ProteinTag  string                 `json:"protein_tag"`
	PrepMinutes int                    `json:"prep_minutes"`
	Difficulty  Difficulty             `json:"difficulty,omitempty"`
	KidFriendly float64                `json:"kid_friendly"`
	Ingredients []NormalizedIngredient `json:"ingredients"`
	Allergens   []string               `json:"allergens"`
	MoodTags    []string               `json:"mood_tags,omitempty"`
	SourceURL   string                 `json:"source_url,omitempty"`
	ImageURL    string                 `json:"image_url,omitempty"`
}

// HasAllergen reports whether the dish contains any of the given allergens.
func (d *Dish) HasAllergen(avoid []string) bool {
	return anyShared(d.Allergens, avoid)
}

// SharesCuisine reports whether d and other have a cuisine tag in common.
func (d *Dish) SharesCuisine(other *Dish) bool {
	return anyShared(d.CuisineTags, other.CuisineTags)
}

func anyShared(a, b []string) bool {
	for i := range a {
		for j := range b {
			if a[i] == b[j] {
				return true
			}
		}
	}
	return false
}

func contains(list []string, s string) bool {
	for i := range list {
		if list[i] == s {
			return true
		}
	}
	return false
}
