package catalog

import (
	"log/slog"
	"strings"

	"github.com/ajitpratap0/middagsvalet/internal/models"
)

// CategoryClassifier guesses the category of an ingredient that is not in
// the catalog.
type CategoryClassifier interface {
	Classify(tokens string) models.Category
}

// HintClassifier uses ordered keyword rules; the first matching rule wins.
type HintClassifier struct {
	logger *slog.Logger
}

// NewHintClassifier creates a keyword-based category classifier.
func NewHintClassifier(logger *slog.Logger) *HintClassifier {
	return &HintClassifier{logger: logger}
}

type hintRule struct {
	category models.Category
	// contains matches anywhere in the token string
	contains []string
	// suffixes match the end of a single token
	suffixes []string
}

// Order matters: coconut milk and stock are pantry goods even though they
// mention milk or chicken, and paprika powder is a spice, not a vegetable.
var hintRules = []hintRule{
	{
		category: models.CategoryPantry,
		contains: []string{"kokos", "buljong", "fond", "olja", "konserv"},
	},
	{
		category: models.CategoryMeatFish,
		contains: []string{
			"kyckling", "kalkon", "lax", "torsk", "fisk", "rakor", "scampi", "musslor",
			"notkott", "notfars", "blandfars", "flask", "bacon", "skinka", "korv",
			"entrecote", "hogrev", "lamm", "biff", "kassler",
		},
	},
	{
		category: models.CategoryDairy,
		contains: []string{"mjolk", "gradde", "smor", "yoghurt", "fraiche", "keso", "kvarg", "mozzarella", "parmesan", "halloumi", "cheddar"},
		suffixes: []string{"ost"},
	},
	{
		category: models.CategorySpices,
		contains: []string{
			"salt", "peppar", "chili", "oregano", "kanel", "krydda", "spiskummin",
			"paprikapulver", "timjan", "rosmarin", "curry", "gurkmeja", "kardemumma",
			"muskot", "lagerblad", "nejlika", "vanilj",
		},
	},
	{
		category: models.CategoryProduce,
		contains: []string{
			"tomat", "lok", "morot", "potatis", "broccoli", "spenat", "gurka", "zucchini",
			"citron", "lime", "basilika", "koriander", "dill", "persilja", "avokado",
			"sallad", "kal", "svamp", "champinjon", "paprika", "apple", "paron", "banan",
			"blabar", "hallon", "jordgubb", "frukt", "ingefara", "rodbeta", "selleri", "aubergine", "mango",
		},
	},
}

// Classify returns the category of the first rule that matches the folded
// token string, or pantry when none does.
func (c *HintClassifier) Classify(tokens string) models.Category {
	for i := range hintRules {
		r := &hintRules[i]
		if r.matches(tokens) {
			c.logger.Debug("category hint", "tokens", tokens, "category", r.category)
			return r.category
		}
	}
	return models.CategoryPantry
}

func (r *hintRule) matches(tokens string) bool {
	for _, p := range r.contains {
		if strings.Contains(tokens, p) {
			return true
		}
	}
	if len(r.suffixes) == 0 {
		return false
	}
	for _, tok := range strings.Fields(tokens) {
		for _, s := range r.suffixes {
			if strings.HasSuffix(tok, s) {
				return true
			}
		}
	}
	return false
}
